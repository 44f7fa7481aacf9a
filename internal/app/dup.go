package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/JustinTDCT/VHash/internal/hasher"
	"github.com/JustinTDCT/VHash/internal/pool"
	"github.com/JustinTDCT/VHash/internal/scanner"
	"github.com/JustinTDCT/VHash/internal/verrors"
)

// DupCmd fingerprints a directory tree and emits only the groups of
// paths sharing a hash.
func DupCmd(conf *RunConfig) error {
	if err := conf.validate(); err != nil {
		return err
	}
	if !scanner.Exists(conf.Path) {
		return fmt.Errorf("path %q not exists: %w", conf.Path, verrors.NotExists)
	}
	if !scanner.IsDir(conf.Path) {
		return fmt.Errorf("path %q is not folder: %w", conf.Path, verrors.ParamInvalid)
	}

	out, err := newWriter(conf.Output)
	if err != nil {
		return err
	}
	defer out.Close()

	db, err := openCache(conf)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	files := enumerate(conf)
	bar := newProgress(conf, len(files))
	start := time.Now()

	groups := make(map[uint64][]string)
	var groupsMu sync.Mutex
	var wg sync.WaitGroup
	workers := pool.New(conf.Jobs)

	for _, file := range files {
		file := file
		wg.Add(1)
		if err := workers.Commit(func() {
			defer wg.Done()
			defer barAdd(bar)

			ft := hasher.DetectFileType(file)
			if ft == hasher.TypeOther {
				return
			}
			hv := fileHash(db, conf, file, ft)

			groupsMu.Lock()
			groups[hv] = append(groups[hv], file)
			groupsMu.Unlock()
		}); err != nil {
			wg.Done()
			log.Error().Err(err).Str("file", file).Msg("commit dup task failed")
		}
	}

	wg.Wait()
	workers.Stop()
	barFinish(bar)

	duplicates := 0
	for hv, paths := range groups {
		if len(paths) < 2 {
			continue
		}
		duplicates++
		fmt.Fprintf(out, "HASH: 0x%016x\n", hv)
		for _, p := range paths {
			fmt.Fprintf(out, "FILE: %s\n", p)
		}
		fmt.Fprintln(out)
	}

	log.Info().
		Str("files", humanize.Comma(int64(len(files)))).
		Int("groups", duplicates).
		Str("elapsed", time.Since(start).Round(time.Millisecond).String()).
		Msg("dup done")
	return nil
}
