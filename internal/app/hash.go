package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/JustinTDCT/VHash/internal/hasher"
	"github.com/JustinTDCT/VHash/internal/pool"
	"github.com/JustinTDCT/VHash/internal/scanner"
	"github.com/JustinTDCT/VHash/internal/verrors"
)

// HashCmd fingerprints every image and video file under the path and
// streams one HASH/FILE block per file to the output sink.
func HashCmd(conf *RunConfig) error {
	if err := conf.validate(); err != nil {
		return err
	}
	if !scanner.Exists(conf.Path) {
		return fmt.Errorf("path %q not exists: %w", conf.Path, verrors.NotExists)
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

	var outMu sync.Mutex
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

			outMu.Lock()
			fmt.Fprintf(out, "HASH: 0x%016x\nFILE: %s\n\n", hv, file)
			outMu.Unlock()
		}); err != nil {
			wg.Done()
			log.Error().Err(err).Str("file", file).Msg("commit hash task failed")
		}
	}

	wg.Wait()
	workers.Stop()
	barFinish(bar)

	log.Info().
		Str("files", humanize.Comma(int64(len(files)))).
		Str("elapsed", time.Since(start).Round(time.Millisecond).String()).
		Msg("hash done")
	return nil
}

func newProgress(conf *RunConfig, total int) *progressbar.ProgressBar {
	if conf.NoProgress || conf.Output == "" {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(progressWriter()),
		progressbar.OptionSetDescription("hashing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func barAdd(bar *progressbar.ProgressBar) {
	if bar != nil {
		bar.Add(1)
	}
}

func barFinish(bar *progressbar.ProgressBar) {
	if bar != nil {
		bar.Finish()
	}
}
