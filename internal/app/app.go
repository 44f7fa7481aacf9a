// Package app wires the scanner, cache, worker pool and hashers into
// the three vhash commands.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/JustinTDCT/VHash/internal/cache"
	"github.com/JustinTDCT/VHash/internal/hasher"
	"github.com/JustinTDCT/VHash/internal/scanner"
	"github.com/JustinTDCT/VHash/internal/verrors"
)

// RunConfig is the shared configuration of the hash and dup commands.
type RunConfig struct {
	Path       string
	Ext        []string
	CacheURL   string
	Output     string
	Jobs       int
	UseCache   bool
	Recursive  bool
	NoProgress bool

	FFmpegPath  string
	FFprobePath string
}

// CacheConfig configures the cache command.
type CacheConfig struct {
	Path        string
	CacheURL    string
	Find        bool
	Del         bool
	Clear       bool
	Prune       bool
	PrunePeriod int64
}

func (c *RunConfig) validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be non-negative: %w", verrors.ParamInvalid)
	}
	for _, e := range c.Ext {
		if e == "" {
			return fmt.Errorf("extension token should not be empty: %w", verrors.ParamInvalid)
		}
	}
	return nil
}

// extSet builds the whitelist: the caller's extensions, or the union of
// the built-in image and video sets when none were given.
func extSet(ext []string) map[string]bool {
	if len(ext) == 0 {
		return hasher.DefaultExtensions()
	}
	set := make(map[string]bool, len(ext))
	for _, e := range ext {
		set[e] = true
	}
	return set
}

// fileHash resolves one file's fingerprint through the cache. Cache
// lookup errors degrade to a miss; insert errors are logged and do not
// fail the command. Hash failures are logged and yield 0 without
// caching.
func fileHash(db *cache.Cache, conf *RunConfig, path string, ft hasher.FileType) uint64 {
	parent, file := scanner.PathSplit(path)
	size, mtime, err := scanner.FileInfo(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("stat failed")
		return 0
	}

	if conf.UseCache {
		items, err := db.Get(cache.Key{Parent: parent, File: file})
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("cache lookup failed")
		} else if len(items) > 0 && items[0].FileUpdateTS == mtime && items[0].FileSize == size {
			return items[0].FileHash
		}
	}

	h := hasher.New(ft, hasher.TypeWHash, conf.FFmpegPath, conf.FFprobePath)
	hv, err := h.HashFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("hash failed")
		return 0
	}

	if conf.UseCache {
		item := cache.Item{
			Parent:       parent,
			File:         file,
			FileSize:     size,
			FileUpdateTS: mtime,
			FileHash:     hv,
		}
		if err := db.Set(&item); err != nil {
			log.Error().Err(err).Str("file", path).Msg("cache insert failed")
		}
	}
	return hv
}

// enumerate lists the candidate paths: the files of a directory
// argument (the whole tree when conf.Recursive is set), the single file
// otherwise.
func enumerate(conf *RunConfig) []string {
	if scanner.IsFile(conf.Path) {
		return []string{scanner.AbsPath(conf.Path)}
	}

	white := extSet(conf.Ext)
	s := scanner.New(conf.Path, true)
	entries := s.ForEach(func(parent, file string) bool {
		return scanner.ExtFilter(nil, white, file)
	}, conf.Recursive)

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, e.FullPath())
	}
	return files
}

// openCache prepares the cache when the command asked for one.
func openCache(conf *RunConfig) (*cache.Cache, error) {
	if !conf.UseCache {
		return nil, nil
	}
	db := cache.New(conf.CacheURL)
	if err := db.Init(); err != nil {
		return nil, err
	}
	return db, nil
}

// newWriter opens the result sink: stdout for an empty path, a
// truncated file otherwise.
func newWriter(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, verrors.OpenFile)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// progressWriter keeps the bar off stdout so results stay clean.
func progressWriter() io.Writer {
	return os.Stderr
}
