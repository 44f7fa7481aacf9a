// Package scanner enumerates candidate files under a directory tree and
// provides the path helpers shared by the cache and the command
// runners.
package scanner

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Entry is one discovered file: the absolute parent directory with a
// trailing separator plus the bare filename.
type Entry struct {
	Parent string
	File   string
}

// FullPath joins the pair back into an absolute file path.
func (e Entry) FullPath() string {
	return e.Parent + e.File
}

// Filter decides whether a file belongs in the result set.
type Filter func(parent, file string) bool

// builtinDirFilter names directories that are never descended into.
var builtinDirFilter = map[string]bool{
	".git": true, ".vscode": true, ".idea": true,
	".github": true, ".gitlab": true, "@eaDir": true,
	"__pycache__": true,
}

// Scanner walks one root directory. The zero value is not usable; use
// New.
type Scanner struct {
	dirname          string
	useBuiltinFilter bool

	wg      sync.WaitGroup
	running bool
}

func New(dirname string, useBuiltinFilter bool) *Scanner {
	if dirname == "" {
		dirname = "."
	}
	return &Scanner{dirname: dirname, useBuiltinFilter: useBuiltinFilter}
}

// ForEach traverses the tree synchronously and returns the matching
// entries. Entries within a directory come in filename order, as
// os.ReadDir returns them; files of a directory precede those of
// subdirectories listed after them.
func (s *Scanner) ForEach(filter Filter, recursive bool) []Entry {
	var entries []Entry
	s.walk(AbsPath(s.dirname), filter, recursive, func(parent, file string) {
		entries = append(entries, Entry{Parent: withSep(parent), File: file})
	})
	return entries
}

// ForEachBackground runs the same traversal on a detached goroutine,
// streaming matches to the filter only. Wait blocks until it finishes.
func (s *Scanner) ForEachBackground(filter Filter, recursive bool) {
	s.wg.Add(1)
	s.running = true
	go func() {
		defer s.wg.Done()
		s.walk(AbsPath(s.dirname), filter, recursive, nil)
	}()
}

// Wait blocks until a background traversal completes.
func (s *Scanner) Wait() {
	if s.running {
		s.wg.Wait()
		s.running = false
	}
}

func (s *Scanner) walk(dirname string, filter Filter, recursive bool, collect func(parent, file string)) {
	dirents, err := os.ReadDir(dirname)
	if err != nil {
		log.Debug().Err(err).Str("dir", dirname).Msg("skipping unreadable directory")
		return
	}

	for _, ent := range dirents {
		name := ent.Name()
		path := filepath.Join(dirname, name)

		// symlinks resolve through stat, matching the OS semantics
		info, err := os.Stat(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("stat failed, skipping")
			continue
		}

		if info.IsDir() {
			if s.useBuiltinFilter && builtinDirFilter[name] {
				continue
			}
			if recursive {
				s.walk(path, filter, recursive, collect)
			}
			continue
		}

		if filter(dirname, name) && collect != nil {
			collect(dirname, name)
		}
	}
}

// ExtFilter applies the extension policy: a non-empty white set
// dominates; otherwise a non-empty black set excludes; otherwise
// everything passes. Matching is case-insensitive.
func ExtFilter(black, white map[string]bool, file string) bool {
	ext := LowerExt(file)
	if len(white) > 0 {
		return white[ext]
	}
	if len(black) > 0 {
		return !black[ext]
	}
	return true
}
