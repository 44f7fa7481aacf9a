package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JustinTDCT/VHash/internal/verrors"
)

// AbsPath canonicalizes a path: absolute, cleaned, symlinks resolved
// when the target exists.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func withSep(dir string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir
	}
	return dir + string(os.PathSeparator)
}

// PathSplit splits a file path into its canonicalized absolute parent
// (with trailing separator) and the bare filename.
func PathSplit(path string) (parent, file string) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return withSep(AbsPath(dir)), file
}

// LowerExt returns the lowercased extension without the dot. A file
// without a dot yields its whole name lowercased.
func LowerExt(file string) string {
	pos := strings.LastIndexByte(file, '.') + 1
	return strings.ToLower(file[pos:])
}

// Exists reports whether the path can be stat'ed.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether the path is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether the path is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FileInfo returns the size and modification timestamp the filesystem
// reports for path.
func FileInfo(path string) (size, mtime int64, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, fmt.Errorf("stat %s: %w", path, verrors.NotExists)
	}
	return info.Size(), info.ModTime().Unix(), nil
}

// HomeDir resolves the current user's home directory.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// MkdirAll creates the directory and its parents with the given mode.
func MkdirAll(path string, mode os.FileMode) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(path, mode); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, verrors.MkDir)
	}
	return nil
}
