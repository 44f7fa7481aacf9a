package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func testTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpg"))
	touch(t, filepath.Join(root, "b.PNG"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "c.jpg"))
	touch(t, filepath.Join(root, "sub", "deep", "d.mp4"))
	touch(t, filepath.Join(root, ".git", "skipped.jpg"))
	touch(t, filepath.Join(root, "sub", "__pycache__", "skipped2.jpg"))
	return root
}

func acceptAll(parent, file string) bool { return true }

func TestExtFilter(t *testing.T) {
	black := map[string]bool{"jpg": true, "png": true, "jpeg": true, "bmp": true}
	assert.False(t, ExtFilter(black, nil, "demo.jpg"))
	assert.False(t, ExtFilter(black, nil, "demo.JPG"))
	assert.True(t, ExtFilter(black, nil, "demo.txt"))

	white := map[string]bool{"jpg": true, "png": true, "jpeg": true, "bmp": true}
	assert.True(t, ExtFilter(nil, white, "demo.jpg"))
	assert.True(t, ExtFilter(nil, white, "demo.JPG"))
	assert.False(t, ExtFilter(nil, white, "demo.txt"))

	// white dominates black when both are set
	assert.True(t, ExtFilter(black, white, "demo.jpg"))

	// neither set: accept everything
	assert.True(t, ExtFilter(nil, nil, "demo.anything"))
}

func TestForEachRecursive(t *testing.T) {
	root := testTree(t)
	s := New(root, true)

	entries := s.ForEach(acceptAll, true)
	var files []string
	for _, e := range entries {
		assert.True(t, filepath.IsAbs(e.Parent), "parent %q not absolute", e.Parent)
		assert.True(t, strings.HasSuffix(e.Parent, string(os.PathSeparator)))
		assert.True(t, IsFile(e.FullPath()))
		files = append(files, e.File)
	}
	assert.ElementsMatch(t, []string{"a.jpg", "b.PNG", "notes.txt", "c.jpg", "d.mp4"}, files)
}

func TestForEachNonRecursive(t *testing.T) {
	root := testTree(t)
	entries := New(root, true).ForEach(acceptAll, false)
	var files []string
	for _, e := range entries {
		files = append(files, e.File)
	}
	assert.ElementsMatch(t, []string{"a.jpg", "b.PNG", "notes.txt"}, files)
}

func TestBuiltinDirFilter(t *testing.T) {
	root := testTree(t)
	entries := New(root, true).ForEach(acceptAll, true)
	for _, e := range entries {
		assert.NotContains(t, e.Parent, ".git")
		assert.NotContains(t, e.Parent, "__pycache__")
	}

	// disabling the builtin filter exposes the skipped directories
	all := New(root, false).ForEach(acceptAll, true)
	assert.Greater(t, len(all), len(entries))
}

func TestForEachWithExtWhitelist(t *testing.T) {
	root := testTree(t)
	white := map[string]bool{"jpg": true}
	entries := New(root, true).ForEach(func(parent, file string) bool {
		return ExtFilter(nil, white, file)
	}, true)

	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, "jpg", LowerExt(e.File))
	}
}

func TestForEachBackground(t *testing.T) {
	root := testTree(t)
	s := New(root, true)

	var mu sync.Mutex
	var seen []string
	s.ForEachBackground(func(parent, file string) bool {
		mu.Lock()
		seen = append(seen, file)
		mu.Unlock()
		return true
	}, true)
	s.Wait()

	assert.ElementsMatch(t, []string{"a.jpg", "b.PNG", "notes.txt", "c.jpg", "d.mp4"}, seen)
}

func TestPathSplit(t *testing.T) {
	root := testTree(t)
	path := filepath.Join(root, "sub", "c.jpg")

	parent, file := PathSplit(path)
	assert.Equal(t, "c.jpg", file)
	assert.True(t, filepath.IsAbs(parent))
	assert.True(t, strings.HasSuffix(parent, string(os.PathSeparator)))
	assert.True(t, IsDir(strings.TrimSuffix(parent, string(os.PathSeparator))))
}

func TestPathSplitRelative(t *testing.T) {
	parent, file := PathSplit("scan_test.go")
	assert.Equal(t, "scan_test.go", file)
	assert.NotEmpty(t, parent)
	assert.True(t, filepath.IsAbs(parent))
}

func TestLowerExt(t *testing.T) {
	assert.Equal(t, "jpg", LowerExt("a.JPG"))
	assert.Equal(t, "gz", LowerExt("archive.tar.gz"))
	assert.Equal(t, "noext", LowerExt("noext"))
}

func TestHomeDir(t *testing.T) {
	assert.NotEmpty(t, HomeDir())
}

func TestFileInfo(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "f.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	size, mtime, err := FileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.Positive(t, mtime)

	_, _, err = FileInfo(filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestMkdirAll(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, MkdirAll(nested, 0o755))
	assert.True(t, IsDir(nested))
	assert.NoError(t, MkdirAll("", 0o755))
}
