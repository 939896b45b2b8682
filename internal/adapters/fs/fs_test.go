package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/fs"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	// tmp/
	//   .git/config
	//   ignored/file
	//   x/y/Foo.art
	//   x/notes.tmp
	//   README.md
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"), "git config")
	writeFile(t, filepath.Join(tmpDir, "ignored", "file"), "ignored")
	writeFile(t, filepath.Join(tmpDir, "x", "y", "Foo.art"), "foo")
	writeFile(t, filepath.Join(tmpDir, "x", "notes.tmp"), "tmp")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "# Readme")

	walker := fs.NewWalker()
	got := slices.Sorted(walker.WalkFiles(tmpDir, []string{"ignored", "*.tmp"}))

	assert.Equal(t, []string{"README.md", "x/y/Foo.art"}, got)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a"), "a")
	writeFile(t, filepath.Join(tmpDir, "b"), "b")

	var seen int
	for range fs.NewWalker().WalkFiles(tmpDir, nil) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestHasher_Digest(t *testing.T) {
	h := fs.NewHasher()

	digest := h.Digest([]byte("hello"))
	assert.Len(t, digest, 16)
	assert.Equal(t, digest, h.Digest([]byte("hello")))
	assert.NotEqual(t, digest, h.Digest([]byte("hello!")))

	// Leading zeros are kept.
	for _, s := range []string{"", "a", "b", "c", "d", "e"} {
		assert.Len(t, h.Digest([]byte(s)), 16)
	}
	sum, err := strconv.ParseUint(digest, 16, 64)
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64String("hello"), sum)
}

func TestHasher_DigestFile(t *testing.T) {
	h := fs.NewHasher()
	path := filepath.Join(t.TempDir(), "blob")
	writeFile(t, path, "content")

	digest, err := h.DigestFile(path)
	require.NoError(t, err)
	assert.Equal(t, h.Digest([]byte("content")), digest)

	_, err = h.DigestFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
