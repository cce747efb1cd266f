package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smelt/internal/adapters/fs"
	"go.trai.ch/smelt/internal/core/domain"
)

func newFS() *fs.FileSystem {
	return fs.NewFileSystem(fs.NewHasher(), fs.NewWalker())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestHasher_ComputeFileHash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "same")
	writeFile(t, b, "same")

	h := fs.NewHasher()
	ha, err := h.ComputeFileHash(a)
	require.NoError(t, err)
	hb, err := h.ComputeFileHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	_, err = h.ComputeFileHash(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrFileOpenFailed.Error())
}

func TestFile_IdentifyTracksContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.c")
	writeFile(t, path, "int main() { return 0; }")

	s := newFS()
	before := s.File(path, domain.DefaultFileOptions())
	assert.True(t, before.Exists())
	assert.Equal(t, path, before.Display())

	again := s.File(path, domain.DefaultFileOptions())
	assert.Equal(t, before.Identify(), again.Identify())

	writeFile(t, path, "int main() { return 1; }")
	after := s.File(path, domain.DefaultFileOptions())
	assert.NotEqual(t, before.Identify(), after.Identify())
}

func TestFile_ModTimeOnly(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.o")
	writeFile(t, path, "x")

	opts := domain.FileOptions{ModTime: true}
	s := newFS()
	before := s.File(path, opts)

	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	after := s.File(path, opts)
	assert.NotEqual(t, before.Identify(), after.Identify())
}

func TestFile_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := newFS()

	missing := s.File(filepath.Join(dir, "nope.c"), domain.DefaultFileOptions())
	assert.False(t, missing.Exists())

	asDir := s.File(dir, domain.DefaultFileOptions())
	assert.False(t, asDir.Exists())

	path := filepath.Join(dir, "gone.c")
	writeFile(t, path, "x")
	gone := s.File(path, domain.DefaultFileOptions())
	require.True(t, gone.Exists())
	require.NoError(t, os.Remove(path))
	assert.False(t, gone.Exists())
}

func TestFileSystem_Tree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.c"), "a")
	writeFile(t, filepath.Join(root, "src", "lib", "lib.c"), "b")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")

	files, err := newFS().Tree(root, domain.DefaultFileOptions())
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Display())
	}
	slices.Sort(paths)
	assert.Equal(t, []string{
		filepath.Join(root, "src", "lib", "lib.c"),
		filepath.Join(root, "src", "main.c"),
	}, paths)

	_, err = newFS().Tree(filepath.Join(root, "missing"), domain.DefaultFileOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrWalkFailed.Error())
}

func TestWalker_Ignores(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.c"), "a")
	writeFile(t, filepath.Join(root, "build", "out.o"), "b")
	writeFile(t, filepath.Join(root, ".smelt"), "c")

	var paths []string
	for path, err := range fs.NewWalker("build", ".smelt").WalkFiles(root) {
		require.NoError(t, err)
		paths = append(paths, path)
	}
	assert.Equal(t, []string{filepath.Join(root, "keep.c")}, paths)
}

func TestFileSystem_Copy(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "run.sh")
	writeFile(t, src, "#!/bin/sh\n")
	require.NoError(t, os.Chmod(src, 0o755))

	dst := filepath.Join(dir, "dist", "bin", "run.sh")
	require.NoError(t, newFS().Copy(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	err = newFS().Copy(filepath.Join(dir, "missing"), dst)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), domain.ErrCopyFailed.Error())
}

func TestFileSystem_CopyOntoItself(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "main.c")
	writeFile(t, src, "int main(void) { return 0; }\n")
	require.NoError(t, os.Symlink(src, filepath.Join(dir, "link.c")))

	for _, dst := range []string{src, filepath.Join(dir, ".", "main.c"), filepath.Join(dir, "link.c")} {
		err := newFS().Copy(src, dst)
		require.Error(t, err, dst)
		assert.Contains(t, err.Error(), domain.ErrCopyFailed.Error())
	}

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "int main(void) { return 0; }\n", string(data))
}

func TestFileSystem_Remove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "build")
	writeFile(t, filepath.Join(out, "a.o"), "a")

	s := newFS()
	require.NoError(t, s.Remove(out))
	_, err := os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = s.Remove(out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrDeleteFailed.Error())
}
