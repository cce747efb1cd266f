package fs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct {
	hasher *Hasher
	walker *Walker
}

// NewFileSystem creates a FileSystem.
func NewFileSystem(hasher *Hasher, walker *Walker) *FileSystem {
	return &FileSystem{hasher: hasher, walker: walker}
}

// File captures path as a File artifact.
func (s *FileSystem) File(path string, opts domain.FileOptions) domain.Artifact {
	return NewFile(s.hasher, path, opts)
}

// Tree captures every file below root.
func (s *FileSystem) Tree(root string, opts domain.FileOptions) ([]domain.Artifact, error) {
	var files []domain.Artifact
	for path, err := range s.walker.WalkFiles(root) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrWalkFailed.Error()), "root", root)
		}
		files = append(files, NewFile(s.hasher, path, opts))
	}
	return files, nil
}

// Copy copies src to dst, keeping the source permissions.
func (s *FileSystem) Copy(src, dst string) error {
	if err := copyFile(src, dst); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "src", src), "dst", dst)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by the build definition
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return zerr.With(zerr.New("source is a directory"), "path", src)
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return zerr.New("source and destination are the same file")
	}
	if existing, err := os.Stat(dst); err == nil && os.SameFile(info, existing) {
		return zerr.New("source and destination are the same file")
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	//nolint:gosec // Path is controlled by the build definition
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Remove deletes path recursively. A missing path is reported as an error.
func (s *FileSystem) Remove(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrDeleteFailed.Error()), "path", path)
		}
		return zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDeleteFailed.Error()), "path", path)
	}
	return nil
}
