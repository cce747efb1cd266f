package ports

import "go.trai.ch/smelt/internal/core/domain"

// FileSystem creates file artifacts and performs file actions.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// File captures the current state of path as an artifact.
	File(path string, opts domain.FileOptions) domain.Artifact

	// Tree captures every regular file below root, in lexical order.
	Tree(root string, opts domain.FileOptions) ([]domain.Artifact, error)

	// Copy copies src to dst, creating parent directories of dst.
	Copy(src, dst string) error

	// Remove deletes path and anything below it. A missing path is an error.
	Remove(path string) error
}
