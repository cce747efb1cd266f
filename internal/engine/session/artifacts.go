package session

import (
	"os"

	"go.trai.ch/smelt/internal/core/domain"
)

// FileOption selects the observations captured by a File artifact.
type FileOption func(*domain.FileOptions)

// Content toggles the content digest.
func Content(enabled bool) FileOption {
	return func(o *domain.FileOptions) {
		o.Content = enabled
	}
}

// ModTime toggles the modification time.
func ModTime(enabled bool) FileOption {
	return func(o *domain.FileOptions) {
		o.ModTime = enabled
	}
}

// Size toggles the byte size.
func Size(enabled bool) FileOption {
	return func(o *domain.FileOptions) {
		o.Size = enabled
	}
}

func fileOptions(opts []FileOption) domain.FileOptions {
	o := domain.DefaultFileOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// File captures path now. By default the content digest and size are observed.
func (s *Session) File(path string, opts ...FileOption) domain.Artifact {
	return s.track(s.fs.File(path, fileOptions(opts)))
}

// Tree captures every file below root, skipping version control metadata.
func (s *Session) Tree(root string, opts ...FileOption) ([]domain.Artifact, error) {
	files, err := s.fs.Tree(root, fileOptions(opts))
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		s.track(f)
	}
	return files, nil
}

// Token wraps value as an artifact that always exists.
func (s *Session) Token(value any) domain.Artifact {
	return s.track(domain.NewToken(value))
}

// Env captures the environment variable name.
func (s *Session) Env(name string) domain.Artifact {
	value, ok := os.LookupEnv(name)
	return s.track(domain.NewEnv(name, value, ok))
}

// MarkUsed marks an artifact as consumed outside of any task, such as a goal's output.
func (s *Session) MarkUsed(a domain.Artifact) {
	if a != nil {
		a.MarkUsed()
	}
}

func (s *Session) track(a domain.Artifact) domain.Artifact {
	s.created = append(s.created, a)
	return a
}
