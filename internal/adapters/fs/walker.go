// Package fs provides file system adapters: file artifacts, tree walking, hashing and file actions.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker enumerates the regular files below a directory.
type Walker struct {
	ignores []string
}

// NewWalker creates a Walker. Names matching any ignore pattern are skipped.
func NewWalker(ignores ...string) *Walker {
	return &Walker{ignores: ignores}
}

// WalkFiles yields every file below root in lexical order, skipping VCS metadata.
// A walk error is yielded once with an empty path and ends the sequence.
func (w *Walker) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if w.skipDir(d.Name()) && path != root {
					return filepath.SkipDir
				}
				return nil
			}
			if w.ignored(d.Name()) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// skipDir reports whether a directory is VCS metadata or ignored.
func (w *Walker) skipDir(name string) bool {
	return name == ".git" || name == ".jj" || w.ignored(name)
}

func (w *Walker) ignored(name string) bool {
	for _, ignore := range w.ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
