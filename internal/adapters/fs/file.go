package fs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/smelt/internal/core/domain"
)

var _ domain.Artifact = (*File)(nil)

// File is an artifact for a path on disk. Its observations are captured when
// it is constructed, so its identity does not follow later rewrites.
type File struct {
	domain.Usage

	path    string
	opts    domain.FileOptions
	present bool
	digest  uint64
	modTime time.Time
	size    int64
	err     error
}

// NewFile captures path according to opts.
func NewFile(hasher *Hasher, path string, opts domain.FileOptions) *File {
	f := &File{path: path, opts: opts}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		f.err = err
		return f
	}
	f.present = true

	if opts.Content {
		f.digest, f.err = hasher.ComputeFileHash(path)
		if f.err != nil {
			f.present = false
			return f
		}
	}
	if opts.ModTime {
		f.modTime = info.ModTime()
	}
	if opts.Size {
		f.size = info.Size()
	}
	return f
}

// Path returns the path the artifact was built from.
func (f *File) Path() string {
	return f.path
}

// String returns the path, so a File can be formatted straight into a command line.
func (f *File) String() string {
	return f.path
}

// Err returns the error encountered while capturing, if any.
func (f *File) Err() error {
	return f.err
}

// Identify concatenates the path with every enabled observation.
func (f *File) Identify() string {
	var b strings.Builder
	b.WriteString(f.path)
	if f.opts.Content {
		b.WriteString("|content=")
		b.WriteString(strconv.FormatUint(f.digest, 16))
	}
	if f.opts.ModTime {
		b.WriteString("|mtime=")
		b.WriteString(strconv.FormatInt(f.modTime.UnixNano(), 10))
	}
	if f.opts.Size {
		b.WriteString("|size=")
		b.WriteString(strconv.FormatInt(f.size, 10))
	}
	return b.String()
}

// Exists reports whether the file was captured and is still present.
func (f *File) Exists() bool {
	if !f.present {
		return false
	}
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// Display returns the path.
func (f *File) Display() string {
	return f.path
}
