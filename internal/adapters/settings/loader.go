// Package settings reads persistent setting assignments from disk.
package settings

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SettingsLoader = (*FileLoader)(nil)

// FileLoader reads NAME=VALUE lines. Blank lines and lines starting with #
// are ignored.
type FileLoader struct{}

// NewLoader creates a FileLoader.
func NewLoader() *FileLoader {
	return &FileLoader{}
}

// Load returns the assignments of path in file order.
func (l *FileLoader) Load(path string) ([]domain.Assignment, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	var out []domain.Assignment
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		a, err := domain.ParseAssignment(line)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "path", path), "line", strconv.Itoa(lineNo))
		}
		out = append(out, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	}
	return out, nil
}
