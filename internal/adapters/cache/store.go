// Package cache implements the flat-file signature cache.
package cache

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// Store implements ports.CacheStore on top of a text file holding one
// "<task_id> <signature>" line per entry.
type Store struct {
	path      string
	flushEach bool

	mu        sync.RWMutex
	loaded    bool
	dirty     bool
	entries   map[string]string
	order     []string
	malformed int
}

// NewStore creates a Store backed by the file at path. Nothing is read until first access.
func NewStore(path string, mode domain.FlushMode) *Store {
	return &Store{
		path:      filepath.Clean(path),
		flushEach: mode == domain.FlushAlways,
		entries:   make(map[string]string),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored signature for taskID.
func (s *Store) Get(taskID string) (string, bool, error) {
	if err := s.ensureLoaded(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sig, ok := s.entries[taskID]
	return sig, ok, nil
}

// Set records the signature for taskID and flushes when configured to.
func (s *Store) Set(taskID, signature string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.entries[taskID]; !ok {
		s.order = append(s.order, taskID)
	}
	s.entries[taskID] = signature
	s.dirty = true
	s.mu.Unlock()

	if s.flushEach {
		return s.Flush()
	}
	return nil
}

// Flush writes every entry to disk if anything changed since the last flush.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	var buf bytes.Buffer
	for _, id := range s.order {
		buf.WriteString(id)
		buf.WriteByte(' ')
		buf.WriteString(s.entries[id])
		buf.WriteByte('\n')
	}

	if err := s.writeLocked(buf.Bytes()); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Clear drops every entry and truncates the backing file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]string)
	s.order = nil
	s.loaded = true
	s.dirty = false
	s.malformed = 0

	return s.writeLocked(nil)
}

// Malformed returns the number of lines skipped while loading.
func (s *Store) Malformed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.malformed
}

func (s *Store) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", s.path)
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		id, sig, ok := parseLine(scanner.Text())
		if !ok {
			if scanner.Text() != "" {
				s.malformed++
			}
			continue
		}
		if _, seen := s.entries[id]; !seen {
			s.order = append(s.order, id)
		}
		s.entries[id] = sig
	}
	if err := scanner.Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", s.path)
	}

	s.loaded = true
	return nil
}

// parseLine accepts exactly two fields separated by a single space.
func parseLine(line string) (id, sig string, ok bool) {
	fields := strings.Split(line, " ")
	if len(fields) != 2 || fields[0] == "" {
		return "", "", false
	}
	return fields[0], fields[1], true
}

func (s *Store) writeLocked(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.path)
	}
	return nil
}
