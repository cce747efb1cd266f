package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

var skipDirectories = map[string]bool{
	".git": true,
	".jj":  true,
}

const eventChannelBuffer = 100

// Watcher reports changes to a set of files and directory trees using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	onError   func(error)

	mu    sync.RWMutex
	files map[string]bool
	trees []string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithErrorHandler sets the function receiving errors reported by fsnotify.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a watcher. Nothing is watched until Start.
func NewWatcher(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	w := &Watcher{
		fsWatcher: fsw,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		onError:   func(error) {},
		files:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches paths until ctx is done or Stop is called.
// A file is watched through its parent directory and only its own events are reported.
// A directory is watched recursively, including directories created later.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", p)
		}

		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			if err := w.addTree(abs); err != nil {
				return err
			}
			continue
		}

		w.mu.Lock()
		w.files[abs] = true
		w.mu.Unlock()
		if err := w.add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop releases the underlying fsnotify watcher. Events ends once pending events are drained.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of relevant file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) add(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", dir)
	}
	return nil
}

func (w *Watcher) addTree(root string) error {
	w.mu.Lock()
	w.trees = append(w.trees, root)
	w.mu.Unlock()

	for dir := range directories(root) {
		if err := w.add(dir); err != nil {
			return err
		}
	}
	return nil
}

// directories yields root and every directory below it, skipping VCS metadata.
func directories(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped.
				return nil //nolint:nilerr // keep walking
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDirectories[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent, relevant := w.convertEvent(event)
			if !relevant {
				continue
			}

			if watchEvent.Operation == ports.OpCreate && w.inTree(event.Name) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirectories[info.Name()] {
					for dir := range directories(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

			select {
			case w.events <- watchEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.onError(zerr.Wrap(err, domain.ErrWatchFailed.Error()))
		}
	}
}

// convertEvent maps an fsnotify event and reports whether it concerns a watched path.
func (w *Watcher) convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	if !w.watched(event.Name) {
		return ports.WatchEvent{}, false
	}

	var op ports.WatchOp
	switch {
	case event.Has(fsnotify.Write):
		op = ports.OpWrite
	case event.Has(fsnotify.Create):
		op = ports.OpCreate
	case event.Has(fsnotify.Remove):
		op = ports.OpRemove
	case event.Has(fsnotify.Rename):
		op = ports.OpRename
	default:
		return ports.WatchEvent{}, false
	}

	return ports.WatchEvent{Path: event.Name, Operation: op}, true
}

func (w *Watcher) watched(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.files[path] {
		return true
	}
	return w.inTreeLocked(path)
}

func (w *Watcher) inTree(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.inTreeLocked(path)
}

func (w *Watcher) inTreeLocked(path string) bool {
	for _, root := range w.trees {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !startsWithParent(rel) {
			return true
		}
	}
	return false
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
