package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change reported for a watched path.
type WatchOp uint8

// Changes reported by a Watcher.
const (
	OpCreate WatchOp = iota
	OpWrite
	OpRemove
	OpRename
)

// WatchEvent is one change to a file used as a source.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports changes to the files a build used.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching paths. A directory is watched with everything below it.
	Start(ctx context.Context, paths []string) error
	// Stop releases the underlying watches.
	Stop() error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
