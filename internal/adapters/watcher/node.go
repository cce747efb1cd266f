package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smelt/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory creates a fresh watcher for one watch round.
type Factory func() (ports.Watcher, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return func() (ports.Watcher, error) {
				return NewWatcher()
			}, nil
		},
	})
}
