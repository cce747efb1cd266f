package session

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/smelt/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smelt/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smelt/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smelt/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smelt/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the session Graft node.
const NodeID graft.ID = "engine.session"

func init() {
	graft.Register(graft.Node[*Session]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			shell.NodeID,
			fs.FileSystemNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Session, error) {
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			// The executable stands in for the build definition until the entry point sets it.
			origin, err := os.Executable()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to locate executable")
			}

			return New(store, executor, fsys, log, telemetry.NewNoOpTracer(), origin), nil
		},
	})
}
