package smelt

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/smelt/internal/app"
	"go.trai.ch/smelt/internal/cli"
	"go.trai.ch/smelt/internal/core/domain"
	_ "go.trai.ch/smelt/internal/wiring"
)

// Main registers the tasks through define, runs the command line in os.Args and exits.
// The file calling Main is a source of every task, so editing the build definition
// invalidates every signature.
func Main(define func(*Session)) {
	_, origin, _, _ := runtime.Caller(1)
	os.Exit(run(context.Background(), os.Args, origin, define))
}

// Run is Main without the process exit. args holds the program name followed by the
// command line arguments. It returns the exit status.
func Run(ctx context.Context, args []string, define func(*Session)) int {
	_, origin, _, _ := runtime.Caller(1)
	return run(ctx, args, origin, define)
}

func run(ctx context.Context, args []string, origin string, define func(*Session)) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Every run resolves a fresh graph, so a process can run several build definitions.
	components, _, err := graft.ExecuteFor[*app.Components](ctx, graft.WithCache(graft.NewMemoryCache()))
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// A binary moved away from its sources keeps the executable as origin.
	if origin != "" {
		if _, err := os.Stat(origin); err == nil {
			components.Session.SetOrigin(origin)
		}
	}

	define(components.Session)

	name := "smelt"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}

	c := cli.New(name, components.App, components.Logger)
	c.SetArgs(args)
	if err := c.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return domain.ExitCode(err)
	}
	return 0
}
