package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation, so the same span stream
// drives either the interactive TUI or linear CI logs.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer. Asynchronous renderers launch goroutines here.
	Start(ctx context.Context) error

	// Stop signals the renderer to flush and shut down.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnTaskStart is called when a task invocation begins.
	// parentID is empty for goals invoked from the command line.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a task emits output.
	// data may contain partial lines or ANSI sequences.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a task invocation ends.
	// cached is true when the invocation skipped its actions.
	OnTaskComplete(spanID string, endTime time.Time, err error, cached bool)
}
