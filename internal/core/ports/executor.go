// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/smelt/internal/core/domain"
)

// Executor runs shell commands on behalf of actions.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command and waits for it to finish.
	//
	// Output is written to stdout and stderr as it is produced.
	// A non-zero exit status is returned as an error carrying exit_code metadata.
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error
}
