package session

import (
	"context"

	"go.trai.ch/smelt/internal/core/domain"
)

// ShellOption configures a Shell action.
type ShellOption func(*domain.Command)

// InDir runs the command in dir.
func InDir(dir string) ShellOption {
	return func(c *domain.Command) {
		c.Dir = dir
	}
}

// WithEnv adds KEY=VALUE entries to the command's environment.
func WithEnv(env ...string) ShellOption {
	return func(c *domain.Command) {
		c.Env = append(c.Env, env...)
	}
}

// DeleteOption configures a Delete action.
type DeleteOption func(*deleteConfig)

type deleteConfig struct {
	ignoreErrors bool
}

// IgnoreErrors makes Delete succeed when the path is missing or cannot be removed.
func IgnoreErrors() DeleteOption {
	return func(c *deleteConfig) {
		c.ignoreErrors = true
	}
}

// Shell runs line with `sh -c` unless the running invocation skips.
// Output goes to the invocation's span. A non-zero exit status is returned as an error
// carrying the command and its exit_code.
func (s *Session) Shell(ctx context.Context, line string, opts ...ShellOption) error {
	inv, skip, err := s.gate("Shell")
	if err != nil || skip {
		return err
	}

	cmd := domain.Command{Line: line}
	for _, opt := range opts {
		opt(&cmd)
	}
	return s.executor.Execute(ctx, cmd, inv.span, inv.span)
}

// Copy copies src to dst unless the running invocation skips.
func (s *Session) Copy(_ context.Context, src, dst string) error {
	_, skip, err := s.gate("Copy")
	if err != nil || skip {
		return err
	}
	return s.fs.Copy(src, dst)
}

// Delete removes path and anything below it unless the running invocation skips.
func (s *Session) Delete(_ context.Context, path string, opts ...DeleteOption) error {
	_, skip, err := s.gate("Delete")
	if err != nil || skip {
		return err
	}

	var cfg deleteConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := s.fs.Remove(path); err != nil && !cfg.ignoreErrors {
		return err
	}
	return nil
}

// gate resolves the running invocation and its skip decision.
func (s *Session) gate(call string) (*invocation, bool, error) {
	inv, err := s.current(call)
	if err != nil {
		return nil, false, err
	}
	skip, err := s.decide(inv)
	if err != nil {
		return nil, false, err
	}
	return inv, skip, nil
}
