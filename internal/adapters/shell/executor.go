// Package shell provides a shell-based executor for running actions.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultShell is the interpreter used for command lines.
const DefaultShell = "/bin/sh"

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor by running command lines through sh -c.
type Executor struct {
	shell string
	pty   bool
}

// NewExecutor creates a new Executor. With usePTY set, commands run attached
// to a pseudo terminal and their stdout and stderr are merged.
func NewExecutor(usePTY bool) *Executor {
	return &Executor{
		shell: DefaultShell,
		pty:   usePTY,
	}
}

// Execute runs the command line and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, command domain.Command, stdout, stderr io.Writer) error {
	if strings.TrimSpace(command.Line) == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, e.shell, "-c", command.Line) //nolint:gosec // command comes from the build definition
	cmd.Dir = command.Dir
	cmd.Env = resolveEnvironment(os.Environ(), command.Env)

	var err error
	if e.pty {
		err = runPTY(cmd, stdout)
	} else {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err = cmd.Run()
	}
	if err == nil {
		return nil
	}

	// Capture exit code if possible
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	failure := zerr.Wrap(domain.ErrActionFailed, "command failed: "+err.Error())
	return zerr.With(zerr.With(failure, "command", command.Line), domain.ExitCodeKey, exitCode)
}

// runPTY starts cmd in a pseudo terminal and copies its output to w until it exits.
func runPTY(cmd *exec.Cmd, w io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		// Reading the master returns EIO once the child has exited.
		_, _ = io.Copy(w, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	_ = ptmx.Close()
	return err
}

// resolveEnvironment applies overrides on top of the system environment.
// The result is sorted so that commands see a stable ordering.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, list := range [][]string{sysEnv, overrides} {
		for _, entry := range list {
			if k, v, ok := strings.Cut(entry, "="); ok {
				envMap[k] = v
			}
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}
