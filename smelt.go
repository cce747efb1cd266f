// Package smelt is a minimal incremental build engine.
//
// A build definition is a small Go program. It registers tasks on a Session and
// hands control to Main:
//
//	func main() {
//		smelt.Main(func(s *smelt.Session) {
//			s.Task("make_main", func(ctx context.Context) (smelt.Artifact, error) {
//				if err := s.Use(s.File("main.c")); err != nil {
//					return nil, err
//				}
//				return s.File("main.o"), s.Shell(ctx, "cc -c main.c")
//			}, smelt.Public("main", "Compile main.c"))
//		})
//	}
//
// Task bodies declare their sources with Use and Setting. The first action of an
// invocation compares the signature of those sources with the one recorded by the
// last successful run and skips every action of the invocation when they match.
package smelt

import (
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/engine/session"
)

type (
	// Session owns the registered tasks, the settings and the signature cache.
	Session = session.Session
	// Task is a registered task. Invoke runs it from another task body.
	Task = session.Task
	// Body is the build logic of a task.
	Body = session.Body
	// Artifact is anything that can be identified and checked for existence.
	Artifact = domain.Artifact

	// TaskOption configures a task at registration.
	TaskOption = session.TaskOption
	// FileOption selects what a File artifact observes.
	FileOption = session.FileOption
	// ShellOption configures a Shell action.
	ShellOption = session.ShellOption
	// DeleteOption configures a Delete action.
	DeleteOption = session.DeleteOption
)

// Public publishes a task on the command line under name, described by description in --list.
func Public(name, description string) TaskOption {
	return session.Public(name, description)
}

// Content toggles the content digest of a File artifact.
func Content(enabled bool) FileOption {
	return session.Content(enabled)
}

// ModTime toggles the modification time of a File artifact.
func ModTime(enabled bool) FileOption {
	return session.ModTime(enabled)
}

// Size toggles the byte size of a File artifact.
func Size(enabled bool) FileOption {
	return session.Size(enabled)
}

// InDir runs a Shell action in dir.
func InDir(dir string) ShellOption {
	return session.InDir(dir)
}

// WithEnv adds KEY=VALUE entries to the environment of a Shell action.
func WithEnv(env ...string) ShellOption {
	return session.WithEnv(env...)
}

// IgnoreErrors makes a Delete action succeed when the path cannot be removed.
func IgnoreErrors() DeleteOption {
	return session.IgnoreErrors()
}

// Token wraps value as an artifact outside of a session, for instance in tests.
func Token(value any) Artifact {
	return domain.NewToken(value)
}
