package session_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/smelt/internal/adapters/cache"
	"go.trai.ch/smelt/internal/adapters/fs"
	"go.trai.ch/smelt/internal/adapters/logger"
	"go.trai.ch/smelt/internal/adapters/telemetry"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports/mocks"
	"go.trai.ch/smelt/internal/engine/session"
	"go.uber.org/mock/gomock"
)

// project is a build directory shared by several simulated runs of one build definition.
type project struct {
	t    *testing.T
	dir  string
	exec *mocks.MockExecutor
	log  bytes.Buffer
}

func newProject(t *testing.T) *project {
	t.Helper()

	p := &project{
		t:    t,
		dir:  t.TempDir(),
		exec: mocks.NewMockExecutor(gomock.NewController(t)),
	}
	p.write("build.go", "package main\n")
	p.write("main.c", "int main(void) { return lib(); }\n")
	p.write("lib.c", "int lib(void) { return 0; }\n")
	return p
}

func (p *project) path(name string) string {
	return filepath.Join(p.dir, name)
}

func (p *project) write(name, content string) {
	p.t.Helper()
	require.NoError(p.t, os.WriteFile(p.path(name), []byte(content), domain.FilePerm))
}

func (p *project) cacheFile() string {
	p.t.Helper()
	data, err := os.ReadFile(p.path(domain.CacheFileName))
	if os.IsNotExist(err) {
		return ""
	}
	require.NoError(p.t, err)
	return string(data)
}

// open starts a new process over the project: a fresh session and a cache loaded from disk.
func (p *project) open() *session.Session {
	l := logger.New()
	l.SetOutput(&p.log)
	return session.New(
		cache.NewStore(p.path(domain.CacheFileName), domain.FlushOnSessionEnd),
		p.exec,
		fs.NewFileSystem(fs.NewHasher(), fs.NewWalker()),
		l,
		telemetry.NewNoOpTracer(),
		p.path("build.go"),
	)
}

// expect registers the commands the next run must execute, in order.
func (p *project) expect(lines ...string) {
	calls := make([]any, 0, len(lines))
	for _, line := range lines {
		calls = append(calls, p.exec.EXPECT().
			Execute(gomock.Any(), domain.Command{Line: line}, gomock.Any(), gomock.Any()).
			Return(nil))
	}
	gomock.InOrder(calls...)
}

// clang registers the three-task C build: app links the objects produced by main and lib.
type clang struct {
	app, main, lib *session.Task
}

func defineClang(s *session.Session, p *project) clang {
	compile := func(id, src string) *session.Task {
		return s.Task(id, func(ctx context.Context) (domain.Artifact, error) {
			if err := s.Use(s.File(p.path(src))); err != nil {
				return nil, err
			}
			if err := s.Shell(ctx, "cc -c "+src); err != nil {
				return nil, err
			}
			return s.Token(id + ".o"), nil
		})
	}

	c := clang{
		main: compile("make_main", "main.c"),
		lib:  compile("make_lib", "lib.c"),
	}
	c.app = s.Task("make_app", func(ctx context.Context) (domain.Artifact, error) {
		m, err := c.main.Invoke(ctx)
		if err != nil {
			return nil, err
		}
		l, err := c.lib.Invoke(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.Use(m, l); err != nil {
			return nil, err
		}
		if err := s.Shell(ctx, "cc -o app main.o lib.o"); err != nil {
			return nil, err
		}
		return s.Token("app"), nil
	}, session.Public("app", "Build the application"))
	return c
}

// runGoal invokes task as the command line would and closes the session.
func runGoal(t *testing.T, s *session.Session, task *session.Task) error {
	t.Helper()
	out, err := task.Invoke(context.Background())
	s.MarkUsed(out)
	require.NoError(t, s.Close())
	return err
}
