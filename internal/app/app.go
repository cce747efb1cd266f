// Package app runs the goals of a build definition.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/smelt/internal/adapters/detector"                         //nolint:depguard // Wired in app layer
	"go.trai.ch/smelt/internal/adapters/linear"                           //nolint:depguard // Wired in app layer
	"go.trai.ch/smelt/internal/adapters/telemetry"                        //nolint:depguard // Wired in app layer
	smeltprogrock "go.trai.ch/smelt/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/smelt/internal/adapters/tui"                              //nolint:depguard // Wired in app layer
	"go.trai.ch/smelt/internal/adapters/watcher"                          //nolint:depguard // Wired in app layer
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/smelt/internal/engine/session"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App dispatches command line goals to the tasks of a session.
type App struct {
	session  *session.Session
	config   *domain.Config
	settings ports.SettingsLoader
	logger   ports.Logger
	watchers watcher.Factory

	stdout     io.Writer
	stderr     io.Writer
	detect     func() detector.OutputMode
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	sess *session.Session,
	cfg *domain.Config,
	settings ports.SettingsLoader,
	logger ports.Logger,
	watchers watcher.Factory,
) *App {
	return &App{
		session:  sess,
		config:   cfg,
		settings: settings,
		logger:   logger,
		watchers: watchers,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		detect:   detector.DetectEnvironment,
	}
}

// WithTeaOptions adds bubbletea program options used by the interactive renderer.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithOutput replaces the process streams used for listings and the linear renderer.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Session returns the session the App dispatches to.
func (a *App) Session() *session.Session {
	return a.session
}

// Options selects what Run does.
type Options struct {
	// Goals are public task names, run in order.
	Goals []string
	// Assignments override settings after the settings file.
	Assignments []domain.Assignment
	List        bool
	All         bool
	Clean       bool
	Watch       bool
	// OutputMode is auto, tui or linear. Empty uses the configured mode.
	OutputMode string
}

// Run applies settings, then cleans, lists, and builds the requested goals in that order.
// The cache is flushed before Run returns, whether or not a goal failed.
func (a *App) Run(ctx context.Context, opts Options) (err error) {
	if err := a.session.Err(); err != nil {
		return err
	}

	mode, err := a.resolveMode(opts.OutputMode)
	if err != nil {
		return err
	}

	if err := a.applySettings(opts.Assignments); err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, a.session.Close())
	}()

	if opts.Clean {
		if err := a.session.Cache().Clear(); err != nil {
			return err
		}
	}

	if opts.List {
		if err := a.List(a.stdout); err != nil {
			return err
		}
	}

	goals := a.goals(opts)
	if len(goals) == 0 {
		return nil
	}

	if opts.Watch {
		return a.Watch(ctx, goals, mode)
	}
	return a.Build(ctx, goals, mode)
}

func (a *App) resolveMode(requested string) (detector.OutputMode, error) {
	if requested == "" {
		requested = a.config.Output
	}
	mode, err := detector.ParseMode(requested)
	if err != nil {
		return detector.ModeAuto, err
	}
	return detector.ResolveMode(a.detect(), mode), nil
}

func (a *App) applySettings(cli []domain.Assignment) error {
	fromFile, err := a.settings.Load(a.config.SettingsFile)
	if err != nil {
		return err
	}
	if err := a.session.ApplyAssignments(fromFile); err != nil {
		return zerr.With(err, "file", a.config.SettingsFile)
	}
	return a.session.ApplyAssignments(cli)
}

// goals returns the public names of every task when All is set, followed by the named goals.
func (a *App) goals(opts Options) []string {
	var goals []string
	if opts.All {
		seen := make(map[string]bool)
		for _, t := range a.session.Registry().Public() {
			name := t.Node().PublicName
			if !seen[name] {
				seen[name] = true
				goals = append(goals, name)
			}
		}
	}
	return append(goals, opts.Goals...)
}

// List prints the public tasks and the settings with their current values.
func (a *App) List(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Available tasks:"); err != nil {
		return err
	}
	for _, t := range a.session.Registry().Public() {
		node := t.Node()
		line := "--> " + node.PublicName
		if node.Description != "" {
			line += " - " + node.Description
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Settings:"); err != nil {
		return err
	}
	for _, s := range a.session.Settings() {
		if _, err := fmt.Fprintf(w, "--> %s = %s\n", s.Name, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// Build runs goals once, rendering the invocations in the given mode.
func (a *App) Build(ctx context.Context, goals []string, mode detector.OutputMode) error {
	renderer := a.newRenderer(ctx, mode)

	tp := telemetry.NewProvider(renderer)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()

	var tracer ports.Tracer = telemetry.NewOTelTracer(tp, "smelt").WithRenderer(renderer)
	var summary *smeltprogrock.Summary
	if a.config.Summary {
		summary = smeltprogrock.NewSummary()
		tracer = smeltprogrock.NewTracer(tracer, summary)
	}
	a.session.SetTracer(tracer)
	defer a.session.SetTracer(telemetry.NewNoOpTracer())

	if mode == detector.ModeTUI {
		restore := a.holdLogs()
		defer restore()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()
		return a.runGoals(gctx, goals)
	})

	err := g.Wait()
	if summary != nil {
		_ = summary.Print(a.stderr)
	}
	return err
}

func (a *App) newRenderer(ctx context.Context, mode detector.OutputMode) ports.Renderer {
	if mode == detector.ModeTUI {
		opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		return tui.New(a.stderr, opts...)
	}
	return linear.NewRenderer(a.stdout, a.stderr)
}

// runGoals invokes every task published under each goal and marks their outputs used.
// An unknown goal is reported and skipped.
func (a *App) runGoals(ctx context.Context, goals []string) error {
	for _, name := range goals {
		a.logger.Info(domain.MarkerGoal + " " + name)

		tasks := a.session.Registry().Find(name)
		if len(tasks) == 0 {
			a.logger.Warn(fmt.Sprintf("Could not find task with public name '%s'", name))
			continue
		}

		for _, t := range tasks {
			out, err := t.Invoke(ctx)
			if err != nil {
				return zerr.With(err, "goal", name)
			}
			a.session.MarkUsed(out)
		}
	}
	return nil
}

// logSink is implemented by loggers whose output can be redirected.
type logSink interface {
	SetOutput(w io.Writer)
	Writer() io.Writer
}

// holdLogs buffers log lines while the interactive renderer owns the terminal
// and returns a function writing them out.
func (a *App) holdLogs() func() {
	sink, ok := a.logger.(logSink)
	if !ok {
		return func() {}
	}

	prev := sink.Writer()
	buf := &lockedBuffer{}
	sink.SetOutput(buf)
	return func() {
		sink.SetOutput(prev)
		_, _ = prev.Write(buf.Bytes())
	}
}

// lockedBuffer is a bytes.Buffer safe for the concurrent writes of the logger.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Bytes()
}
