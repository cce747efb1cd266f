// Package session implements the incremental build engine.
//
// A Session owns the task registry, the settings store and the stack of
// running invocations. Task bodies declare sources with Use and Setting and
// perform side effects through Shell, Copy and Delete. The first action of an
// invocation compares the signature of its sources with the cache and every
// action of that invocation follows the same decision.
package session

import (
	"errors"
	"maps"
	"path/filepath"
	"slices"

	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
)

// Session is one build process: registry, settings, cache and invocation stack.
// It is not safe for concurrent use; tasks run one at a time.
type Session struct {
	cache    ports.CacheStore
	executor ports.Executor
	fs       ports.FileSystem
	logger   ports.Logger
	tracer   ports.Tracer

	// origin is the build definition file, an implicit source of every invocation.
	origin string

	registry *Registry
	settings *domain.Settings
	stack    []*invocation
	created  []domain.Artifact
	deferred []error

	// watched holds the paths of files used as sources.
	watched map[string]struct{}
}

// New creates a Session. origin is the path of the build definition file.
func New(
	cache ports.CacheStore,
	executor ports.Executor,
	fsys ports.FileSystem,
	logger ports.Logger,
	tracer ports.Tracer,
	origin string,
) *Session {
	return &Session{
		cache:    cache,
		executor: executor,
		fs:       fsys,
		logger:   logger,
		tracer:   tracer,
		origin:   origin,
		registry: newRegistry(),
		settings: domain.NewSettings(),
		watched:  make(map[string]struct{}),
	}
}

// SetTracer replaces the tracer used for subsequent invocations.
func (s *Session) SetTracer(tracer ports.Tracer) {
	s.tracer = tracer
}

// SetOrigin replaces the build definition file.
func (s *Session) SetOrigin(path string) {
	s.origin = path
}

// Origin returns the build definition file.
func (s *Session) Origin() string {
	return s.origin
}

// Registry returns the task registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Cache returns the cache store.
func (s *Session) Cache() ports.CacheStore {
	return s.cache
}

// Err returns the errors recorded while defining tasks and settings.
func (s *Session) Err() error {
	return errors.Join(s.deferred...)
}

func (s *Session) deferErr(err error) {
	if err != nil {
		s.deferred = append(s.deferred, err)
	}
}

// Watched returns the sorted paths of every file used as a source so far,
// including the build definition.
func (s *Session) Watched() []string {
	return slices.Sorted(maps.Keys(s.watched))
}

func (s *Session) watch(a domain.Artifact) {
	f, ok := a.(interface{ Path() string })
	if !ok {
		return
	}
	path := f.Path()
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	s.watched[path] = struct{}{}
}

// Audit warns about every artifact created through the session that was never used,
// then forgets them. It returns the number of dropped artifacts.
func (s *Session) Audit() int {
	dropped := 0
	for _, a := range s.created {
		if !a.Used() {
			s.logger.Warn("Dropped an unused artifact: " + a.Display())
			dropped++
		}
	}
	s.created = s.created[:0]
	return dropped
}

// Close audits unused artifacts and flushes the cache.
func (s *Session) Close() error {
	s.Audit()
	return s.cache.Flush()
}
