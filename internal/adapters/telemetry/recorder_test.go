package telemetry_test

import (
	"context"
	"sync"
	"time"
)

type completion struct {
	spanID string
	err    error
	cached bool
}

// recordingRenderer is a ports.Renderer that records every callback.
type recordingRenderer struct {
	mu        sync.Mutex
	started   []string
	parents   map[string]string
	names     map[string]string
	logs      map[string][]byte
	completed []completion
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		parents: make(map[string]string),
		names:   make(map[string]string),
		logs:    make(map[string][]byte),
	}
}

func (r *recordingRenderer) Start(_ context.Context) error { return nil }
func (r *recordingRenderer) Stop() error                   { return nil }
func (r *recordingRenderer) Wait() error                   { return nil }

func (r *recordingRenderer) OnTaskStart(spanID, parentID, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, spanID)
	r.parents[spanID] = parentID
	r.names[spanID] = name
}

func (r *recordingRenderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[spanID] = append(r.logs[spanID], data...)
}

func (r *recordingRenderer) OnTaskComplete(spanID string, _ time.Time, err error, cached bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, completion{spanID: spanID, err: err, cached: cached})
}
