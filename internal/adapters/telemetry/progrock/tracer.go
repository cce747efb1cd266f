// Package progrock records task invocations as progrock vertices, so a run can
// be summarized once it is over.
package progrock

import (
	"context"
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
)

var (
	_ ports.Tracer = (*Tracer)(nil)
	_ ports.Span   = (*Span)(nil)
)

// Tracer decorates a ports.Tracer, recording every span as a vertex.
type Tracer struct {
	next ports.Tracer
	rec  *progrock.Recorder

	mu    sync.Mutex
	count int
}

// NewTracer wraps next and records vertices to w.
func NewTracer(next ports.Tracer, w progrock.Writer) *Tracer {
	return &Tracer{
		next: next,
		rec:  progrock.NewRecorder(w),
	}
}

// Start starts a span on the wrapped tracer and a vertex for it.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	ctx, span := t.next.Start(ctx, name, opts...)

	// A task invoked twice in one run gets two vertices.
	t.mu.Lock()
	t.count++
	d := digest.FromString(fmt.Sprintf("%d/%s", t.count, name))
	t.mu.Unlock()

	return ctx, &Span{next: span, vertex: t.rec.Vertex(d, name)}
}

// Span forwards to the wrapped span and mirrors its outcome on a vertex.
type Span struct {
	next   ports.Span
	vertex *progrock.VertexRecorder
	err    error
}

// Write forwards p to the wrapped span and the vertex output.
func (s *Span) Write(p []byte) (int, error) {
	_, _ = s.vertex.Stdout().Write(p)
	return s.next.Write(p)
}

// SetAttribute forwards the attribute and marks the vertex cached when the
// invocation was skipped.
func (s *Span) SetAttribute(key string, value any) {
	if cached, ok := value.(bool); ok && key == domain.AttrCached && cached {
		s.vertex.Cached()
	}
	s.next.SetAttribute(key, value)
}

// RecordError remembers err for the vertex and forwards it.
func (s *Span) RecordError(err error) {
	s.err = err
	s.next.RecordError(err)
}

// End completes the vertex and the wrapped span.
func (s *Span) End() {
	s.vertex.Done(s.err)
	s.next.End()
}
