package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/smelt/internal/adapters/telemetry"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/smelt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_SpanLifecycle(t *testing.T) {
	t.Parallel()

	renderer := newRecordingRenderer()
	tracer := telemetry.NewOTelTracer(telemetry.NewProvider(renderer), "smelt").WithRenderer(renderer)

	ctx, outer := tracer.Start(context.Background(), "make_app (app)", ports.WithAttribute(domain.AttrTaskID, "make_app"))
	_, inner := tracer.Start(ctx, "make_lib")

	_, err := inner.Write([]byte("gcc -c lib.c\n"))
	require.NoError(t, err)
	inner.SetAttribute(domain.AttrCached, true)
	inner.End()

	outer.RecordError(errors.New("task make_app: action failed"))
	outer.End()

	renderer.mu.Lock()
	defer renderer.mu.Unlock()

	require.Len(t, renderer.started, 2)
	outerID, innerID := renderer.started[0], renderer.started[1]
	assert.Equal(t, "make_app (app)", renderer.names[outerID])
	assert.Empty(t, renderer.parents[outerID])
	assert.Equal(t, outerID, renderer.parents[innerID])
	assert.Equal(t, "gcc -c lib.c\n", string(renderer.logs[innerID]))

	require.Len(t, renderer.completed, 2)
	assert.Equal(t, innerID, renderer.completed[0].spanID)
	assert.True(t, renderer.completed[0].cached)
	require.NoError(t, renderer.completed[0].err)

	assert.Equal(t, outerID, renderer.completed[1].spanID)
	assert.False(t, renderer.completed[1].cached)
	require.EqualError(t, renderer.completed[1].err, "task make_app: action failed")
}

func TestOTelTracer_WithoutRenderer(t *testing.T) {
	t.Parallel()

	tracer := telemetry.NewOTelTracer(sdktrace.NewTracerProvider(), "smelt")
	_, span := tracer.Start(context.Background(), "make_main")

	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.SetAttribute("count", 3)
	span.SetAttribute("files", []string{"a.c"})
	span.SetAttribute("other", struct{}{})
	span.End()
}

func TestBridge_OnEndWithError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockRenderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(mockRenderer)

	mockRenderer.EXPECT().
		OnTaskComplete(gomock.Any(), gomock.Any(), gomock.Any(), false).
		Do(func(_ string, _ time.Time, err error, _ bool) {
			assert.EqualError(t, err, "task failed")
		})

	tp := sdktrace.NewTracerProvider()
	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	span.SetStatus(codes.Error, "")
	span.End()

	if roSpan, ok := span.(sdktrace.ReadOnlySpan); ok {
		bridge.OnEnd(roSpan)
	}
}

func TestBridge_NilRenderer(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	span.End()
}

func TestNoOpTracer_Start(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "test-span")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()
}
