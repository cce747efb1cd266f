package progrock_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vito/progrock"
	"go.trai.ch/smelt/internal/adapters/telemetry"
	smeltprogrock "go.trai.ch/smelt/internal/adapters/telemetry/progrock"
	"go.trai.ch/smelt/internal/core/domain"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestSummary_WriteStatus(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	failure := "exit status 1"

	s := smeltprogrock.NewSummary()
	require.NoError(t, s.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "make_main", Started: timestamppb.New(start)},
			{Id: "2", Name: "make_lib", Started: timestamppb.New(start)},
			{Id: "3", Name: "make_app", Started: timestamppb.New(start)},
		},
	}))
	require.NoError(t, s.WriteStatus(&progrock.StatusUpdate{
		Vertexes: []*progrock.Vertex{
			{Id: "1", Name: "make_main", Cached: true, Completed: timestamppb.New(start.Add(time.Second))},
			{Id: "2", Name: "make_lib", Completed: timestamppb.New(start.Add(2 * time.Second))},
			{Id: "3", Name: "make_app", Error: &failure, Completed: timestamppb.New(start.Add(3 * time.Second))},
		},
	}))

	totals := s.Totals()
	assert.Equal(t, 3, totals.Tasks)
	assert.Equal(t, 1, totals.Executed)
	assert.Equal(t, 1, totals.Skipped)
	assert.Equal(t, 1, totals.Failed)
	assert.Equal(t, 0, totals.Running)
	assert.Equal(t, 3*time.Second, totals.Elapsed)

	var buf bytes.Buffer
	require.NoError(t, s.Print(&buf))
	assert.Equal(t, "3 tasks: 1 executed, 1 skipped, 1 failed in 3s\n  failed: make_app\n", buf.String())
	require.NoError(t, s.Close())
}

func TestTracer_RecordsVertices(t *testing.T) {
	t.Parallel()

	summary := smeltprogrock.NewSummary()
	tracer := smeltprogrock.NewTracer(telemetry.NewNoOpTracer(), summary)

	ctx, app := tracer.Start(context.Background(), "make_app (app)")

	_, lib := tracer.Start(ctx, "make_lib")
	_, err := lib.Write([]byte("compiling\n"))
	require.NoError(t, err)
	lib.SetAttribute(domain.AttrCached, true)
	lib.End()

	// Same name twice in one run.
	_, again := tracer.Start(ctx, "make_lib")
	again.SetAttribute(domain.AttrCached, false)
	again.End()

	app.RecordError(errors.New("boom"))
	app.End()

	totals := summary.Totals()
	assert.Equal(t, 3, totals.Tasks)
	assert.Equal(t, 1, totals.Skipped)
	assert.Equal(t, 1, totals.Executed)
	assert.Equal(t, 1, totals.Failed)
	assert.Equal(t, []string{"make_app (app)"}, totals.Failures)
}
