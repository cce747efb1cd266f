package tui_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smelt/internal/adapters/tui"
)

func newHeadlessRenderer() *tui.Renderer {
	return tui.NewRenderer(
		tui.NewModel(),
		tea.WithInput(strings.NewReader("")),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
		tea.WithoutRenderer(),
	)
}

func TestRenderer_Lifecycle(t *testing.T) {
	t.Parallel()

	renderer := newHeadlessRenderer()

	require.NoError(t, renderer.Start(context.Background()))
	require.NoError(t, renderer.Stop())
	require.NoError(t, renderer.Wait())
}

func TestRenderer_ForwardsEvents(t *testing.T) {
	t.Parallel()

	renderer := newHeadlessRenderer()
	require.NoError(t, renderer.Start(context.Background()))

	now := time.Now()
	renderer.OnTaskStart("s1", "", "make_app (app)", now)
	renderer.OnTaskStart("s2", "s1", "make_main", now)
	renderer.OnTaskLog("s2", []byte("cc -c main.c\n"))
	renderer.OnTaskComplete("s2", now, nil, true)
	renderer.OnTaskComplete("s1", now, nil, false)

	require.NoError(t, renderer.Stop())
	require.NoError(t, renderer.Wait())

	m := renderer.Model()
	require.Len(t, m.Tasks, 2)
	assert.Equal(t, tui.StatusDone, m.Tasks[0].Status)
	assert.Equal(t, tui.StatusSkipped, m.Tasks[1].Status)
	assert.Equal(t, 1, m.Tasks[1].Depth)
}
