package tui_test

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/smelt/internal/adapters/tui"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestView_BeforeResize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Initializing...", tui.NewModel().View())
}

func TestView_Waiting(t *testing.T) {
	t.Parallel()

	m := update(t, tui.NewModel(), tea.WindowSizeMsg{Width: 80, Height: 10})
	view := m.View()

	assert.Contains(t, view, "TASKS")
	assert.Contains(t, view, "LOGS (Waiting...)")
}

func TestView_TaskRows(t *testing.T) {
	t.Parallel()

	m := startCallTree(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})
	m = update(t, m, tui.MsgTaskLog{SpanID: "s3", Data: []byte("cc -c lib.c\n")})
	m = update(t, m, tui.MsgTaskComplete{SpanID: "s3"})

	view := m.View()
	assert.Contains(t, view, "make_app (app)")
	assert.Contains(t, view, "    ~ make_main", "nested invocations are indented")
	assert.Contains(t, view, "> ")
	assert.Contains(t, view, "✓ make_lib")
	assert.Contains(t, view, "LOGS: make_lib (Following)")
	assert.Contains(t, view, "cc -c lib.c")
}

func TestView_FailureHeader(t *testing.T) {
	t.Parallel()

	m := startCallTree(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 20})
	m = update(t, m, tui.MsgTaskComplete{SpanID: "s3", Err: errors.New("exit status 1")})

	view := m.View()
	assert.Contains(t, view, "✗ make_lib")
	assert.Contains(t, view, "FAILED: make_lib (Following)")
}
