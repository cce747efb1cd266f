// Package tui provides the interactive terminal renderer.
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/smelt/internal/ui/output"
	"go.trai.ch/smelt/internal/ui/style"
)

// NewModel creates an empty model that follows the most recent invocation.
func NewModel() *Model {
	return &Model{
		Tasks:      make([]*TaskNode, 0),
		SpanMap:    make(map[string]*TaskNode),
		FollowMode: true,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(style.Ember)),
		),
	}
}

// New creates a full-screen renderer writing to w. opts are applied after the output option.
func New(w io.Writer, opts ...tea.ProgramOption) *Renderer {
	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return NewRenderer(NewModel(), append([]tea.ProgramOption{tea.WithOutput(w)}, opts...)...)
}
