package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	taskListWidthRatio = 0.3
	logPaneBorderWidth = 5
)

// TaskStatus represents the state of one invocation in the list.
type TaskStatus string

const (
	// StatusRunning indicates the invocation has started.
	StatusRunning TaskStatus = "Running"
	// StatusDone indicates the invocation committed after executing.
	StatusDone TaskStatus = "Done"
	// StatusSkipped indicates the signature matched and no action ran.
	StatusSkipped TaskStatus = "Skipped"
	// StatusError indicates the invocation aborted.
	StatusError TaskStatus = "Error"
)

// TaskNode is one invocation in the UI list.
type TaskNode struct {
	SpanID string
	Name   string
	// Depth is the nesting level: 0 for goals, 1 for tasks they invoke, and so on.
	Depth  int
	Status TaskStatus
	Err    error
	Term   *Vterm
}

// Model is the Bubble Tea model of the interactive renderer.
// Invocations are listed in the order they start, which is a pre-order walk of the call tree.
type Model struct {
	Tasks       []*TaskNode
	SpanMap     map[string]*TaskNode
	ActiveSpan  string
	SelectedIdx int
	ListOffset  int
	ListHeight  int
	LogWidth    int
	LogHeight   int
	FollowMode  bool

	spinner spinner.Model
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	case MsgTaskStart:
		m.startTask(msg)

	case MsgTaskLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Term.Write(msg.Data)
		}

	case MsgTaskComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			switch {
			case msg.Err != nil:
				node.Status = StatusError
				node.Err = msg.Err
			case msg.Cached:
				node.Status = StatusSkipped
			default:
				node.Status = StatusDone
			}
		}
	}

	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "k", "up":
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
			m.FollowMode = false
			m.selectActive()
		}
	case "j", "down":
		if m.SelectedIdx < len(m.Tasks)-1 {
			m.SelectedIdx++
			m.FollowMode = false
			m.selectActive()
		}
	case "esc":
		m.FollowMode = true
		for i := len(m.Tasks) - 1; i >= 0; i-- {
			if m.Tasks[i].Status == StatusRunning {
				m.SelectedIdx = i
				break
			}
		}
		m.selectActive()
	default:
		if node := m.activeTask(); node != nil {
			node.Term.Update(msg)
		}
	}
	return nil
}

func (m *Model) resize(width, height int) {
	listWidth := int(float64(width) * taskListWidthRatio)
	m.LogWidth = width - listWidth - logPaneBorderWidth

	headerHeight := lipgloss.Height(titleStyle.Render("LOGS"))
	m.LogHeight = height - headerHeight

	listHeader := titleStyle.Render("TASKS") + "\n\n"
	m.ListHeight = height - lipgloss.Height(listHeader)
	m.ensureVisible()

	for _, node := range m.Tasks {
		node.Term.SetWidth(m.LogWidth)
		node.Term.SetHeight(m.LogHeight)
	}
}

func (m *Model) startTask(msg MsgTaskStart) {
	depth := 0
	if parent, ok := m.SpanMap[msg.ParentID]; ok {
		depth = parent.Depth + 1
	}

	term := NewVterm()
	if m.LogWidth > 0 && m.LogHeight > 0 {
		term.SetWidth(m.LogWidth)
		term.SetHeight(m.LogHeight)
	}

	node := &TaskNode{
		SpanID: msg.SpanID,
		Name:   msg.Name,
		Depth:  depth,
		Status: StatusRunning,
		Term:   term,
	}
	m.Tasks = append(m.Tasks, node)
	m.SpanMap[msg.SpanID] = node

	if m.FollowMode {
		m.SelectedIdx = len(m.Tasks) - 1
		m.selectActive()
	}
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}

func (m *Model) selectActive() {
	m.ensureVisible()
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.Tasks) {
		return
	}
	node := m.Tasks[m.SelectedIdx]
	m.ActiveSpan = node.SpanID
	if m.FollowMode {
		node.Term.ScrollToBottom()
	}
}

func (m *Model) activeTask() *TaskNode {
	if m.ActiveSpan == "" {
		return nil
	}
	return m.SpanMap[m.ActiveSpan]
}
