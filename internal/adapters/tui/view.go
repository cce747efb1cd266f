package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/smelt/internal/ui/style"
)

const indentWidth = 2

// View renders the task list next to the log pane of the selected invocation.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.taskList(),
		m.logPane(),
	)
}

func (m *Model) taskList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("TASKS") + "\n\n")

	end := min(m.ListOffset+m.ListHeight, len(m.Tasks))
	start := min(m.ListOffset, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderTaskRow(i, m.Tasks[i]) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderTaskRow(index int, task *TaskNode) string {
	rowStyle := taskStyle(task)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		if task.Status == StatusRunning {
			rowStyle = selectedStyle
		}
	}

	indent := strings.Repeat(" ", task.Depth*indentWidth)
	return cursor + indent + rowStyle.Render(m.taskIcon(task)+" "+task.Name)
}

func (m *Model) taskIcon(task *TaskNode) string {
	switch task.Status {
	case StatusRunning:
		return m.spinner.View()
	case StatusDone:
		return style.Check
	case StatusSkipped:
		return style.Skip
	case StatusError:
		return style.Cross
	default:
		return style.Circle
	}
}

func taskStyle(task *TaskNode) lipgloss.Style {
	switch task.Status {
	case StatusRunning:
		return taskRunningStyle
	case StatusDone:
		return taskDoneStyle
	case StatusSkipped:
		return taskSkippedStyle
	case StatusError:
		return taskErrorStyle
	default:
		return taskPendingStyle
	}
}

func (m *Model) logPane() string {
	node := m.activeTask()
	if node == nil {
		return logStyle.Render(titleStyle.Render("LOGS (Waiting...)"))
	}

	mode := " (Manual)"
	if m.FollowMode {
		mode = " (Following)"
	}

	header := titleStyle.Render("LOGS: " + node.Name + mode)
	if node.Status == StatusError {
		header = failureTitleStyle.Render("FAILED: " + node.Name + mode)
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			node.Term.View(),
		),
	)
}
