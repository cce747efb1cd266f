package session

import (
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

// invocation is the state of one running task body. It is created on entry
// and discarded on exit; nothing of it is kept on the task.
type invocation struct {
	task    *Task
	span    ports.Span
	sources []domain.Artifact
	tracker *domain.SettingsTracker
	state   domain.InvocationState
	skipped bool
}

func newInvocation(task *Task, span ports.Span) *invocation {
	return &invocation{
		task:    task,
		span:    span,
		tracker: domain.NewSettingsTracker(),
		state:   domain.StateFresh,
	}
}

func (s *Session) push(inv *invocation) {
	s.stack = append(s.stack, inv)
}

func (s *Session) pop() {
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
}

// Depth returns the number of invocations currently on the stack.
func (s *Session) Depth() int {
	return len(s.stack)
}

// current returns the innermost invocation. A call outside of any task body is
// also recorded in Err, so the run fails even when the caller drops the error.
func (s *Session) current(call string) (*invocation, error) {
	if len(s.stack) == 0 {
		err := zerr.With(zerr.Wrap(domain.ErrNoActiveTask, call+" called outside of a task body"), "call", call)
		s.deferErr(err)
		return nil, err
	}
	return s.stack[len(s.stack)-1], nil
}

// addSource appends a to the invocation's sources.
func (s *Session) addSource(inv *invocation, a domain.Artifact) {
	a.MarkUsed()
	s.watch(a)
	if inv.state.IsDecided() {
		s.logger.Warn("artifact used after the skip decision: " + a.Display() + " in " + inv.task.node.Label())
	} else {
		inv.state = domain.StateAccumulating
	}
	inv.sources = append(inv.sources, a)
}

// Use declares artifacts as sources of the running invocation.
func (s *Session) Use(artifacts ...domain.Artifact) error {
	inv, err := s.current("Use")
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		if a == nil {
			return zerr.With(zerr.Wrap(domain.ErrNilArtifact, "cannot use a nil artifact"), "task", inv.task.node.ID)
		}
		s.addSource(inv, a)
	}
	return nil
}
