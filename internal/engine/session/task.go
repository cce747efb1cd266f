package session

import (
	"context"

	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Body is the build logic of a task. The returned artifact is the task's output,
// typically used as a source by the caller. It may be nil.
type Body func(ctx context.Context) (domain.Artifact, error)

// Task is a registered task bound to its session.
type Task struct {
	node    domain.TaskNode
	body    Body
	session *Session
}

// TaskOption configures a task at registration.
type TaskOption func(*domain.TaskNode)

// Public publishes the task on the command line under name with a description for --list.
func Public(name, description string) TaskOption {
	return func(n *domain.TaskNode) {
		n.PublicName = name
		n.Description = description
	}
}

// Task registers body under id. Registration errors are deferred to Err.
func (s *Session) Task(id string, body Body, opts ...TaskOption) *Task {
	t := &Task{
		node:    domain.TaskNode{ID: id},
		body:    body,
		session: s,
	}
	for _, opt := range opts {
		opt(&t.node)
	}

	if body == nil {
		s.deferErr(zerr.With(zerr.Wrap(domain.ErrNilTaskBody, "task has no body"), "task", id))
		return t
	}
	s.deferErr(s.registry.add(t))
	return t
}

// Node returns the task's description.
func (t *Task) Node() domain.TaskNode {
	return t.node
}

// Invoke runs the task body in a fresh invocation and commits its signature on success.
// A failing invocation leaves the cache entry of the task untouched.
func (t *Task) Invoke(ctx context.Context) (domain.Artifact, error) {
	s := t.session
	if err := s.Err(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, t.node.Label(),
		ports.WithAttribute(domain.AttrTaskID, t.node.ID),
		ports.WithAttribute(domain.AttrPublicName, t.node.PublicName),
	)
	defer span.End()

	inv := newInvocation(t, span)
	origin := s.fs.File(s.origin, domain.DefaultFileOptions())
	origin.MarkUsed()
	s.watch(origin)
	inv.sources = append(inv.sources, origin)

	out, err := t.run(ctx, inv)

	span.SetAttribute(domain.AttrSources, len(inv.sources))
	span.SetAttribute(domain.AttrState, string(inv.state))
	if err != nil {
		span.RecordError(err)
		return nil, zerr.Wrap(err, "task "+t.node.ID)
	}
	span.SetAttribute(domain.AttrCached, inv.skipped)
	return out, nil
}

// run executes the body on top of the stack and commits.
func (t *Task) run(ctx context.Context, inv *invocation) (domain.Artifact, error) {
	t.session.push(inv)
	defer t.session.pop()

	out, err := t.body(ctx)
	if err != nil {
		inv.state = domain.StateAborted
		return nil, err
	}
	if err := t.session.commit(inv); err != nil {
		inv.state = domain.StateAborted
		return nil, err
	}
	return out, nil
}

// decide returns whether the running invocation skips its actions.
// The decision is made once per invocation.
func (s *Session) decide(inv *invocation) (bool, error) {
	switch inv.state {
	case domain.StateSkipping:
		return true, nil
	case domain.StateExecuting:
		return false, nil
	}

	signature, err := domain.ComputeSignature(inv.sources)
	if err != nil {
		return false, err
	}
	cached, ok, err := s.cache.Get(inv.task.node.ID)
	if err != nil {
		return false, err
	}

	if ok && cached == signature {
		inv.state = domain.StateSkipping
		inv.skipped = true
		s.logger.Info(domain.MarkerSkip + " " + inv.task.node.Label())
		return true, nil
	}

	inv.state = domain.StateExecuting
	s.logger.Info(domain.MarkerExec + " " + inv.task.node.Label())
	return false, nil
}

// commit stores the signature of the latest sources unless the invocation skipped.
func (s *Session) commit(inv *invocation) error {
	if inv.state == domain.StateSkipping {
		inv.state = domain.StateCommitted
		return nil
	}

	signature, err := domain.ComputeSignature(inv.sources)
	if err != nil {
		return err
	}
	if err := s.cache.Set(inv.task.node.ID, signature); err != nil {
		return err
	}

	inv.span.SetAttribute(domain.AttrSignature, signature)
	inv.state = domain.StateCommitted
	return nil
}
