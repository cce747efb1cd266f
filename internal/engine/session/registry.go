package session

import (
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/zerr"
)

// Registry holds the registered tasks in registration order.
type Registry struct {
	byID  map[string]*Task
	order []*Task
}

func newRegistry() *Registry {
	return &Registry{byID: make(map[string]*Task)}
}

func (r *Registry) add(t *Task) error {
	if err := domain.ValidateTaskID(t.node.ID); err != nil {
		return err
	}
	if _, ok := r.byID[t.node.ID]; ok {
		return zerr.With(zerr.Wrap(domain.ErrTaskAlreadyExists, "task registered twice"), "task", t.node.ID)
	}
	r.byID[t.node.ID] = t
	r.order = append(r.order, t)
	return nil
}

// Get returns the task registered under id.
func (r *Registry) Get(id string) (*Task, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Find returns every task published under name, in registration order.
func (r *Registry) Find(name string) []*Task {
	if name == "" {
		return nil
	}
	var out []*Task
	for _, t := range r.order {
		if t.node.PublicName == name {
			out = append(out, t)
		}
	}
	return out
}

// Public returns the tasks that have a public name, in registration order.
func (r *Registry) Public() []*Task {
	var out []*Task
	for _, t := range r.order {
		if t.node.IsPublic() {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int {
	return len(r.order)
}
