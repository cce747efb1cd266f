package progrock

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vito/progrock"
)

// Summary is a progrock.Writer that aggregates vertex outcomes.
type Summary struct {
	mu       sync.Mutex
	order    []string
	vertices map[string]*outcome
}

type outcome struct {
	name      string
	started   time.Time
	completed time.Time
	done      bool
	cached    bool
	err       string
}

// Totals counts vertices by outcome.
type Totals struct {
	Tasks    int
	Executed int
	Skipped  int
	Failed   int
	Running  int
	Elapsed  time.Duration
	Failures []string
}

// NewSummary creates an empty Summary.
func NewSummary() *Summary {
	return &Summary{vertices: make(map[string]*outcome)}
}

// WriteStatus merges update into the summary.
func (s *Summary) WriteStatus(update *progrock.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range update.Vertexes {
		o, ok := s.vertices[v.Id]
		if !ok {
			o = &outcome{}
			s.vertices[v.Id] = o
			s.order = append(s.order, v.Id)
		}

		o.name = v.Name
		o.cached = o.cached || v.Cached
		if v.Started != nil {
			o.started = v.Started.AsTime()
		}
		if v.Completed != nil {
			o.completed = v.Completed.AsTime()
			o.done = true
		}
		if v.Error != nil {
			o.err = *v.Error
		}
	}
	return nil
}

// Close does nothing.
func (s *Summary) Close() error {
	return nil
}

// Totals returns the counts recorded so far.
func (s *Summary) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var t Totals
	var first, last time.Time
	for _, id := range s.order {
		o := s.vertices[id]
		t.Tasks++

		switch {
		case !o.done:
			t.Running++
		case o.err != "":
			t.Failed++
			t.Failures = append(t.Failures, o.name)
		case o.cached:
			t.Skipped++
		default:
			t.Executed++
		}

		if !o.started.IsZero() && (first.IsZero() || o.started.Before(first)) {
			first = o.started
		}
		if o.completed.After(last) {
			last = o.completed
		}
	}
	if !first.IsZero() && last.After(first) {
		t.Elapsed = last.Sub(first)
	}
	return t
}

// Print writes a one-line summary, followed by the failed task names.
func (s *Summary) Print(w io.Writer) error {
	t := s.Totals()
	_, err := fmt.Fprintf(w, "%d tasks: %d executed, %d skipped, %d failed in %s\n",
		t.Tasks, t.Executed, t.Skipped, t.Failed, t.Elapsed.Round(time.Millisecond))
	if err != nil {
		return err
	}
	for _, name := range t.Failures {
		if _, err := fmt.Fprintf(w, "  failed: %s\n", name); err != nil {
			return err
		}
	}
	return nil
}
