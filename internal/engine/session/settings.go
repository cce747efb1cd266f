package session

import (
	"go.trai.ch/smelt/internal/core/domain"
)

// Define registers a setting with its default value and returns its name.
// Invalid or repeated definitions are deferred to Err.
func (s *Session) Define(name, def string) string {
	s.deferErr(s.settings.Define(name, def))
	return name
}

// Setting returns the current value of name and records the read in the running invocation,
// so a change of the value invalidates this task only.
func (s *Session) Setting(name string) (string, error) {
	inv, err := s.current("Setting")
	if err != nil {
		return "", err
	}
	value, err := s.settings.Lookup(name)
	if err != nil {
		return "", err
	}

	if inv.tracker.Len() == 0 {
		s.addSource(inv, inv.tracker)
	}
	inv.tracker.Record(name, value)
	return value, nil
}

// Assign overwrites the value of a defined setting.
func (s *Session) Assign(name, value string) error {
	return s.settings.Assign(name, value)
}

// ApplyAssignments assigns every pair in order and stops at the first unknown name.
func (s *Session) ApplyAssignments(assignments []domain.Assignment) error {
	for _, a := range assignments {
		if err := s.Assign(a.Name, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// Settings returns every defined setting in definition order.
func (s *Session) Settings() []domain.Setting {
	return s.settings.All()
}
