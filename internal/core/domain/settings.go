package domain

import (
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// Setting is a named configuration value with a registered default.
type Setting struct {
	Name    string
	Default string
	Value   string
}

// Settings is the process-wide store of defined settings, kept in definition order.
type Settings struct {
	byName map[string]*Setting
	order  []string
}

// NewSettings returns an empty store.
func NewSettings() *Settings {
	return &Settings{byName: make(map[string]*Setting)}
}

// Define registers a setting with its default value.
func (s *Settings) Define(name, def string) error {
	if err := validateSettingName(name); err != nil {
		return err
	}
	if _, ok := s.byName[name]; ok {
		return zerr.With(zerr.Wrap(ErrSettingAlreadyDefined, "cannot redefine setting"), "setting", name)
	}
	s.byName[name] = &Setting{Name: name, Default: def, Value: def}
	s.order = append(s.order, name)
	return nil
}

// Assign overwrites the current value of a defined setting.
func (s *Settings) Assign(name, value string) error {
	setting, ok := s.byName[name]
	if !ok {
		return unknownSetting(name)
	}
	setting.Value = value
	return nil
}

// Lookup returns the current value of a defined setting.
func (s *Settings) Lookup(name string) (string, error) {
	setting, ok := s.byName[name]
	if !ok {
		return "", unknownSetting(name)
	}
	return setting.Value, nil
}

// All returns a copy of every setting in definition order.
func (s *Settings) All() []Setting {
	out := make([]Setting, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.byName[name])
	}
	return out
}

func unknownSetting(name string) error {
	return zerr.With(zerr.Wrap(ErrUnknownSetting, "setting '"+name+"' is not defined"), "setting", name)
}

func validateSettingName(name string) error {
	if name == "" || strings.ContainsRune(name, '=') || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidSettingName, "setting names must be non-empty without '=' or whitespace"), "setting", name)
	}
	return nil
}

// Assignment is a parsed NAME=VALUE pair.
type Assignment struct {
	Name  string
	Value string
}

// ParseAssignment splits s at the first '='. The name must be non-empty.
func ParseAssignment(s string) (Assignment, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Assignment{}, zerr.With(zerr.Wrap(ErrMalformedAssignment, "cannot parse '"+s+"'"), "input", s)
	}
	return Assignment{Name: name, Value: value}, nil
}

// IsAssignment reports whether a command-line argument looks like NAME=VALUE.
func IsAssignment(arg string) bool {
	i := strings.IndexByte(arg, '=')
	return i > 0 && !strings.HasPrefix(arg, "-")
}
