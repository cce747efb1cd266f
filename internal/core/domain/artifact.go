package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Artifact is a buildable or consumable unit that can take part in a task signature.
type Artifact interface {
	// Identify returns the identity string folded into signatures.
	Identify() string
	// Exists reports whether the artifact is present.
	Exists() bool
	// Display returns a human-readable label.
	Display() string
	// MarkUsed records that the artifact was declared as a source.
	MarkUsed()
	// Used reports whether MarkUsed has been called.
	Used() bool
}

// Usage is embedded by artifacts to track whether they were declared as a source.
type Usage struct {
	used bool
}

// MarkUsed records that the artifact was declared as a source.
func (u *Usage) MarkUsed() {
	u.used = true
}

// Used reports whether the artifact was declared as a source.
func (u *Usage) Used() bool {
	return u.used
}

// Token is an artifact wrapping an arbitrary identifier value. It always exists.
type Token struct {
	Usage
	value any
}

// NewToken creates a Token for the given value.
func NewToken(value any) *Token {
	return &Token{value: value}
}

// Identify returns the canonical string form of the wrapped value.
func (t *Token) Identify() string {
	return canonical(t.value)
}

// Exists always returns true.
func (t *Token) Exists() bool {
	return true
}

// Display returns the canonical string form of the wrapped value.
func (t *Token) Display() string {
	return canonical(t.value)
}

// Value returns the wrapped value.
func (t *Token) Value() any {
	return t.value
}

// canonical renders v deterministically. encoding/json sorts map keys.
func canonical(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprint(v)
}

// Env is an artifact capturing an environment variable at construction time.
type Env struct {
	Usage
	name  string
	value string
	set   bool
}

// NewEnv creates an Env artifact from an already looked-up variable.
func NewEnv(name, value string, set bool) *Env {
	return &Env{name: name, value: value, set: set}
}

// Identify returns NAME=value.
func (e *Env) Identify() string {
	return e.name + "=" + e.value
}

// Exists reports whether the variable was set when captured.
func (e *Env) Exists() bool {
	return e.set
}

// Display returns the variable name prefixed with '$'.
func (e *Env) Display() string {
	return "$" + e.name
}

// SettingsTracker accumulates the settings read by a single task invocation.
type SettingsTracker struct {
	Usage
	values map[string]string
}

// NewSettingsTracker returns an empty tracker.
func NewSettingsTracker() *SettingsTracker {
	return &SettingsTracker{values: make(map[string]string)}
}

// Record stores name=value. Re-reading a name overwrites rather than duplicates.
func (t *SettingsTracker) Record(name, value string) {
	t.values[name] = value
}

// Len returns the number of distinct settings recorded.
func (t *SettingsTracker) Len() int {
	return len(t.values)
}

// Identify returns the recorded settings as JSON with sorted keys.
func (t *SettingsTracker) Identify() string {
	return canonical(t.values)
}

// Exists always returns true.
func (t *SettingsTracker) Exists() bool {
	return true
}

// Display lists the names of the recorded settings.
func (t *SettingsTracker) Display() string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return "settings [" + strings.Join(names, " ") + "]"
}
