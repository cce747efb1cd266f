// Package detector picks the output mode for the current environment.
package detector

import (
	"os"

	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto OutputMode = iota
	// ModeTUI selects the interactive renderer.
	ModeTUI
	// ModeLinear selects the line-oriented renderer.
	ModeLinear
)

// String returns the flag spelling of m.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment inspects stdout and the CI variable.
func DetectEnvironment() OutputMode {
	return Detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

// Detect returns ModeLinear when output is not a terminal or ci is set to a
// true value, and ModeTUI otherwise.
func Detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeLinear
	}
	return ModeTUI
}

// ParseMode parses a user supplied mode: auto, tui, linear or ci.
func ParseMode(s string) (OutputMode, error) {
	switch s {
	case "", "auto":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(zerr.New("unknown output mode"), "mode", s)
	}
}

// ResolveMode applies a user override to the detected mode.
func ResolveMode(detected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return detected
	}
	return requested
}
