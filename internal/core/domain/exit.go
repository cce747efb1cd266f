package domain

import "errors"

// ExitCodeKey is the zerr metadata key carrying a process exit status.
const ExitCodeKey = "exit_code"

type metadataCarrier interface {
	Metadata() map[string]any
}

// ExitCode returns the status a process should exit with for err.
// It is 0 for nil, the first positive exit_code found in the chain, or 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := findExitCode(err); ok {
		return code
	}
	return 1
}

func findExitCode(err error) (int, bool) {
	for err != nil {
		if m, ok := err.(metadataCarrier); ok {
			if code, ok := m.Metadata()[ExitCodeKey].(int); ok && code > 0 {
				return code, true
			}
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				if code, ok := findExitCode(e); ok {
					return code, true
				}
			}
			return 0, false
		}
		err = errors.Unwrap(err)
	}
	return 0, false
}
