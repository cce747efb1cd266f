package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sysEnv    []string
		overrides []string
		expected  []string
	}{
		{
			name:     "System only",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			expected: []string{"PATH=/bin", "USER=test"},
		},
		{
			name:      "Override wins",
			sysEnv:    []string{"CC=gcc", "PATH=/bin"},
			overrides: []string{"CC=clang", "CFLAGS=-O2"},
			expected:  []string{"CC=clang", "CFLAGS=-O2", "PATH=/bin"},
		},
		{
			name:      "Malformed entries dropped",
			sysEnv:    []string{"PATH=/bin", "garbage"},
			overrides: []string{"EMPTY="},
			expected:  []string{"EMPTY=", "PATH=/bin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.overrides))
		})
	}
}
