package domain_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/zerr"
	"pgregory.net/rapid"
)

// missing is an artifact that never exists.
type missing struct {
	domain.Usage
	name string
}

func (m *missing) Identify() string { return m.name }
func (m *missing) Exists() bool     { return false }
func (m *missing) Display() string  { return m.name }

func tokens(values ...string) []domain.Artifact {
	out := make([]domain.Artifact, 0, len(values))
	for _, v := range values {
		out = append(out, domain.NewToken(v))
	}
	return out
}

func TestToken_Identify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "123", want: "123"},
		{name: "int", value: 42, want: "42"},
		{name: "map sorted", value: map[string]string{"b": "2", "a": "1"}, want: `{"a":"1","b":"2"}`},
		{name: "slice", value: []string{"x", "y"}, want: `["x","y"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok := domain.NewToken(tt.value)
			assert.Equal(t, tt.want, tok.Identify())
			assert.True(t, tok.Exists())
			assert.False(t, tok.Used())
			tok.MarkUsed()
			assert.True(t, tok.Used())
		})
	}
}

func TestEnv(t *testing.T) {
	t.Parallel()

	set := domain.NewEnv("CC", "gcc", true)
	assert.True(t, set.Exists())
	assert.Equal(t, "CC=gcc", set.Identify())
	assert.Equal(t, "$CC", set.Display())

	unset := domain.NewEnv("CC", "", false)
	assert.False(t, unset.Exists())
}

func TestSettingsTracker(t *testing.T) {
	t.Parallel()

	tr := domain.NewSettingsTracker()
	tr.Record("CC", "gcc")
	tr.Record("CFLAGS", "-O2")
	tr.Record("CC", "gcc")

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, `{"CC":"gcc","CFLAGS":"-O2"}`, tr.Identify())
	assert.Equal(t, "settings [CC CFLAGS]", tr.Display())
	assert.True(t, tr.Exists())
}

func TestComputeSignature(t *testing.T) {
	t.Parallel()

	t.Run("format", func(t *testing.T) {
		t.Parallel()
		sig, err := domain.ComputeSignature(tokens("123"))
		require.NoError(t, err)

		sum := sha256.Sum256([]byte(`"123"`))
		assert.Equal(t, hex.EncodeToString(sum[:])+"+", sig)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		sig, err := domain.ComputeSignature(nil)
		require.NoError(t, err)
		assert.Empty(t, sig)
	})

	t.Run("order sensitive", func(t *testing.T) {
		t.Parallel()
		ab, err := domain.ComputeSignature(tokens("a", "b"))
		require.NoError(t, err)
		ba, err := domain.ComputeSignature(tokens("b", "a"))
		require.NoError(t, err)
		assert.NotEqual(t, ab, ba)
	})

	t.Run("missing artifact", func(t *testing.T) {
		t.Parallel()
		srcs := append(tokens("a"), &missing{name: "missing.txt"})
		_, err := domain.ComputeSignature(srcs)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingArtifact))
		assert.Contains(t, err.Error(), "missing.txt")

		var zErr *zerr.Error
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, "missing.txt", zErr.Metadata()["artifact"])
	})
}

func TestComputeSignature_Properties(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.String(), 1, 8).Draw(t, "values")

		first, err := domain.ComputeSignature(tokens(values...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := domain.ComputeSignature(tokens(values...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Fatalf("signature not deterministic: %q != %q", first, second)
		}
		if got := strings.Count(first, domain.SignatureSeparator); got != len(values) {
			t.Fatalf("expected %d digests, got %d", len(values), got)
		}
	})
}

func TestComputeSignature_SwapChangesSignature(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Filter(func(s string) bool { return s != a }).Draw(t, "b")

		ab, _ := domain.ComputeSignature(tokens(a, b))
		ba, _ := domain.ComputeSignature(tokens(b, a))
		if ab == ba {
			t.Fatalf("swapping %q and %q kept signature %q", a, b, ab)
		}
	})
}

func TestValidateTaskID(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.ValidateTaskID("make_main"))
	require.NoError(t, domain.ValidateTaskID("lib.o"))

	for _, id := range []string{"", "make main", "tab\tid", "new\nline"} {
		err := domain.ValidateTaskID(id)
		require.Error(t, err, "id %q", id)
		assert.True(t, errors.Is(err, domain.ErrInvalidTaskName))
	}
}

func TestTaskNode_Label(t *testing.T) {
	t.Parallel()

	public := domain.TaskNode{ID: "make_app", PublicName: "app"}
	private := domain.TaskNode{ID: "make_lib"}

	assert.Equal(t, "make_app (app)", public.Label())
	assert.True(t, public.IsPublic())
	assert.Equal(t, "make_lib", private.Label())
	assert.False(t, private.IsPublic())
}

func TestInvocationState(t *testing.T) {
	t.Parallel()

	assert.False(t, domain.StateFresh.IsDecided())
	assert.False(t, domain.StateAccumulating.IsDecided())
	assert.True(t, domain.StateSkipping.IsDecided())
	assert.True(t, domain.StateExecuting.IsDecided())
	assert.False(t, domain.StateExecuting.IsTerminal())
	assert.True(t, domain.StateCommitted.IsTerminal())
	assert.True(t, domain.StateAborted.IsTerminal())
}

func TestSettings(t *testing.T) {
	t.Parallel()

	s := domain.NewSettings()
	require.NoError(t, s.Define("CC", "gcc"))
	require.NoError(t, s.Define("CFLAGS", ""))

	err := s.Define("CC", "clang")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSettingAlreadyDefined))

	for _, bad := range []string{"", "A=B", "WITH SPACE"} {
		err := s.Define(bad, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidSettingName))
	}

	v, err := s.Lookup("CC")
	require.NoError(t, err)
	assert.Equal(t, "gcc", v)

	require.NoError(t, s.Assign("CC", "clang"))
	v, err = s.Lookup("CC")
	require.NoError(t, err)
	assert.Equal(t, "clang", v)

	err = s.Assign("LD", "ld")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownSetting))

	_, err = s.Lookup("LD")
	assert.True(t, errors.Is(err, domain.ErrUnknownSetting))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, domain.Setting{Name: "CC", Default: "gcc", Value: "clang"}, all[0])
	assert.Equal(t, "CFLAGS", all[1].Name)
}

func TestParseAssignment(t *testing.T) {
	t.Parallel()

	a, err := domain.ParseAssignment("CC=clang")
	require.NoError(t, err)
	assert.Equal(t, domain.Assignment{Name: "CC", Value: "clang"}, a)

	a, err = domain.ParseAssignment("CFLAGS=-O2 -g=1")
	require.NoError(t, err)
	assert.Equal(t, "-O2 -g=1", a.Value)

	a, err = domain.ParseAssignment("EMPTY=")
	require.NoError(t, err)
	assert.Empty(t, a.Value)

	for _, bad := range []string{"novalue", "=value"} {
		_, err := domain.ParseAssignment(bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMalformedAssignment))
	}

	assert.True(t, domain.IsAssignment("CC=gcc"))
	assert.False(t, domain.IsAssignment("app"))
	assert.False(t, domain.IsAssignment("=x"))
	assert.False(t, domain.IsAssignment("--flag=x"))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, domain.ExitCode(nil))
	assert.Equal(t, 1, domain.ExitCode(errors.New("plain")))

	actionErr := zerr.With(zerr.Wrap(domain.ErrActionFailed, "command failed"), domain.ExitCodeKey, 3)
	assert.Equal(t, 3, domain.ExitCode(actionErr))

	wrapped := zerr.Wrap(zerr.Wrap(actionErr, "task make_main"), "task make_app")
	assert.Equal(t, 3, domain.ExitCode(wrapped))

	joined := errors.Join(errors.New("other"), wrapped)
	assert.Equal(t, 3, domain.ExitCode(joined))

	negative := zerr.With(zerr.New("start failed"), domain.ExitCodeKey, -1)
	assert.Equal(t, 1, domain.ExitCode(negative))
}
