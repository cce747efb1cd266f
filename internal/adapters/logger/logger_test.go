package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smelt/internal/adapters/logger"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func actionError() error {
	failed := zerr.Wrap(domain.ErrActionFailed, "command failed: exit status 3")
	failed = zerr.With(zerr.With(failed, "command", "gcc -c lib.c"), domain.ExitCodeKey, 3)
	return zerr.Wrap(zerr.Wrap(failed, "task make_lib"), "task make_app")
}

func TestLogger_Levels(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("[GOAL] app")
	lg.Info("[EXEC] make_app (app)")
	lg.Warn("Could not find task with public name 'nope'")

	g := goldie.New(t)
	g.Assert(t, "levels", buf.Bytes())
}

func TestLogger_ErrorChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(actionError())

	g := goldie.New(t)
	g.Assert(t, "error_chain", buf.Bytes())
}

func TestLogger_ErrorStandard(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("plain failure"))
	assert.Equal(t, "✗ Error: plain failure\n", buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Info("[SKIP] make_lib")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "[SKIP] make_lib", record["msg"])

	buf.Reset()
	lg.Error(zerr.With(zerr.Wrap(domain.ErrMissingArtifact, "lib.c"), "artifact", "lib.c"))

	record = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "lib.c: missing artifact", record["error"])
	assert.Equal(t, "lib.c", record["artifact"])
}

func TestLogger_SetOutputKeepsJSON(t *testing.T) {
	lg, _ := newTestLogger(t)
	lg.SetJSON(true)

	var buf bytes.Buffer
	lg.SetOutput(&buf)
	lg.Warn("careful")

	assert.True(t, json.Valid(buf.Bytes()))
	assert.Same(t, &buf, lg.Writer())
}
