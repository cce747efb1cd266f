package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smelt/internal/adapters/settings"
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "smelt.settings")
	content := "# toolchain\nCC=clang\n\n  CFLAGS=-O2 -Wall  \nEMPTY=\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := settings.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Assignment{
		{Name: "CC", Value: "clang"},
		{Name: "CFLAGS", Value: "-O2 -Wall"},
		{Name: "EMPTY", Value: ""},
	}, got)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	got, err := settings.NewLoader().Load(filepath.Join(t.TempDir(), "smelt.settings"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_MalformedLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "smelt.settings")
	require.NoError(t, os.WriteFile(path, []byte("CC=gcc\nnot an assignment\n"), 0o600))

	_, err := settings.NewLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedAssignment))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "2", zErr.Metadata()["line"])
}

func TestLoad_ReadError(t *testing.T) {
	t.Parallel()

	_, err := settings.NewLoader().Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSettingsReadFailed.Error())
}
