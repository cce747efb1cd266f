package smelt_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smelt"
)

func inProject(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CI", "true")
	t.Setenv("NO_COLOR", "1")
}

func define(s *smelt.Session) {
	s.Task("write", func(ctx context.Context) (smelt.Artifact, error) {
		if err := s.Use(s.Token("v1")); err != nil {
			return nil, err
		}
		if err := s.Shell(ctx, "echo hi > out.txt"); err != nil {
			return nil, err
		}
		return s.File("out.txt"), nil
	}, smelt.Public("write", "Write out.txt"))

	s.Task("fail", func(ctx context.Context) (smelt.Artifact, error) {
		return nil, s.Shell(ctx, "exit 4")
	}, smelt.Public("fail", ""))
}

func TestRun_Goal(t *testing.T) {
	inProject(t)

	assert.Equal(t, 0, smelt.Run(context.Background(), []string{"build", "write"}, define))

	data, err := os.ReadFile("out.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))

	_, err = os.Stat(".smelt")
	require.NoError(t, err)
}

func TestRun_ExitStatusOfFailingAction(t *testing.T) {
	inProject(t)

	assert.Equal(t, 4, smelt.Run(context.Background(), []string{"build", "write", "fail"}, define))

	// The goal before the failure is committed.
	data, err := os.ReadFile(".smelt")
	require.NoError(t, err)
	assert.Contains(t, string(data), "write ")
	assert.NotContains(t, string(data), "fail ")
}

func TestRun_DefinitionError(t *testing.T) {
	inProject(t)

	duplicate := func(s *smelt.Session) {
		define(s)
		define(s)
	}
	assert.Equal(t, 1, smelt.Run(context.Background(), []string{"build", "write"}, duplicate))
}

func TestRun_ActionOutsideTaskIsFatal(t *testing.T) {
	inProject(t)

	stray := func(s *smelt.Session) {
		define(s)
		_ = s.Use(s.Token("x"))
		_ = s.Shell(context.Background(), "echo leaked > leaked.txt")
	}
	assert.Equal(t, 1, smelt.Run(context.Background(), []string{"build", "write"}, stray))

	_, err := os.Stat("leaked.txt")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat("out.txt")
	assert.True(t, os.IsNotExist(err), "no goal runs after the failure")
}

func TestRun_UnknownGoalAndFlag(t *testing.T) {
	inProject(t)

	assert.Equal(t, 0, smelt.Run(context.Background(), []string{"build", "--bogus", "nope"}, define))
}

func TestRun_UnknownSetting(t *testing.T) {
	inProject(t)

	assert.Equal(t, 1, smelt.Run(context.Background(), []string{"build", "CC=clang", "write"}, define))
}

func TestToken(t *testing.T) {
	tok := smelt.Token(map[string]int{"b": 2, "a": 1})
	assert.Equal(t, `{"a":1,"b":2}`, tok.Identify())
	assert.True(t, tok.Exists())
}
