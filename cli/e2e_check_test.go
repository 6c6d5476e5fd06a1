package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/safedep/envguard/cli"
	"github.com/safedep/envguard/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Table(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("check", "/p/.env", "/p/src/main.go", "a/b/c/.environment")
	assert.Equal(t, cli.ExitDenied, exitCode(err))

	assert.Contains(t, stdout, "deny   /p/.env")
	assert.Contains(t, stdout, "allow  /p/src/main.go")
	assert.Contains(t, stdout, "allow  a/b/c/.environment")
	assert.Contains(t, stdout, `3 paths checked for tool "read", 1 denied.`)
}

func TestCheck_JSON(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("check", "--format", "json", ".ENV.Local", "environment.json", ".env.production")
	assert.Equal(t, cli.ExitDenied, exitCode(err))

	var view tui.CheckView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "read", view.Tool)
	assert.Equal(t, 2, view.Denied)
	require.Len(t, view.Results, 3)

	assert.False(t, view.Results[0].Allowed)
	assert.True(t, view.Results[0].Protected)
	assert.Equal(t, ".ENV.Local", view.Results[0].BaseName)
	assert.NotEmpty(t, view.Results[0].Reason)

	assert.True(t, view.Results[1].Allowed)
	assert.False(t, view.Results[1].Protected)

	assert.False(t, view.Results[2].Allowed)
}

func TestCheck_OtherToolAllowed(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("check", "--tool", "write", ".env")
	require.NoError(t, err)
	assert.Contains(t, stdout, "allow  .env")
}

func TestCheck_GuardDisabled(t *testing.T) {
	env := newTestEnvWithConfig(t, "guard:\n  enabled: false\n")

	stdout, _, err := env.run("check", "--format", "json", ".env")
	require.NoError(t, err)

	var view tui.CheckView
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	require.Len(t, view.Results, 1)
	assert.True(t, view.Results[0].Allowed)
	assert.True(t, view.Results[0].Protected)
	assert.Zero(t, view.Denied)
}

func TestCheck_QuietStillSetsExitCode(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("--quiet", "check", ".env")
	assert.Equal(t, cli.ExitDenied, exitCode(err))
	assert.Empty(t, stdout)
}

func TestCheck_RequiresPath(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("check")
	assert.Error(t, err)
}

func TestCheck_InvalidFormat(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("check", "--format", "csv", ".env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
