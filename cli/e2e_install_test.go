package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/safedep/envguard/cli"
	"github.com/safedep/envguard/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallStatusUninstall_ClaudeCode(t *testing.T) {
	env := newTestEnv(t)
	claudeDir := env.withAgentDir(".claude")
	settingsPath := filepath.Join(claudeDir, "settings.json")
	require.NoError(t, os.WriteFile(settingsPath, []byte(`{"model":"opus"}`), 0o600))

	stdout, _, err := env.run("install", "--agent", "claude-code")
	require.NoError(t, err)
	assert.Contains(t, stdout, "PreToolUse hook")
	assert.Contains(t, stdout, "Installation complete.")

	data, err := os.ReadFile(settingsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "envguard _hook claude-code PreToolUse")
	assert.Contains(t, string(data), `"model": "opus"`)

	stdout, _, err = env.run("status", "--format", "json")
	require.NoError(t, err)

	var status tui.StatusView
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.True(t, status.Guard.Enabled)
	assert.Equal(t, []string{"env-file"}, status.Guard.Checks)
	assert.True(t, status.Config.Exists)

	var claude *tui.AgentStatusView
	for i := range status.Agents {
		if status.Agents[i].Name == "claude-code" {
			claude = &status.Agents[i]
		}
	}
	require.NotNil(t, claude)
	assert.True(t, claude.Installed)
	assert.True(t, claude.HooksActive)
	assert.True(t, claude.HooksValid)
	assert.Equal(t, 1, claude.HooksCount)

	stdout, _, err = env.run("uninstall", "--agent", "claude-code")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed PreToolUse hook")

	data, err = os.ReadFile(settingsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "envguard")
	assert.Contains(t, string(data), `"model": "opus"`)
}

func TestInstall_DryRunWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	geminiDir := env.withAgentDir(".gemini")

	stdout, _, err := env.run("install", "--agent", "gemini", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Dry run, no changes made.")

	_, err = os.Stat(filepath.Join(geminiDir, "settings.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestInstall_OpenCodePlugin(t *testing.T) {
	env := newTestEnv(t)
	env.withAgentDir(filepath.Join(".config", "opencode"))

	_, _, err := env.run("install", "--agent", "opencode")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(env.home, ".config", "opencode", "plugins", "envguard.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tool.execute.before")
}

func TestInstall_UnknownAgent(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("install", "--agent", "windsurf")
	assert.Equal(t, cli.ExitAgentNotFound, exitCode(err))
	assert.Contains(t, err.Error(), "windsurf")
}

func TestInstall_AgentNotDetected(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := env.run("install", "--agent", "gemini")
	assert.Equal(t, cli.ExitAgentNotFound, exitCode(err))
	assert.Contains(t, stdout, "not installed")
}

func TestUninstall_NothingInstalled(t *testing.T) {
	env := newTestEnv(t)
	env.withAgentDir(".claude")

	stdout, _, err := env.run("uninstall", "--agent", "claude-code")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No envguard hooks found.")
}
