package opencode

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/core/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOpenCodeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	configDir := filepath.Join(home, ".config", "opencode")
	require.NoError(t, os.MkdirAll(configDir, 0700))
	return configDir
}

func TestPluginSource(t *testing.T) {
	src := string(PluginSource())

	assert.Contains(t, src, pluginMarker)
	assert.Contains(t, src, `"tool.execute.before"`)
	assert.Contains(t, src, `"envguard", "_hook", "opencode"`)
	assert.Contains(t, src, "if (result.exitCode === 2)")
}

func TestPluginSource_FallbackMatchesGuard(t *testing.T) {
	src := string(PluginSource())

	assert.Contains(t, src, `"`+guard.ProtectedReadMessage+`"`)
	assert.Contains(t, src, `tool === "read"`)
	assert.Contains(t, src, `/^\.env(\.|$)/i`)
	assert.Contains(t, src, "result.exitCode !== 0 && isProtectedRead(input.tool, output.args)")
}

func TestInstallHooks_WritesPlugin(t *testing.T) {
	configDir := setupOpenCodeHome(t)

	result, err := InstallHooks(context.Background(), agent.InstallOptions{})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, HookTypes, result.HooksInstalled)

	data, err := os.ReadFile(filepath.Join(configDir, "plugins", "envguard.js"))
	require.NoError(t, err)
	assert.Equal(t, PluginSource(), data)

	status, err := GetHookStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Installed)
	assert.True(t, status.Valid)
}

func TestInstallHooks_AlreadyInstalled(t *testing.T) {
	setupOpenCodeHome(t)

	_, err := InstallHooks(context.Background(), agent.InstallOptions{})
	require.NoError(t, err)

	result, err := InstallHooks(context.Background(), agent.InstallOptions{})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "already installed")
}

func TestGetHookStatus_Outdated(t *testing.T) {
	configDir := setupOpenCodeHome(t)
	pluginFile := filepath.Join(configDir, "plugins", "envguard.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(pluginFile), 0700))
	require.NoError(t, os.WriteFile(pluginFile, []byte("// old\nconst invokeEnvguard = 1"), 0644))

	status, err := GetHookStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Installed)
	assert.False(t, status.Valid)
	require.Len(t, status.Issues, 1)
}

func TestUninstallHooks_RemovesPlugin(t *testing.T) {
	configDir := setupOpenCodeHome(t)

	_, err := InstallHooks(context.Background(), agent.InstallOptions{})
	require.NoError(t, err)

	result, err := UninstallHooks(context.Background(), agent.UninstallOptions{})
	require.NoError(t, err)
	assert.Equal(t, HookTypes, result.HooksRemoved)

	_, err = os.Stat(filepath.Join(configDir, "plugins", "envguard.js"))
	assert.True(t, os.IsNotExist(err))
}

func TestDetect_NotInstalled(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	detection, err := Detect(context.Background())
	require.NoError(t, err)
	assert.False(t, detection.Installed)
	assert.NotEmpty(t, detection.Message)
}
