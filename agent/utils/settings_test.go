package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSettings(t *testing.T) {
	dir := t.TempDir()

	settings, err := ReadSettings(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, settings)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	settings, err = ReadSettings(empty)
	require.NoError(t, err)
	assert.Empty(t, settings)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0600))
	_, err = ReadSettings(broken)
	assert.Error(t, err)
}

func TestWriteSettings_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	require.NoError(t, WriteSettings(path, map[string]interface{}{"a": "b"}))

	settings, err := ReadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "b", settings["a"])
}

func TestInstallAndRemoveMatcherHooks(t *testing.T) {
	settings := map[string]interface{}{
		"hooks": map[string]interface{}{
			"BeforeTool": []interface{}{
				map[string]interface{}{
					"matcher": "run_shell_command",
					"hooks": []interface{}{
						map[string]interface{}{"type": "command", "command": "other-tool"},
					},
				},
			},
		},
	}

	matchers := map[string]HookMatcher{
		"BeforeTool": {
			Matcher: "read_file",
			Hooks:   []HookEntry{{Type: "command", Command: HookCommand("gemini", "BeforeTool")}},
		},
	}

	assert.False(t, HasEnvguardHooks(settings, []string{"BeforeTool"}))

	installed, err := InstallMatcherHooks(settings, matchers, []string{"BeforeTool"})
	require.NoError(t, err)
	assert.Equal(t, []string{"BeforeTool"}, installed)
	assert.True(t, HasEnvguardHooks(settings, []string{"BeforeTool"}))
	assert.Equal(t, []string{"BeforeTool"}, InstalledHookTypes(settings, "gemini", []string{"BeforeTool", "AfterTool"}))
	assert.Empty(t, InstalledHookTypes(settings, "claude-code", []string{"BeforeTool"}))

	hooks := settings["hooks"].(map[string]interface{})
	assert.Len(t, hooks["BeforeTool"], 2)

	removed := RemoveEnvguardHooks(settings)
	assert.Equal(t, []string{"BeforeTool"}, removed)
	assert.Len(t, hooks["BeforeTool"], 1)
	assert.False(t, HasEnvguardHooks(settings, []string{"BeforeTool"}))
}

func TestRemoveEnvguardHooks_DropsEmptySection(t *testing.T) {
	settings := map[string]interface{}{"theme": "dark"}
	_, err := InstallMatcherHooks(settings, map[string]HookMatcher{
		"PreToolUse": {Matcher: "Read", Hooks: []HookEntry{{Type: "command", Command: HookCommand("claude-code", "PreToolUse")}}},
	}, []string{"PreToolUse"})
	require.NoError(t, err)

	RemoveEnvguardHooks(settings)

	assert.NotContains(t, settings, "hooks")
	assert.Equal(t, "dark", settings["theme"])
}

func TestRemoveEnvguardHooks_NoHooks(t *testing.T) {
	assert.Empty(t, RemoveEnvguardHooks(map[string]interface{}{}))
}
