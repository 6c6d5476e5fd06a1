package gemini

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/safedep/envguard/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestParseHookEvent_ReadFileEnv(t *testing.T) {
	event, err := ParseHookEvent(HookBeforeTool, loadFixture(t, "before_tool_read_file_env.json"))
	require.NoError(t, err)

	assert.Equal(t, AgentName, event.AgentName)
	assert.Equal(t, HookBeforeTool, event.HookType)
	assert.Equal(t, "read_file", event.ToolName)
	assert.Equal(t, events.ToolKindRead, event.ToolKind)
	assert.Equal(t, events.ActionFileRead, event.ActionType)
	assert.Equal(t, "gemini-session-1", event.AgentSessionID)
	assert.Equal(t, "/home/user/project", event.WorkingDirectory)

	path, err := event.ReadPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/project/.env.local", path)
}

func TestParseHookEvent_ReadFilePathKey(t *testing.T) {
	event, err := ParseHookEvent(HookBeforeTool, loadFixture(t, "before_tool_read_file.json"))
	require.NoError(t, err)

	path, err := event.ReadPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/project/README.md", path)
}

func TestParseHookEvent_Shell(t *testing.T) {
	event, err := ParseHookEvent(HookBeforeTool, loadFixture(t, "before_tool_shell.json"))
	require.NoError(t, err)

	assert.Equal(t, events.ActionCommandExec, event.ActionType)
	assert.Equal(t, "run_shell_command", event.ToolKind)

	payload, err := event.GetCommandExecPayload()
	require.NoError(t, err)
	assert.Equal(t, "ls -la", payload.Command)
}

func TestParseHookEvent_EventNameFromPayload(t *testing.T) {
	event, err := ParseHookEvent("", loadFixture(t, "session_start.json"))
	require.NoError(t, err)

	assert.Equal(t, "SessionStart", event.HookType)
	assert.Equal(t, events.ActionUnknown, event.ActionType)
	assert.Empty(t, event.ToolKind)
}

func TestParseHookEvent_InvalidJSON(t *testing.T) {
	_, err := ParseHookEvent(HookBeforeTool, []byte("nope"))
	assert.Error(t, err)
}
