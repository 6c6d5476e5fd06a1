package cli_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/safedep/envguard/cli"
	"github.com/safedep/envguard/core/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHook_ClaudeCode(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		wantCode int
	}{
		{"read env denied", "claudecode/testdata/pre_tool_use_read_env.json", 2},
		{"read source allowed", "claudecode/testdata/pre_tool_use_read.json", 0},
		{"bash cat env allowed", "claudecode/testdata/pre_tool_use_bash.json", 0},
		{"write env allowed", "claudecode/testdata/pre_tool_use_write.json", 0},
		{"grep allowed", "claudecode/testdata/pre_tool_use_grep.json", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			stdout, err := env.runHook("claude-code", "PreToolUse", readFixture(t, tt.fixture))
			assert.Equal(t, tt.wantCode, exitCode(err))
			assert.Empty(t, stdout)

			if tt.wantCode == 2 {
				var coder cli.ExitCoder
				require.ErrorAs(t, err, &coder)
				assert.Equal(t, guard.ProtectedReadMessage+"\n", coder.Message())
			}
		})
	}
}

func TestHook_Cursor(t *testing.T) {
	env := newTestEnv(t)

	stdout, err := env.runHook("cursor", "beforeReadFile", readFixture(t, "cursor/testdata/before_read_file_env.json"))
	require.NoError(t, err)

	var resp map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "deny", resp["permission"])
	assert.Equal(t, guard.ProtectedReadMessage, resp["userMessage"])
	assert.Equal(t, guard.ProtectedReadMessage, resp["agentMessage"])

	stdout, err = env.runHook("cursor", "beforeReadFile", readFixture(t, "cursor/testdata/before_read_file.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "allow", resp["permission"])
}

func TestHook_Gemini(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runHook("gemini", "BeforeTool", readFixture(t, "gemini/testdata/before_tool_read_file_env.json"))
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, err.Error(), "prohibited")

	stdout, err := env.runHook("gemini", "BeforeTool", readFixture(t, "gemini/testdata/before_tool_read_file.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"decision":"allow"}`, stdout)
}

func TestHook_OpenCode(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runHook("opencode", "tool.execute.before", readFixture(t, "opencode/testdata/tool_execute_before_read_env.json"))
	assert.Equal(t, 2, exitCode(err))
	assert.EqualError(t, err, guard.ProtectedReadMessage)

	for _, fixture := range []string{
		"opencode/testdata/tool_execute_before_read.json",
		"opencode/testdata/tool_execute_before_write_env.json",
		"opencode/testdata/tool_execute_before_bash.json",
	} {
		_, err := env.runHook("opencode", "tool.execute.before", readFixture(t, fixture))
		assert.NoError(t, err, fixture)
	}
}

func TestHook_OpenCodeToolNameIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)

	for _, tool := range []string{"Read", "READ"} {
		_, err := env.runHook("opencode", "tool.execute.before", []byte(`{"tool":"`+tool+`","args":{"filePath":".env"}}`))
		assert.Equal(t, 0, exitCode(err), tool)
	}
}

func TestHook_MalformedPayload(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runHook("claude-code", "PreToolUse", []byte(`{"tool_name":`))
	assert.Equal(t, cli.ExitGeneral, exitCode(err))
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestHook_UnknownAgent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runHook("windsurf", "pre_read_code", []byte(`{}`))
	assert.Equal(t, cli.ExitGeneral, exitCode(err))
	assert.Contains(t, err.Error(), "unknown agent")
}

func TestHook_GuardDisabled(t *testing.T) {
	env := newTestEnvWithConfig(t, "guard:\n  enabled: false\n")

	_, err := env.runHook("claude-code", "PreToolUse", readFixture(t, "claudecode/testdata/pre_tool_use_read_env.json"))
	assert.NoError(t, err)
}

func TestHook_DisabledDrainsStdin(t *testing.T) {
	env := newTestEnvWithConfig(t, "guard:\n  enabled: false\n")

	payload := bytes.Repeat([]byte(" "), 256*1024)
	payload = append(payload, readFixture(t, "opencode/testdata/tool_execute_before_read_env.json")...)
	stdin := bytes.NewReader(payload)

	_, _, err := env.runWithReader(stdin, "_hook", "opencode", "tool.execute.before")
	require.NoError(t, err)
	assert.Zero(t, stdin.Len())
}

func TestHook_AgentDisabled(t *testing.T) {
	env := newTestEnvWithConfig(t, "agents:\n  gemini:\n    enabled: false\n")

	stdout, err := env.runHook("gemini", "BeforeTool", readFixture(t, "gemini/testdata/before_tool_read_file_env.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"decision":"allow"}`, stdout)

	_, err = env.runHook("claude-code", "PreToolUse", readFixture(t, "claudecode/testdata/pre_tool_use_read_env.json"))
	assert.Equal(t, 2, exitCode(err))
}

func TestHook_BrokenConfigStillDenies(t *testing.T) {
	env := newTestEnvWithConfig(t, "guard: [unclosed")

	_, err := env.runHook("claude-code", "PreToolUse", readFixture(t, "claudecode/testdata/pre_tool_use_read_env.json"))
	assert.Equal(t, 2, exitCode(err))
}

func TestHook_EnvOverrideDisablesGuard(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("ENVGUARD_GUARD_ENABLED", "false")

	_, err := env.runHook("claude-code", "PreToolUse", readFixture(t, "claudecode/testdata/pre_tool_use_read_env.json"))
	assert.NoError(t, err)
}
