package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHookCommand(t *testing.T) {
	assert.Equal(t, "envguard _hook claude-code PreToolUse", HookCommand("claude-code", "PreToolUse"))
	assert.Equal(t, "envguard _hook opencode tool.execute.before", HookCommand("opencode", "tool.execute.before"))
}

func TestIsEnvguardCommand(t *testing.T) {
	tests := []struct {
		cmd      string
		expected bool
	}{
		{"envguard _hook cursor beforeReadFile", true},
		{"  envguard _hook gemini BeforeTool", true},
		{"envguardx _hook cursor beforeReadFile", false},
		{"auditor _hook cursor beforeReadFile", false},
		{"envguard", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEnvguardCommand(tt.cmd))
		})
	}
}
