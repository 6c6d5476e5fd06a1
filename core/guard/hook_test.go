package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvProtection_Registration(t *testing.T) {
	hooks := EnvProtection(PluginContext{
		Project:   "demo",
		Directory: "/home/user/project",
		Worktree:  "/home/user/project",
	})

	hook, ok := hooks.Before(HookToolExecuteBefore)
	require.True(t, ok)
	require.NotNil(t, hook)

	_, ok = hooks.Before("tool.execute.after")
	assert.False(t, ok)
}

func TestEnvProtection_BeforeToolExecute(t *testing.T) {
	hook, ok := EnvProtection(PluginContext{}).Before(HookToolExecuteBefore)
	require.True(t, ok)

	tests := []struct {
		name    string
		input   *ToolInput
		output  *ToolOutput
		blocked bool
	}{
		{
			name:    "read env denied",
			input:   &ToolInput{Tool: "read"},
			output:  &ToolOutput{Args: map[string]any{"filePath": "/home/user/project/.env"}},
			blocked: true,
		},
		{
			name:    "read env production denied",
			input:   &ToolInput{Tool: "read"},
			output:  &ToolOutput{Args: map[string]any{"filePath": "/home/user/project/.env.production"}},
			blocked: true,
		},
		{
			name:   "read config allowed",
			input:  &ToolInput{Tool: "read"},
			output: &ToolOutput{Args: map[string]any{"filePath": "/home/user/project/config.yaml"}},
		},
		{
			name:   "write env allowed",
			input:  &ToolInput{Tool: "write"},
			output: &ToolOutput{Args: map[string]any{"filePath": "/home/user/project/.env"}},
		},
		{
			name:   "read environment json allowed",
			input:  &ToolInput{Tool: "read"},
			output: &ToolOutput{Args: map[string]any{"filePath": "/home/user/project/environment.json"}},
		},
		{
			name:   "bash without file path allowed",
			input:  &ToolInput{Tool: "bash"},
			output: &ToolOutput{Args: map[string]any{"command": "cat .env"}},
		},
		{
			name:   "non string file path allowed",
			input:  &ToolInput{Tool: "read"},
			output: &ToolOutput{Args: map[string]any{"filePath": 42}},
		},
		{
			name:   "nil output allowed",
			input:  &ToolInput{Tool: "read"},
			output: nil,
		},
		{
			name:   "nil input allowed",
			input:  nil,
			output: &ToolOutput{Args: map[string]any{"filePath": ".env"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hook(context.Background(), tt.input, tt.output)
			if tt.blocked {
				require.Error(t, err)
				assert.True(t, IsProtectedRead(err))
				assert.Equal(t, ProtectedReadMessage, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvProtection_DoesNotMutateArgs(t *testing.T) {
	hook, _ := EnvProtection(PluginContext{}).Before(HookToolExecuteBefore)

	args := map[string]any{"filePath": "/p/.env", "offset": 10}
	_ = hook(context.Background(), &ToolInput{Tool: "read"}, &ToolOutput{Args: args})

	assert.Equal(t, map[string]any{"filePath": "/p/.env", "offset": 10}, args)
}
