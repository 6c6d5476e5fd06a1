package security

import (
	"context"
	"fmt"

	"github.com/safedep/envguard/core/events"
	"github.com/safedep/envguard/core/guard"
)

// EnvFileCheckName identifies the env-file check in results.
const EnvFileCheckName = "env-file"

// EnvFileCheck blocks agents from reading environment files. It runs the
// guard's tool.execute.before hook against the event's tool kind and path.
type EnvFileCheck struct {
	enabled bool
	hook    guard.HookFunc
}

// NewEnvFileCheck creates an EnvFileCheck.
func NewEnvFileCheck(enabled bool) *EnvFileCheck {
	hook, _ := guard.EnvProtection(guard.PluginContext{}).Before(guard.HookToolExecuteBefore)
	return &EnvFileCheck{enabled: enabled, hook: hook}
}

// Name returns the check identifier.
func (c *EnvFileCheck) Name() string {
	return EnvFileCheckName
}

// Check denies reads of files whose base name is an environment file.
func (c *EnvFileCheck) Check(ctx context.Context, event *events.Event) (*CheckResult, error) {
	if event.ToolKind != events.ToolKindRead {
		return Allow(c.Name()), nil
	}

	path, err := event.ReadPath()
	if err != nil {
		return nil, fmt.Errorf("failed to decode read payload: %w", err)
	}

	input := &guard.ToolInput{Tool: event.ToolKind, SessionID: event.AgentSessionID, CallID: event.ID.String()}
	output := &guard.ToolOutput{Args: map[string]any{guard.FilePathArg: path}}

	if err := c.hook(ctx, input, output); err != nil {
		if guard.IsProtectedRead(err) {
			return Block(c.Name(), err.Error()), nil
		}
		return nil, err
	}

	return Allow(c.Name()), nil
}

// Enabled returns whether the check is active.
func (c *EnvFileCheck) Enabled() bool {
	return c.enabled
}

var _ Check = (*EnvFileCheck)(nil)
