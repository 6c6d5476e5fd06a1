// Package cursor provides the adapter for Cursor integration.
package cursor

import (
	"context"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/core/events"
	"github.com/safedep/envguard/core/security"
)

const (
	// AgentName is the machine identifier for Cursor.
	AgentName = agent.AgentCursor
	// DisplayName is the human-readable name for Cursor.
	DisplayName = agent.DisplayCursor
)

// Adapter implements the agent.Adapter interface for Cursor.
type Adapter struct{}

// New creates a new Cursor adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the machine identifier.
func (a *Adapter) Name() string {
	return AgentName
}

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string {
	return DisplayName
}

// Detect determines if Cursor is installed.
func (a *Adapter) Detect(ctx context.Context) (*agent.DetectionResult, error) {
	return Detect(ctx)
}

// Install installs hooks for Cursor.
func (a *Adapter) Install(ctx context.Context, opts agent.InstallOptions) (*agent.InstallResult, error) {
	return InstallHooks(ctx, opts)
}

// Uninstall removes hooks from Cursor.
func (a *Adapter) Uninstall(ctx context.Context, opts agent.UninstallOptions) (*agent.UninstallResult, error) {
	return UninstallHooks(ctx, opts)
}

// Status checks the current hook state.
func (a *Adapter) Status(ctx context.Context) (*agent.HookStatus, error) {
	return GetHookStatus(ctx)
}

// ParseEvent converts a Cursor event to the common format.
func (a *Adapter) ParseEvent(ctx context.Context, hookType string, rawData []byte) (*events.Event, error) {
	return ParseHookEvent(ctx, hookType, rawData)
}

// Respond renders a result as a Cursor permission response.
func (a *Adapter) Respond(hookType string, result *security.Result) *agent.HookResponse {
	return &agent.HookResponse{ExitCode: 0, Stdout: GenerateResponse(result)}
}

// Register adds this adapter to the given registry.
func Register(registry *agent.Registry) {
	registry.Register(New())
}

var _ agent.Adapter = (*Adapter)(nil)
