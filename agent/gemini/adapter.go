// Package gemini provides the adapter for Gemini CLI integration.
package gemini

import (
	"context"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/core/events"
	"github.com/safedep/envguard/core/security"
)

const (
	AgentName   = agent.AgentGemini
	DisplayName = agent.DisplayGemini
)

type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return AgentName
}

func (a *Adapter) DisplayName() string {
	return DisplayName
}

func (a *Adapter) Detect(ctx context.Context) (*agent.DetectionResult, error) {
	return Detect(ctx)
}

func (a *Adapter) Install(ctx context.Context, opts agent.InstallOptions) (*agent.InstallResult, error) {
	return InstallHooks(ctx, opts)
}

func (a *Adapter) Uninstall(ctx context.Context, opts agent.UninstallOptions) (*agent.UninstallResult, error) {
	return UninstallHooks(ctx, opts)
}

func (a *Adapter) Status(ctx context.Context) (*agent.HookStatus, error) {
	return GetHookStatus(ctx)
}

func (a *Adapter) ParseEvent(ctx context.Context, hookType string, rawData []byte) (*events.Event, error) {
	return ParseHookEvent(hookType, rawData)
}

func (a *Adapter) Respond(hookType string, result *security.Result) *agent.HookResponse {
	return GenerateResponse(hookType, result)
}

func Register(registry *agent.Registry) {
	registry.Register(New())
}

var _ agent.Adapter = (*Adapter)(nil)
