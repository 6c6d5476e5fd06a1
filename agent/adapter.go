// Package agent provides the adapter pattern for agent integrations.
package agent

import (
	"context"

	"github.com/safedep/envguard/core/events"
	"github.com/safedep/envguard/core/security"
)

// Standard agent identifiers.
const (
	AgentClaudeCode = "claude-code"
	AgentCursor     = "cursor"
	AgentGemini     = "gemini"
	AgentOpenCode   = "opencode"
)

// Standard agent display names.
const (
	DisplayClaudeCode = "Claude Code"
	DisplayCursor     = "Cursor"
	DisplayGemini     = "Gemini CLI"
	DisplayOpenCode   = "OpenCode"
)

// AgentDisplayName returns the display name for an agent identifier.
func AgentDisplayName(name string) string {
	switch name {
	case AgentClaudeCode:
		return DisplayClaudeCode
	case AgentCursor:
		return DisplayCursor
	case AgentGemini:
		return DisplayGemini
	case AgentOpenCode:
		return DisplayOpenCode
	default:
		return name
	}
}

// DetectionResult contains information about a detected agent.
type DetectionResult struct {
	// Installed indicates if the agent is installed.
	Installed bool
	// Version is the detected version of the agent.
	Version string
	// Path is the installation path of the agent.
	Path string
	// ConfigPath is the configuration directory path.
	ConfigPath string
	// HooksPath is the file or directory holding the agent's hook configuration.
	HooksPath string
	// Message provides additional context (e.g., why not installed).
	Message string
}

// InstallOptions configures hook installation.
type InstallOptions struct {
	// DryRun shows what would be installed without making changes.
	DryRun bool
	// Force overwrites existing hooks without prompting.
	Force bool
	// Backup creates backups of existing hooks.
	Backup bool
	// BackupDir is the directory to store backups.
	BackupDir string
}

// InstallResult contains the result of hook installation.
type InstallResult struct {
	Success        bool
	HooksInstalled []string
	// BackupPaths maps hook file names to their backup paths.
	BackupPaths map[string]string
	Warnings    []string
	Error       error
}

// UninstallOptions configures hook removal.
type UninstallOptions struct {
	DryRun        bool
	RestoreBackup bool
	BackupDir     string
}

// UninstallResult contains the result of hook removal.
type UninstallResult struct {
	Success         bool
	HooksRemoved    []string
	BackupsRestored bool
	Error           error
}

// HookStatus contains the status of installed hooks.
type HookStatus struct {
	// Installed indicates if any envguard hook is present.
	Installed bool
	// Hooks is the list of installed hook names.
	Hooks []string
	// Valid indicates if all expected hooks are present and current.
	Valid bool
	// Issues lists any problems with the hooks.
	Issues []string
}

// HookResponse is what the hook process hands back to the agent.
type HookResponse struct {
	// ExitCode is the process exit code the agent interprets.
	ExitCode int
	// Stdout is written verbatim to standard output when non-empty.
	Stdout []byte
	// Stderr is the message shown to the agent or user when non-empty.
	Stderr string
}

// Adapter defines the interface for agent integrations.
type Adapter interface {
	// Name returns the machine identifier (e.g., "claude-code").
	Name() string

	// DisplayName returns the human-readable name (e.g., "Claude Code").
	DisplayName() string

	// Detect determines if the agent is installed.
	Detect(ctx context.Context) (*DetectionResult, error)

	// Install installs hooks for this agent.
	Install(ctx context.Context, opts InstallOptions) (*InstallResult, error)

	// Uninstall removes hooks from this agent.
	Uninstall(ctx context.Context, opts UninstallOptions) (*UninstallResult, error)

	// Status checks the current hook state.
	Status(ctx context.Context) (*HookStatus, error)

	// ParseEvent converts an agent-specific hook payload to the common format.
	ParseEvent(ctx context.Context, hookType string, rawData []byte) (*events.Event, error)

	// Respond renders a security result in the agent's native hook protocol.
	Respond(hookType string, result *security.Result) *HookResponse
}
