package security

import (
	"context"

	"github.com/safedep/envguard/core/events"
)

// CheckResult represents the result of a single security check.
type CheckResult struct {
	// Decision is the outcome of this check.
	Decision Decision `json:"decision"`
	// Reason is required for Block decisions, explaining why the action was blocked.
	Reason string `json:"reason,omitempty"`
	// Guidance is optional advisory text for the agent.
	Guidance string `json:"guidance,omitempty"`
	// CheckName identifies which check produced this result.
	CheckName string `json:"check"`
}

// Check defines the interface for security checks.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string
	// Check evaluates the event and returns a result.
	Check(ctx context.Context, event *events.Event) (*CheckResult, error)
	// Enabled returns whether this check is currently active.
	Enabled() bool
}

// Allow returns an allow result attributed to the named check.
func Allow(checkName string) *CheckResult {
	return &CheckResult{Decision: DecisionAllow, CheckName: checkName}
}

// Block returns a block result attributed to the named check.
func Block(checkName, reason string) *CheckResult {
	return &CheckResult{Decision: DecisionBlock, Reason: reason, CheckName: checkName}
}
