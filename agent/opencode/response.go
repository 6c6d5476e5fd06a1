package opencode

import (
	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/core/security"
)

// GenerateResponse renders a result for the envguard plugin, which throws
// the stderr text as an Error when the hook exits 2.
func GenerateResponse(hookType string, result *security.Result) *agent.HookResponse {
	if result == nil || result.IsAllowed() || hookType != HookToolExecuteBefore {
		return &agent.HookResponse{ExitCode: 0}
	}
	return &agent.HookResponse{ExitCode: 2, Stderr: result.BlockReason}
}
