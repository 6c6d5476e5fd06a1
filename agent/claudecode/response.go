package claudecode

import (
	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/core/security"
)

// Claude Code treats exit code 2 from a PreToolUse hook as a block and feeds
// stderr back to the model.
const exitCodeBlock = 2

// GenerateResponse renders a security result for Claude Code.
func GenerateResponse(hookType string, result *security.Result) *agent.HookResponse {
	if result == nil || result.IsAllowed() || hookType != HookPreToolUse {
		return &agent.HookResponse{ExitCode: 0}
	}

	return &agent.HookResponse{
		ExitCode: exitCodeBlock,
		Stderr:   result.BlockReason,
	}
}
