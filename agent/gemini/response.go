package gemini

import (
	"encoding/json"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/core/security"
)

type hookResponseJSON struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// GenerateResponse renders a result for Gemini CLI. A block exits 2 with the
// reason on stderr; anything else exits 0 with an allow decision on stdout.
func GenerateResponse(hookType string, result *security.Result) *agent.HookResponse {
	if result != nil && !result.IsAllowed() && hookType == HookBeforeTool {
		return &agent.HookResponse{
			ExitCode: 2,
			Stderr:   result.BlockReason,
		}
	}

	data, _ := json.Marshal(hookResponseJSON{Decision: "allow"})
	return &agent.HookResponse{ExitCode: 0, Stdout: data}
}
