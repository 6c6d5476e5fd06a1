package gemini

import (
	"testing"

	"github.com/safedep/envguard/core/guard"
	"github.com/safedep/envguard/core/security"
	"github.com/stretchr/testify/assert"
)

func TestGenerateResponse_Block(t *testing.T) {
	resp := GenerateResponse(HookBeforeTool, &security.Result{
		FinalDecision: security.DecisionBlock,
		BlockReason:   guard.ProtectedReadMessage,
	})

	assert.Equal(t, 2, resp.ExitCode)
	assert.Equal(t, guard.ProtectedReadMessage, resp.Stderr)
	assert.Empty(t, resp.Stdout)
}

func TestGenerateResponse_Allow(t *testing.T) {
	resp := GenerateResponse(HookBeforeTool, security.NewAllowResult())

	assert.Equal(t, 0, resp.ExitCode)
	assert.JSONEq(t, `{"decision":"allow"}`, string(resp.Stdout))
	assert.Empty(t, resp.Stderr)
}
