package security

import (
	"context"
	"errors"
	"testing"

	"github.com/safedep/envguard/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheck struct {
	name    string
	result  *CheckResult
	err     error
	enabled bool
	calls   int
}

func (s *stubCheck) Name() string { return s.name }

func (s *stubCheck) Check(ctx context.Context, event *events.Event) (*CheckResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubCheck) Enabled() bool { return s.enabled }

func newStub(name string, result *CheckResult, err error) *stubCheck {
	return &stubCheck{name: name, result: result, err: err, enabled: true}
}

func TestEvaluator_NoChecks(t *testing.T) {
	result := New(nil).Evaluate(context.Background(), events.NewEvent("opencode", events.ActionToolUse))

	assert.True(t, result.IsAllowed())
	assert.Equal(t, DecisionAllow, result.FinalDecision)
	assert.Empty(t, result.CheckResults)
}

func TestEvaluator_BlockStopsEvaluation(t *testing.T) {
	first := newStub("first", Allow("first"), nil)
	blocker := newStub("blocker", Block("blocker", "nope"), nil)
	last := newStub("last", Allow("last"), nil)

	e := New(&Config{})
	e.RegisterCheck(first)
	e.RegisterCheck(blocker)
	e.RegisterCheck(last)

	result := e.Evaluate(context.Background(), events.NewEvent("opencode", events.ActionFileRead))

	assert.False(t, result.IsAllowed())
	assert.Equal(t, "nope", result.BlockReason)
	assert.Equal(t, "blocker", result.BlockedBy)
	assert.Len(t, result.CheckResults, 2)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, last.calls)
}

func TestEvaluator_DisabledCheckSkipped(t *testing.T) {
	blocker := newStub("blocker", Block("blocker", "nope"), nil)
	blocker.enabled = false

	e := New(nil)
	e.RegisterCheck(blocker)

	result := e.Evaluate(context.Background(), events.NewEvent("opencode", events.ActionFileRead))
	assert.True(t, result.IsAllowed())
	assert.Equal(t, 0, blocker.calls)
}

func TestEvaluator_CheckError(t *testing.T) {
	boom := errors.New("boom")

	t.Run("fail closed", func(t *testing.T) {
		e := New(&Config{FailOpen: false})
		e.RegisterCheck(newStub("broken", nil, boom))

		result := e.Evaluate(context.Background(), events.NewEvent("cursor", events.ActionFileRead))
		assert.False(t, result.IsAllowed())
		assert.Equal(t, "broken", result.BlockedBy)
		assert.Equal(t, "check broken failed: boom", result.BlockReason)
		assert.ErrorIs(t, result.Error, boom)
	})

	t.Run("fail open", func(t *testing.T) {
		next := newStub("next", Allow("next"), nil)

		e := New(&Config{FailOpen: true})
		e.RegisterCheck(newStub("broken", nil, boom))
		e.RegisterCheck(next)

		result := e.Evaluate(context.Background(), events.NewEvent("cursor", events.ActionFileRead))
		assert.True(t, result.IsAllowed())
		assert.NoError(t, result.Error)
		assert.Equal(t, 1, next.calls)
	})
}

func TestEvaluator_Guidance(t *testing.T) {
	e := New(nil)
	e.RegisterCheck(newStub("a", &CheckResult{Decision: DecisionGuidance, Guidance: "first", CheckName: "a"}, nil))
	e.RegisterCheck(newStub("b", &CheckResult{Decision: DecisionGuidance, Guidance: "second", CheckName: "b"}, nil))

	result := e.Evaluate(context.Background(), events.NewEvent("gemini", events.ActionToolUse))

	assert.True(t, result.IsAllowed())
	assert.Equal(t, DecisionGuidance, result.FinalDecision)
	assert.Equal(t, []string{"first", "second"}, result.Guidance)
}

func TestEvaluator_ChecksReturnsCopy(t *testing.T) {
	e := New(nil)
	e.RegisterCheck(NewEnvFileCheck(true))

	checks := e.Checks()
	require.Len(t, checks, 1)
	checks[0] = nil

	assert.NotNil(t, e.Checks()[0])
}

func TestDecision_Text(t *testing.T) {
	for d, name := range decisionNames {
		text, err := d.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, name, string(text))
	}

	assert.Equal(t, "unknown", Decision(42).String())
}
