package security

// Result aggregates results from all security checks.
type Result struct {
	// FinalDecision is the overall decision after evaluating all checks.
	FinalDecision Decision `json:"decision"`
	// BlockReason is the reason if the action was blocked.
	BlockReason string `json:"block_reason,omitempty"`
	// BlockedBy is the name of the check that blocked the action.
	BlockedBy string `json:"blocked_by,omitempty"`
	// Guidance contains aggregated guidance from all checks.
	Guidance []string `json:"guidance,omitempty"`
	// CheckResults contains the individual results from each check.
	CheckResults []*CheckResult `json:"checks"`
	// Error contains any error that occurred during evaluation.
	Error error `json:"-"`
}

// NewAllowResult creates a new Result with an Allow decision.
func NewAllowResult() *Result {
	return &Result{
		FinalDecision: DecisionAllow,
		CheckResults:  make([]*CheckResult, 0),
		Guidance:      make([]string, 0),
	}
}

// IsAllowed returns true if the action is allowed (not blocked).
func (r *Result) IsAllowed() bool {
	return r.FinalDecision != DecisionBlock
}
