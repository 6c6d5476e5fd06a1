// Package security evaluates normalized agent events against an ordered set
// of checks and decides whether the invocation may proceed.
package security

// Decision represents the outcome of a security check.
type Decision int

const (
	// DecisionAllow allows the action to proceed.
	DecisionAllow Decision = iota
	// DecisionBlock blocks the action from proceeding.
	DecisionBlock
	// DecisionGuidance allows the action but provides advisory guidance.
	DecisionGuidance
)

var decisionNames = map[Decision]string{
	DecisionAllow:    "allow",
	DecisionBlock:    "block",
	DecisionGuidance: "guidance",
}

// String returns the string representation of the decision.
func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the decision by name in JSON and YAML output.
func (d Decision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
