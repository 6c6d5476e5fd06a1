// Package events provides the normalized model of a tool invocation reported
// by an agent hook.
package events

// ActionType represents the category of a tool invocation.
type ActionType string

const (
	// ActionFileRead indicates an agent is reading a file.
	ActionFileRead ActionType = "file_read"
	// ActionFileWrite indicates an agent is writing or modifying a file.
	ActionFileWrite ActionType = "file_write"
	// ActionCommandExec indicates an agent is executing a shell command.
	ActionCommandExec ActionType = "command_exec"
	// ActionToolUse indicates any other tool invocation.
	ActionToolUse ActionType = "tool_use"
	// ActionUnknown indicates an unrecognized hook event.
	ActionUnknown ActionType = "unknown"
)

var actionDisplayNames = map[ActionType]string{
	ActionFileRead:    "read",
	ActionFileWrite:   "write",
	ActionCommandExec: "exec",
	ActionToolUse:     "tool",
	ActionUnknown:     "unknown",
}

// String returns the string representation of an ActionType.
func (a ActionType) String() string {
	return string(a)
}

// DisplayName returns a short human-readable name for the action type.
func (a ActionType) DisplayName() string {
	if dn, ok := actionDisplayNames[a]; ok {
		return dn
	}
	return "unknown"
}

// ToolKindRead is the canonical tool kind of a host's single-file read tool.
// Adapters map the native tool name onto it; search and listing tools keep
// their own kind even though their action type is file_read.
const ToolKindRead = "read"

// OtherToolKind returns the kind for a native tool that is not the host's
// read tool. A name equal to ToolKindRead is qualified with the agent name so
// only the adapter's own read mapping can produce the read kind.
func OtherToolKind(agentName, toolName string) string {
	if toolName == ToolKindRead {
		return agentName + ":" + toolName
	}
	return toolName
}
