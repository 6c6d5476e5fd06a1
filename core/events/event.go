package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event represents a single tool invocation reported by an agent hook.
type Event struct {
	// ID is the unique identifier for this event, used to correlate log lines.
	ID uuid.UUID `json:"id"`
	// AgentSessionID is the session ID string reported by the agent, if any.
	AgentSessionID string `json:"agent_session_id,omitempty"`
	// Timestamp is when the hook was received (UTC).
	Timestamp time.Time `json:"timestamp"`
	// AgentName is the identifier of the agent (e.g., "claude-code").
	AgentName string `json:"agent_name"`
	// HookType is the agent-native hook name (e.g., "PreToolUse").
	HookType string `json:"hook_type,omitempty"`
	// WorkingDirectory is the agent's working directory when reported.
	WorkingDirectory string `json:"working_directory,omitempty"`
	// ActionType is the category of the invocation.
	ActionType ActionType `json:"action_type"`
	// ToolName is the original tool name from the agent.
	ToolName string `json:"tool_name,omitempty"`
	// ToolKind is the canonical tool identifier checks compare against.
	ToolKind string `json:"tool_kind,omitempty"`
	// Payload contains action-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`
	// RawEvent is the original payload from the agent.
	RawEvent json.RawMessage `json:"raw_event,omitempty"`
}

// NewEvent creates a new Event with a generated UUID and current timestamp.
func NewEvent(agentName string, actionType ActionType) *Event {
	return &Event{
		ID:         uuid.New(),
		Timestamp:  time.Now().UTC(),
		AgentName:  agentName,
		ActionType: actionType,
	}
}

// FileReadPayload represents the payload for file_read actions.
type FileReadPayload struct {
	Path    string `json:"path"`
	Pattern string `json:"pattern,omitempty"`
}

// FileWritePayload represents the payload for file_write actions.
type FileWritePayload struct {
	Path string `json:"path"`
}

// CommandExecPayload represents the payload for command_exec actions.
type CommandExecPayload struct {
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
}

// ToolUsePayload represents the payload for tool_use actions.
type ToolUsePayload struct {
	ToolName string          `json:"tool_name"`
	Input    json.RawMessage `json:"input,omitempty"`
}

// SetPayload marshals the given payload and sets it on the event.
func (e *Event) SetPayload(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e.Payload = data
	return nil
}

// GetFileReadPayload unmarshals the payload as a FileReadPayload.
// It returns nil for events of any other action type.
func (e *Event) GetFileReadPayload() (*FileReadPayload, error) {
	if e.ActionType != ActionFileRead {
		return nil, nil
	}
	var payload FileReadPayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetFileWritePayload unmarshals the payload as a FileWritePayload.
func (e *Event) GetFileWritePayload() (*FileWritePayload, error) {
	if e.ActionType != ActionFileWrite {
		return nil, nil
	}
	var payload FileWritePayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetCommandExecPayload unmarshals the payload as a CommandExecPayload.
func (e *Event) GetCommandExecPayload() (*CommandExecPayload, error) {
	if e.ActionType != ActionCommandExec {
		return nil, nil
	}
	var payload CommandExecPayload
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ReadPath returns the path a file_read event targets, or "" for other events.
func (e *Event) ReadPath() (string, error) {
	payload, err := e.GetFileReadPayload()
	if err != nil || payload == nil {
		return "", err
	}
	return payload.Path, nil
}
