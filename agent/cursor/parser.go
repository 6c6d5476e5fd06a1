package cursor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/safedep/envguard/core/events"
	"github.com/safedep/envguard/core/security"
)

// HookEvent represents the raw event from Cursor hooks.
type HookEvent struct {
	ConversationID string   `json:"conversation_id"`
	GenerationID   string   `json:"generation_id"`
	Content        string   `json:"content,omitempty"`
	FilePath       string   `json:"file_path,omitempty"`
	Command        string   `json:"command,omitempty"`
	Cwd            string   `json:"cwd,omitempty"`
	HookEventName  string   `json:"hook_event_name"`
	WorkspaceRoots []string `json:"workspace_roots,omitempty"`
}

// HookTypeMapping maps Cursor hook types to action types.
var HookTypeMapping = map[string]events.ActionType{
	"beforeReadFile":       events.ActionFileRead,
	"afterFileEdit":        events.ActionFileWrite,
	"beforeShellExecution": events.ActionCommandExec,
	"beforeMCPExecution":   events.ActionToolUse,
}

// ParseHookEvent converts a Cursor event to the common format.
func ParseHookEvent(ctx context.Context, hookType string, rawData []byte) (*events.Event, error) {
	var hookEvent HookEvent
	if err := json.Unmarshal(rawData, &hookEvent); err != nil {
		return nil, fmt.Errorf("failed to parse hook event: %w", err)
	}

	if hookType == "" {
		hookType = hookEvent.HookEventName
	}

	actionType := events.ActionUnknown
	if at, ok := HookTypeMapping[hookType]; ok {
		actionType = at
	}

	event := events.NewEvent(AgentName, actionType)
	event.AgentSessionID = hookEvent.ConversationID
	event.HookType = hookType
	event.ToolName = hookType
	event.RawEvent = rawData

	// Cursor only reports a file read through beforeReadFile.
	if hookType == HookBeforeReadFile {
		event.ToolKind = events.ToolKindRead
	} else {
		event.ToolKind = events.OtherToolKind(AgentName, hookType)
	}

	event.WorkingDirectory = hookEvent.Cwd
	if event.WorkingDirectory == "" && len(hookEvent.WorkspaceRoots) > 0 {
		event.WorkingDirectory = hookEvent.WorkspaceRoots[0]
	}

	var payload interface{}
	switch actionType {
	case events.ActionFileRead:
		payload = events.FileReadPayload{Path: hookEvent.FilePath}
	case events.ActionFileWrite:
		payload = events.FileWritePayload{Path: hookEvent.FilePath}
	case events.ActionCommandExec:
		payload = events.CommandExecPayload{Command: hookEvent.Command}
	default:
		payload = events.ToolUsePayload{ToolName: hookType}
	}
	if err := event.SetPayload(payload); err != nil {
		return nil, fmt.Errorf("failed to set event payload: %w", err)
	}

	return event, nil
}

// permissionResponse is the JSON Cursor reads from a before* hook's stdout.
type permissionResponse struct {
	Permission   string `json:"permission"`
	UserMessage  string `json:"userMessage,omitempty"`
	AgentMessage string `json:"agentMessage,omitempty"`
}

// GenerateResponse generates a response to send back to Cursor.
func GenerateResponse(result *security.Result) []byte {
	response := permissionResponse{Permission: "allow"}
	if result != nil && !result.IsAllowed() {
		response.Permission = "deny"
		response.UserMessage = result.BlockReason
		response.AgentMessage = result.BlockReason
	}
	data, _ := json.Marshal(response)
	return data
}
