package claudecode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/safedep/envguard/core/events"
)

// HookInput is the JSON Claude Code writes to a hook's stdin.
type HookInput struct {
	SessionID      string                 `json:"session_id"`
	TranscriptPath string                 `json:"transcript_path,omitempty"`
	Cwd            string                 `json:"cwd"`
	PermissionMode string                 `json:"permission_mode,omitempty"`
	HookEventName  string                 `json:"hook_event_name"`
	ToolName       string                 `json:"tool_name"`
	ToolInput      map[string]interface{} `json:"tool_input"`
	ToolUseID      string                 `json:"tool_use_id,omitempty"`
}

// ToolNameMapping maps Claude Code tool names to action types.
var ToolNameMapping = map[string]events.ActionType{
	"Read":         events.ActionFileRead,
	"Grep":         events.ActionFileRead,
	"Glob":         events.ActionFileRead,
	"LS":           events.ActionFileRead,
	"Write":        events.ActionFileWrite,
	"Edit":         events.ActionFileWrite,
	"MultiEdit":    events.ActionFileWrite,
	"NotebookEdit": events.ActionFileWrite,
	"Bash":         events.ActionCommandExec,
}

// toolKind returns the canonical tool identifier for a Claude Code tool.
func toolKind(toolName string) string {
	if toolName == "Read" {
		return events.ToolKindRead
	}
	return events.OtherToolKind(AgentName, strings.ToLower(toolName))
}

// ParseHookEvent converts a Claude Code hook payload to the common format.
func ParseHookEvent(ctx context.Context, hookType string, rawData []byte) (*events.Event, error) {
	var input HookInput
	if err := json.Unmarshal(rawData, &input); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}

	actionType, ok := ToolNameMapping[input.ToolName]
	if !ok {
		actionType = events.ActionToolUse
	}

	event := events.NewEvent(AgentName, actionType)
	event.AgentSessionID = input.SessionID
	event.HookType = hookType
	event.WorkingDirectory = input.Cwd
	event.ToolName = input.ToolName
	event.ToolKind = toolKind(input.ToolName)
	event.RawEvent = rawData

	var err error
	switch actionType {
	case events.ActionFileRead:
		payload := events.FileReadPayload{
			Path: stringField(input.ToolInput, "file_path", "path"),
		}
		payload.Pattern = stringField(input.ToolInput, "pattern")
		err = event.SetPayload(payload)

	case events.ActionFileWrite:
		err = event.SetPayload(events.FileWritePayload{
			Path: stringField(input.ToolInput, "file_path", "notebook_path"),
		})

	case events.ActionCommandExec:
		err = event.SetPayload(events.CommandExecPayload{
			Command:     stringField(input.ToolInput, "command"),
			Description: stringField(input.ToolInput, "description"),
		})

	default:
		payload := events.ToolUsePayload{ToolName: input.ToolName}
		if data, merr := json.Marshal(input.ToolInput); merr == nil {
			payload.Input = data
		}
		err = event.SetPayload(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set event payload: %w", err)
	}

	return event, nil
}

// stringField returns the first string value found under keys.
func stringField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key].(string); ok {
			return v
		}
	}
	return ""
}
