package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/safedep/envguard/core/events"
)

type HookInput struct {
	SessionID      string                 `json:"session_id"`
	TranscriptPath string                 `json:"transcript_path"`
	Cwd            string                 `json:"cwd"`
	HookEventName  string                 `json:"hook_event_name"`
	Timestamp      string                 `json:"timestamp"`
	ToolName       string                 `json:"tool_name"`
	ToolInput      map[string]interface{} `json:"tool_input"`
}

var ToolNameMapping = map[string]events.ActionType{
	"read_file":           events.ActionFileRead,
	"read_many_files":     events.ActionFileRead,
	"list_directory":      events.ActionFileRead,
	"glob":                events.ActionFileRead,
	"search_file_content": events.ActionFileRead,
	"write_file":          events.ActionFileWrite,
	"replace":             events.ActionFileWrite,
	"run_shell_command":   events.ActionCommandExec,
}

func getActionType(toolName string) events.ActionType {
	if at, ok := ToolNameMapping[toolName]; ok {
		return at
	}
	return events.ActionToolUse
}

func toolKind(toolName string) string {
	if toolName == "read_file" {
		return events.ToolKindRead
	}
	return events.OtherToolKind(AgentName, toolName)
}

func ParseHookEvent(hookType string, rawData []byte) (*events.Event, error) {
	var input HookInput
	if err := json.Unmarshal(rawData, &input); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}

	eventName := hookType
	if eventName == "" {
		eventName = input.HookEventName
	}

	actionType := events.ActionUnknown
	if eventName == HookBeforeTool {
		actionType = getActionType(input.ToolName)
	}

	event := events.NewEvent(AgentName, actionType)
	event.AgentSessionID = input.SessionID
	event.HookType = eventName
	event.WorkingDirectory = input.Cwd
	event.RawEvent = rawData

	if eventName != HookBeforeTool {
		return event, nil
	}

	event.ToolName = input.ToolName
	event.ToolKind = toolKind(input.ToolName)

	if err := buildPayload(event, input.ToolName, input.ToolInput); err != nil {
		return nil, err
	}
	return event, nil
}

func buildPayload(event *events.Event, toolName string, toolInput map[string]interface{}) error {
	var payload interface{}

	switch event.ActionType {
	case events.ActionFileRead:
		payload = events.FileReadPayload{
			Path:    stringField(toolInput, "file_path", "absolute_path", "path", "dir_path"),
			Pattern: stringField(toolInput, "pattern"),
		}
	case events.ActionFileWrite:
		payload = events.FileWritePayload{
			Path: stringField(toolInput, "file_path", "absolute_path"),
		}
	case events.ActionCommandExec:
		payload = events.CommandExecPayload{
			Command:     stringField(toolInput, "command"),
			Description: stringField(toolInput, "description"),
		}
	default:
		p := events.ToolUsePayload{ToolName: toolName}
		if data, err := json.Marshal(toolInput); err == nil {
			p.Input = data
		}
		payload = p
	}

	if err := event.SetPayload(payload); err != nil {
		return fmt.Errorf("failed to set event payload: %w", err)
	}
	return nil
}

func stringField(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
