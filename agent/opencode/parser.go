package opencode

import (
	"encoding/json"
	"fmt"

	"github.com/safedep/envguard/core/events"
)

// ToolEventInput is the payload the envguard plugin pipes to `envguard _hook`.
type ToolEventInput struct {
	HookType  string                 `json:"hook_type"`
	Tool      string                 `json:"tool"`
	SessionID string                 `json:"session_id"`
	CallID    string                 `json:"call_id"`
	Args      map[string]interface{} `json:"args"`
	Cwd       string                 `json:"cwd"`
}

var ToolNameMapping = map[string]events.ActionType{
	"read":  events.ActionFileRead,
	"grep":  events.ActionFileRead,
	"glob":  events.ActionFileRead,
	"list":  events.ActionFileRead,
	"write": events.ActionFileWrite,
	"edit":  events.ActionFileWrite,
	"patch": events.ActionFileWrite,
	"bash":  events.ActionCommandExec,
}

func getActionType(toolName string) events.ActionType {
	if at, ok := ToolNameMapping[toolName]; ok {
		return at
	}
	return events.ActionToolUse
}

func ParseHookEvent(hookType string, rawData []byte) (*events.Event, error) {
	var input ToolEventInput
	if err := json.Unmarshal(rawData, &input); err != nil {
		return nil, fmt.Errorf("failed to parse tool event input: %w", err)
	}

	if hookType == "" {
		hookType = input.HookType
	}
	if hookType != HookToolExecuteBefore {
		event := events.NewEvent(AgentName, events.ActionUnknown)
		event.HookType = hookType
		event.AgentSessionID = input.SessionID
		event.WorkingDirectory = input.Cwd
		event.RawEvent = rawData
		return event, nil
	}

	// The tool identifier is compared as given: only "read" is the read tool.
	toolName := input.Tool
	actionType := getActionType(toolName)

	event := events.NewEvent(AgentName, actionType)
	event.HookType = hookType
	event.AgentSessionID = input.SessionID
	event.ToolName = input.Tool
	event.ToolKind = toolName
	event.WorkingDirectory = input.Cwd
	event.RawEvent = rawData

	var payload interface{}
	switch actionType {
	case events.ActionFileRead:
		payload = events.FileReadPayload{
			Path:    stringArg(input.Args, "filePath", "file_path", "path"),
			Pattern: stringArg(input.Args, "pattern"),
		}
	case events.ActionFileWrite:
		payload = events.FileWritePayload{
			Path: stringArg(input.Args, "filePath", "file_path", "path"),
		}
	case events.ActionCommandExec:
		payload = events.CommandExecPayload{
			Command:     stringArg(input.Args, "command"),
			Description: stringArg(input.Args, "description"),
		}
	default:
		p := events.ToolUsePayload{ToolName: toolName}
		if data, err := json.Marshal(input.Args); err == nil {
			p.Input = data
		}
		payload = p
	}

	if err := event.SetPayload(payload); err != nil {
		return nil, fmt.Errorf("failed to set event payload: %w", err)
	}
	return event, nil
}

func stringArg(args map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := args[key].(string); ok {
			return v
		}
	}
	return ""
}
