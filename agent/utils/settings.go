package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// HookMatcher is a matcher entry in a Claude Code or Gemini CLI settings file.
type HookMatcher struct {
	Matcher string      `json:"matcher,omitempty"`
	Hooks   []HookEntry `json:"hooks"`
}

// HookEntry is a single command hook inside a matcher entry.
type HookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// ReadSettings reads a JSON settings file. A missing file yields an empty map.
func ReadSettings(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(map[string]interface{}), nil
	}
	if err != nil {
		return nil, err
	}

	settings := make(map[string]interface{})
	if len(data) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// WriteSettings writes a JSON settings file, creating its directory if needed.
func WriteSettings(path string, settings map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// hooksSection returns the "hooks" object of settings, creating it when create is set.
func hooksSection(settings map[string]interface{}, create bool) map[string]interface{} {
	hooks, ok := settings["hooks"].(map[string]interface{})
	if !ok && create {
		hooks = make(map[string]interface{})
		settings["hooks"] = hooks
	}
	return hooks
}

// matcherCommands returns the command strings of a decoded matcher entry.
func matcherCommands(m interface{}) []string {
	matcher, ok := m.(map[string]interface{})
	if !ok {
		return nil
	}
	hooksList, ok := matcher["hooks"].([]interface{})
	if !ok {
		return nil
	}

	var commands []string
	for _, h := range hooksList {
		hook, ok := h.(map[string]interface{})
		if !ok {
			continue
		}
		if cmd, ok := hook["command"].(string); ok {
			commands = append(commands, cmd)
		}
	}
	return commands
}

// HasEnvguardHooks reports whether any of hookTypes already runs an envguard command.
func HasEnvguardHooks(settings map[string]interface{}, hookTypes []string) bool {
	hooks := hooksSection(settings, false)
	for _, hookType := range hookTypes {
		matchers, _ := hooks[hookType].([]interface{})
		for _, m := range matchers {
			for _, cmd := range matcherCommands(m) {
				if IsEnvguardCommand(cmd) {
					return true
				}
			}
		}
	}
	return false
}

// InstallMatcherHooks appends the given matchers to the settings' hooks section,
// keeping every non-envguard hook. Existing envguard entries are replaced.
// It returns the hook types written.
func InstallMatcherHooks(settings map[string]interface{}, matchers map[string]HookMatcher, order []string) ([]string, error) {
	RemoveEnvguardHooks(settings)
	hooks := hooksSection(settings, true)

	var installed []string
	for _, hookType := range order {
		matcher, ok := matchers[hookType]
		if !ok {
			continue
		}

		data, err := json.Marshal(matcher)
		if err != nil {
			return installed, fmt.Errorf("failed to marshal %s matcher: %w", hookType, err)
		}
		var decoded interface{}
		if err := json.Unmarshal(data, &decoded); err != nil {
			return installed, fmt.Errorf("failed to decode %s matcher: %w", hookType, err)
		}

		existing, _ := hooks[hookType].([]interface{})
		hooks[hookType] = append(existing, decoded)
		installed = append(installed, hookType)
	}

	return installed, nil
}

// RemoveEnvguardHooks strips envguard commands from every hook type and drops
// matcher entries and hook types left empty. It returns the hook types that
// contained envguard commands.
func RemoveEnvguardHooks(settings map[string]interface{}) []string {
	hooks := hooksSection(settings, false)
	if hooks == nil {
		return nil
	}

	var removed []string
	for hookType, raw := range hooks {
		matchers, ok := raw.([]interface{})
		if !ok {
			continue
		}

		found := false
		filtered := []interface{}{}
		for _, m := range matchers {
			matcher, ok := m.(map[string]interface{})
			if !ok {
				filtered = append(filtered, m)
				continue
			}
			hooksList, ok := matcher["hooks"].([]interface{})
			if !ok {
				filtered = append(filtered, m)
				continue
			}

			kept := []interface{}{}
			for _, h := range hooksList {
				hook, ok := h.(map[string]interface{})
				if !ok {
					kept = append(kept, h)
					continue
				}
				cmd, _ := hook["command"].(string)
				if IsEnvguardCommand(cmd) {
					found = true
					continue
				}
				kept = append(kept, h)
			}

			if len(kept) > 0 {
				matcher["hooks"] = kept
				filtered = append(filtered, matcher)
			}
		}

		if found {
			removed = append(removed, hookType)
		}
		if len(filtered) > 0 {
			hooks[hookType] = filtered
		} else {
			delete(hooks, hookType)
		}
	}

	if len(hooks) == 0 {
		delete(settings, "hooks")
	}
	return removed
}

// InstalledHookTypes returns the hook types whose entries contain the exact
// envguard command expected for agentName.
func InstalledHookTypes(settings map[string]interface{}, agentName string, hookTypes []string) []string {
	hooks := hooksSection(settings, false)

	var installed []string
	for _, hookType := range hookTypes {
		expected := HookCommand(agentName, hookType)
		matchers, _ := hooks[hookType].([]interface{})

	search:
		for _, m := range matchers {
			for _, cmd := range matcherCommands(m) {
				if cmd == expected {
					installed = append(installed, hookType)
					break search
				}
			}
		}
	}
	return installed
}
