package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

var knownAgents = []string{
	agentNameClaudeCode,
	agentNameCursor,
	agentNameGemini,
	agentNameOpenCode,
}

// validate checks the configuration for errors.
func validate(cfg *Config) error {
	if !isValidColorMode(cfg.Display.Colors) {
		return fmt.Errorf("invalid display.colors: %s (must be auto, always, or never)", cfg.Display.Colors)
	}

	return nil
}

// validateAgentKeys rejects agents entries no adapter handles, so a typo
// such as "claude" does not silently leave the real agent enabled.
func validateAgentKeys(v *viper.Viper) error {
	var unknown []string
	for name := range v.GetStringMap("agents") {
		if !isKnownAgent(name) {
			unknown = append(unknown, name)
		}
	}

	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	return fmt.Errorf("unknown agent in config: %s (must be one of %s)",
		strings.Join(unknown, ", "), strings.Join(knownAgents, ", "))
}

func isKnownAgent(name string) bool {
	for _, known := range knownAgents {
		if name == known {
			return true
		}
	}
	return false
}

// isValidColorMode returns true if the given mode is valid.
func isValidColorMode(mode ColorMode) bool {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}
