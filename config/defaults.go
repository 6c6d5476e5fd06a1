package config

import (
	"github.com/spf13/viper"
)

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Guard defaults
	v.SetDefault("guard.enabled", true)
	v.SetDefault("guard.fail_open", false)

	// Agent defaults
	v.SetDefault("agents.claude-code.enabled", true)
	v.SetDefault("agents.cursor.enabled", true)
	v.SetDefault("agents.gemini.enabled", true)
	v.SetDefault("agents.opencode.enabled", true)

	// Display defaults
	v.SetDefault("display.colors", "auto")
}
