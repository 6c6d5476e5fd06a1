// Package config provides configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Agent names as constants. Must be in sync with agent/adapter.go.
// We cannot depend on agent/adapter.go because it would create a circular dependency.
const (
	agentNameClaudeCode = "claude-code"
	agentNameCursor     = "cursor"
	agentNameGemini     = "gemini"
	agentNameOpenCode   = "opencode"
)

// envPrefix is the prefix for environment variable overrides.
const envPrefix = "ENVGUARD"

// ColorMode represents the color output mode.
type ColorMode string

const (
	// ColorAuto automatically detects terminal support.
	ColorAuto ColorMode = "auto"
	// ColorAlways always uses colors.
	ColorAlways ColorMode = "always"
	// ColorNever never uses colors.
	ColorNever ColorMode = "never"
)

// Config holds all configuration values.
type Config struct {
	Guard   GuardConfig   `mapstructure:"guard"`
	Agents  AgentsConfig  `mapstructure:"agents"`
	Display DisplayConfig `mapstructure:"display"`
}

// GuardConfig controls hook evaluation.
type GuardConfig struct {
	// Enabled turns the env file check on or off for every agent.
	Enabled bool `mapstructure:"enabled"`
	// FailOpen allows the tool call when a check itself errors.
	FailOpen bool `mapstructure:"fail_open"`
}

// AgentConfig holds settings for a specific agent.
type AgentConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// AgentsConfig holds per-agent settings.
type AgentsConfig struct {
	ClaudeCode AgentConfig `mapstructure:"claude-code"`
	Cursor     AgentConfig `mapstructure:"cursor"`
	Gemini     AgentConfig `mapstructure:"gemini"`
	OpenCode   AgentConfig `mapstructure:"opencode"`
}

// DisplayConfig holds display-related settings.
type DisplayConfig struct {
	Colors ColorMode `mapstructure:"colors"`
}

// Paths holds resolved filesystem paths.
type Paths struct {
	ConfigFile string
	ConfigDir  string
	DataDir    string
	BackupsDir string
}

// newViper returns a viper instance with defaults and environment bindings.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load loads configuration from the given path or default locations.
func Load(configPath string) (*Config, error) {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		paths := ResolvePaths()

		v.SetConfigName("config")
		v.AddConfigPath(paths.ConfigDir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// decode unmarshals and validates the configuration held by v.
func decode(v *viper.Viper) (*Config, error) {
	if err := validateAgentKeys(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with all default values.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)

	return &cfg
}

// ResolvePaths returns the resolved filesystem paths for the current platform.
func ResolvePaths() *Paths {
	configDir := getConfigDir()
	dataDir := getDataDir()

	return &Paths{
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		ConfigDir:  configDir,
		DataDir:    dataDir,
		BackupsDir: filepath.Join(dataDir, "backups"),
	}
}

// ShouldUseColors returns true if colors should be used based on config,
// the NO_COLOR convention and the terminal.
func (c *Config) ShouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv(envPrefix+"_NO_COLOR") != "" {
		return false
	}

	switch c.Display.Colors {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// IsAgentEnabled returns true if the given agent is enabled.
func (c *Config) IsAgentEnabled(agentName string) bool {
	switch agentName {
	case agentNameClaudeCode:
		return c.Agents.ClaudeCode.Enabled
	case agentNameCursor:
		return c.Agents.Cursor.Enabled
	case agentNameGemini:
		return c.Agents.Gemini.Enabled
	case agentNameOpenCode:
		return c.Agents.OpenCode.Enabled
	default:
		return true
	}
}
