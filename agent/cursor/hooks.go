package cursor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/agent/utils"
)

// HookBeforeReadFile fires before Cursor's agent reads a file.
const HookBeforeReadFile = "beforeReadFile"

// HookTypes are the hook types envguard installs for Cursor.
var HookTypes = []string{HookBeforeReadFile}

// HooksConfig represents the Cursor hooks.json structure.
type HooksConfig struct {
	Version int                      `json:"version"`
	Hooks   map[string][]HookCommand `json:"hooks"`
}

// HookCommand represents a single hook command.
type HookCommand struct {
	Command string `json:"command"`
}

// GenerateHooksConfig generates the hooks.json content for envguard.
func GenerateHooksConfig() *HooksConfig {
	config := &HooksConfig{
		Version: 1,
		Hooks:   make(map[string][]HookCommand),
	}

	for _, hookType := range HookTypes {
		config.Hooks[hookType] = []HookCommand{
			{Command: utils.HookCommand(AgentName, hookType)},
		}
	}

	return config
}

// readHooksConfig reads hooks.json. A missing file yields nil without error.
func readHooksConfig(path string) (*HooksConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	config := &HooksConfig{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if config.Hooks == nil {
		config.Hooks = make(map[string][]HookCommand)
	}
	return config, nil
}

func writeHooksConfig(path string, config *HooksConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal hooks config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// InstallHooks installs hooks for Cursor.
func InstallHooks(ctx context.Context, opts agent.InstallOptions) (*agent.InstallResult, error) {
	result := &agent.InstallResult{
		BackupPaths: make(map[string]string),
	}

	detection, err := Detect(ctx)
	if err != nil {
		result.Error = err
		return result, err
	}

	if !detection.Installed {
		result.Error = fmt.Errorf("Cursor is not installed")
		return result, result.Error
	}

	hooksFile := detection.HooksPath

	existing, err := readHooksConfig(hooksFile)
	if err != nil {
		result.Warnings = append(result.Warnings, "existing hooks.json is malformed, will be replaced")
		existing = nil
	}

	if existing != nil && !opts.Force && !opts.DryRun && hasEnvguardHooks(existing) {
		result.Warnings = append(result.Warnings, "envguard hooks already installed (use --force to overwrite)")
		result.Success = true
		return result, nil
	}

	if opts.DryRun {
		result.HooksInstalled = HookTypes
		result.Success = true
		return result, nil
	}

	if err := os.MkdirAll(detection.ConfigPath, 0700); err != nil {
		result.Error = fmt.Errorf("failed to create config directory: %w", err)
		return result, result.Error
	}

	if opts.Backup {
		backupPath, err := utils.BackupFile(hooksFile, opts.BackupDir, AgentName)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to backup hooks.json: %v", err))
		} else if backupPath != "" {
			result.BackupPaths[hooksFileName] = backupPath
		}
	}

	config := mergeHooksConfig(existing)
	if err := writeHooksConfig(hooksFile, config); err != nil {
		result.Error = fmt.Errorf("failed to write hooks.json: %w", err)
		return result, result.Error
	}

	result.HooksInstalled = HookTypes
	result.Success = true
	return result, nil
}

// mergeHooksConfig adds envguard hooks to existing, replacing any stale
// envguard commands while keeping other hooks.
func mergeHooksConfig(existing *HooksConfig) *HooksConfig {
	if existing == nil {
		return GenerateHooksConfig()
	}

	removeEnvguardHooks(existing)
	if existing.Version == 0 {
		existing.Version = 1
	}

	for hookType, commands := range GenerateHooksConfig().Hooks {
		existing.Hooks[hookType] = append(existing.Hooks[hookType], commands...)
	}
	return existing
}

// removeEnvguardHooks strips envguard commands and returns the affected hook types.
func removeEnvguardHooks(config *HooksConfig) []string {
	var removed []string
	for hookType, commands := range config.Hooks {
		filtered := []HookCommand{}
		for _, cmd := range commands {
			if utils.IsEnvguardCommand(cmd.Command) {
				continue
			}
			filtered = append(filtered, cmd)
		}

		if len(filtered) != len(commands) {
			removed = append(removed, hookType)
		}
		if len(filtered) == 0 {
			delete(config.Hooks, hookType)
		} else {
			config.Hooks[hookType] = filtered
		}
	}
	slices.Sort(removed)
	return removed
}

func hasEnvguardHooks(config *HooksConfig) bool {
	for _, commands := range config.Hooks {
		for _, cmd := range commands {
			if utils.IsEnvguardCommand(cmd.Command) {
				return true
			}
		}
	}
	return false
}

// UninstallHooks removes hooks from Cursor.
func UninstallHooks(ctx context.Context, opts agent.UninstallOptions) (*agent.UninstallResult, error) {
	result := &agent.UninstallResult{}

	detection, err := Detect(ctx)
	if err != nil {
		result.Error = err
		return result, err
	}

	if !detection.Installed {
		result.Success = true
		return result, nil
	}

	hooksFile := detection.HooksPath

	if opts.RestoreBackup {
		if backupPath, ok := utils.LatestBackup(opts.BackupDir, AgentName, hooksFileName); ok {
			if !opts.DryRun {
				if err := utils.RestoreBackup(backupPath, hooksFile, 0600); err != nil {
					result.Error = err
					return result, err
				}
			}
			result.BackupsRestored = true
			result.HooksRemoved = HookTypes
			result.Success = true
			return result, nil
		}
	}

	config, err := readHooksConfig(hooksFile)
	if err != nil {
		result.Error = fmt.Errorf("failed to read hooks.json: %w", err)
		return result, result.Error
	}
	if config == nil {
		result.Success = true
		return result, nil
	}

	removed := removeEnvguardHooks(config)
	result.HooksRemoved = removed

	if opts.DryRun || len(removed) == 0 {
		result.Success = true
		return result, nil
	}

	if err := writeHooksConfig(hooksFile, config); err != nil {
		result.Error = fmt.Errorf("failed to write hooks.json: %w", err)
		return result, result.Error
	}

	result.Success = true
	return result, nil
}

// GetHookStatus checks the current hook state.
func GetHookStatus(ctx context.Context) (*agent.HookStatus, error) {
	status := &agent.HookStatus{}

	detection, err := Detect(ctx)
	if err != nil {
		return status, err
	}

	if !detection.Installed {
		return status, nil
	}

	config, err := readHooksConfig(detection.HooksPath)
	if err != nil {
		status.Issues = append(status.Issues, fmt.Sprintf("cannot read hooks.json: %v", err))
		return status, nil
	}
	if config == nil {
		return status, nil
	}

	for _, hookType := range HookTypes {
		expected := utils.HookCommand(AgentName, hookType)
		for _, cmd := range config.Hooks[hookType] {
			if cmd.Command == expected {
				status.Hooks = append(status.Hooks, hookType)
				break
			}
		}
	}

	status.Installed = len(status.Hooks) > 0 || hasEnvguardHooks(config)
	status.Valid = status.Installed
	for _, hookType := range HookTypes {
		if status.Installed && !slices.Contains(status.Hooks, hookType) {
			status.Valid = false
			status.Issues = append(status.Issues, fmt.Sprintf("%s: hook not configured", hookType))
		}
	}

	return status, nil
}
