package claudecode

import (
	"context"
	"fmt"
	"slices"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/agent/utils"
)

// HookPreToolUse is the only Claude Code hook envguard installs.
const HookPreToolUse = "PreToolUse"

// ReadToolMatcher limits the hook to Claude Code's file read tool.
const ReadToolMatcher = "Read"

// HookTypes are the hook types envguard installs for Claude Code.
var HookTypes = []string{HookPreToolUse}

// GenerateHooksConfig generates the matcher entries envguard adds to settings.json.
func GenerateHooksConfig() map[string]utils.HookMatcher {
	hooks := make(map[string]utils.HookMatcher, len(HookTypes))
	for _, hookType := range HookTypes {
		hooks[hookType] = utils.HookMatcher{
			Matcher: ReadToolMatcher,
			Hooks: []utils.HookEntry{
				{Type: "command", Command: utils.HookCommand(AgentName, hookType)},
			},
		}
	}
	return hooks
}

// InstallHooks installs hooks for Claude Code by modifying settings.json.
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
		result.Error = fmt.Errorf("Claude Code is not installed")
		return result, result.Error
	}

	settingsPath := detection.HooksPath
	settings, err := utils.ReadSettings(settingsPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read settings.json: %w", err)
		return result, result.Error
	}

	if !opts.Force && !opts.DryRun && utils.HasEnvguardHooks(settings, HookTypes) {
		result.Warnings = append(result.Warnings, "envguard hooks already installed (use --force to overwrite)")
		result.Success = true
		return result, nil
	}

	if opts.DryRun {
		result.HooksInstalled = HookTypes
		result.Success = true
		return result, nil
	}

	if opts.Backup {
		backupPath, err := utils.BackupFile(settingsPath, opts.BackupDir, AgentName)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("backup failed: %v", err))
		} else if backupPath != "" {
			result.BackupPaths[settingsFileName] = backupPath
		}
	}

	installed, err := utils.InstallMatcherHooks(settings, GenerateHooksConfig(), HookTypes)
	if err != nil {
		result.Error = err
		return result, err
	}
	result.HooksInstalled = installed

	if err := utils.WriteSettings(settingsPath, settings); err != nil {
		result.Error = fmt.Errorf("failed to write settings.json: %w", err)
		return result, result.Error
	}

	status, err := GetHookStatus(ctx)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("verification failed: %v", err))
	} else if !status.Valid {
		result.Warnings = append(result.Warnings, "hooks installed but validation failed")
		result.Warnings = append(result.Warnings, status.Issues...)
	}

	result.Success = true
	return result, nil
}

// UninstallHooks removes envguard hooks from Claude Code, leaving other hooks intact.
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

	settingsPath := detection.HooksPath

	if opts.RestoreBackup {
		if backupPath, ok := utils.LatestBackup(opts.BackupDir, AgentName, settingsFileName); ok {
			if !opts.DryRun {
				if err := utils.RestoreBackup(backupPath, settingsPath, 0600); err != nil {
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

	settings, err := utils.ReadSettings(settingsPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to read settings.json: %w", err)
		return result, result.Error
	}

	if opts.DryRun {
		result.HooksRemoved = utils.InstalledHookTypes(settings, AgentName, HookTypes)
		result.Success = true
		return result, nil
	}

	removed := utils.RemoveEnvguardHooks(settings)
	if len(removed) == 0 {
		result.Success = true
		return result, nil
	}
	slices.Sort(removed)
	result.HooksRemoved = removed

	if err := utils.WriteSettings(settingsPath, settings); err != nil {
		result.Error = fmt.Errorf("failed to write settings.json: %w", err)
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

	settings, err := utils.ReadSettings(detection.HooksPath)
	if err != nil {
		status.Issues = append(status.Issues, fmt.Sprintf("cannot read settings.json: %v", err))
		return status, nil
	}

	status.Hooks = utils.InstalledHookTypes(settings, AgentName, HookTypes)
	status.Installed = len(status.Hooks) > 0
	status.Valid = status.Installed

	if status.Installed {
		for _, hookType := range HookTypes {
			if !slices.Contains(status.Hooks, hookType) {
				status.Valid = false
				status.Issues = append(status.Issues, fmt.Sprintf("%s: hook not configured", hookType))
			}
		}
	}

	return status, nil
}
