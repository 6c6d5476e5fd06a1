package gemini

import (
	"context"
	"fmt"
	"slices"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/agent/utils"
)

const (
	HookBeforeTool = "BeforeTool"

	// ReadFileMatcher limits the hook to Gemini CLI's read_file tool.
	ReadFileMatcher = "read_file"
)

var HookTypes = []string{HookBeforeTool}

func GenerateHooksConfig() map[string]utils.HookMatcher {
	hooks := make(map[string]utils.HookMatcher, len(HookTypes))
	for _, hookType := range HookTypes {
		hooks[hookType] = utils.HookMatcher{
			Matcher: ReadFileMatcher,
			Hooks: []utils.HookEntry{
				{Type: "command", Command: utils.HookCommand(AgentName, hookType)},
			},
		}
	}
	return hooks
}

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
		result.Error = fmt.Errorf("Gemini CLI is not installed")
		return result, result.Error
	}

	settings, err := utils.ReadSettings(detection.HooksPath)
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
		backupPath, err := utils.BackupFile(detection.HooksPath, opts.BackupDir, AgentName)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("backup failed: %v", err))
		} else if backupPath != "" {
			result.BackupPaths[settingsFileName] = backupPath
		}
	}

	// Gemini CLI ignores hooks unless the hook system is switched on.
	tools, ok := settings["tools"].(map[string]interface{})
	if !ok {
		tools = make(map[string]interface{})
		settings["tools"] = tools
	}
	tools["enableHooks"] = true

	installed, err := utils.InstallMatcherHooks(settings, GenerateHooksConfig(), HookTypes)
	if err != nil {
		result.Error = err
		return result, err
	}
	result.HooksInstalled = installed

	if err := utils.WriteSettings(detection.HooksPath, settings); err != nil {
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

	if opts.RestoreBackup {
		if backupPath, ok := utils.LatestBackup(opts.BackupDir, AgentName, settingsFileName); ok {
			if !opts.DryRun {
				if err := utils.RestoreBackup(backupPath, detection.HooksPath, 0600); err != nil {
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

	settings, err := utils.ReadSettings(detection.HooksPath)
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

	if err := utils.WriteSettings(detection.HooksPath, settings); err != nil {
		result.Error = fmt.Errorf("failed to write settings.json: %w", err)
		return result, result.Error
	}

	result.Success = true
	return result, nil
}

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
		if tools, ok := settings["tools"].(map[string]interface{}); !ok || tools["enableHooks"] != true {
			status.Valid = false
			status.Issues = append(status.Issues, "tools.enableHooks is not set")
		}
		for _, hookType := range HookTypes {
			if !slices.Contains(status.Hooks, hookType) {
				status.Valid = false
				status.Issues = append(status.Issues, fmt.Sprintf("%s: hook not configured", hookType))
			}
		}
	}

	return status, nil
}
