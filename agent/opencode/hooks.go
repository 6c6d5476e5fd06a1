package opencode

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/agent/utils"
)

//go:embed plugin.js
var pluginJS []byte

const (
	HookToolExecuteBefore = "tool.execute.before"

	pluginFileName = "envguard.js"
	pluginMarker   = "invokeEnvguard"
)

var HookTypes = []string{HookToolExecuteBefore}

func pluginPath(configPath string) string {
	return filepath.Join(configPath, "plugins", pluginFileName)
}

// PluginSource returns the plugin installed into OpenCode.
func PluginSource() []byte {
	return pluginJS
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
		result.Error = fmt.Errorf("OpenCode not detected (~/.config/opencode not found)")
		return result, result.Error
	}

	pluginFile := detection.HooksPath

	if !opts.Force && !opts.DryRun {
		if existing, err := os.ReadFile(pluginFile); err == nil && bytes.Contains(existing, []byte(pluginMarker)) {
			result.Warnings = append(result.Warnings, "envguard plugin already installed (use --force to overwrite)")
			result.Success = true
			return result, nil
		}
	}

	if opts.DryRun {
		result.HooksInstalled = HookTypes
		result.Success = true
		return result, nil
	}

	if opts.Backup {
		backupPath, err := utils.BackupFile(pluginFile, opts.BackupDir, AgentName)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("backup failed: %v", err))
		} else if backupPath != "" {
			result.BackupPaths[pluginFileName] = backupPath
		}
	}

	if err := os.MkdirAll(filepath.Dir(pluginFile), 0700); err != nil {
		result.Error = fmt.Errorf("failed to create plugins directory: %w", err)
		return result, result.Error
	}

	if err := os.WriteFile(pluginFile, pluginJS, 0644); err != nil {
		result.Error = fmt.Errorf("failed to write plugin file: %w", err)
		return result, result.Error
	}

	result.HooksInstalled = HookTypes
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

	pluginFile := detection.HooksPath

	if _, err := os.Stat(pluginFile); os.IsNotExist(err) {
		result.Success = true
		return result, nil
	}

	if opts.RestoreBackup {
		if backupPath, ok := utils.LatestBackup(opts.BackupDir, AgentName, pluginFileName); ok {
			if !opts.DryRun {
				if err := utils.RestoreBackup(backupPath, pluginFile, 0644); err != nil {
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

	if opts.DryRun {
		result.HooksRemoved = HookTypes
		result.Success = true
		return result, nil
	}

	if err := os.Remove(pluginFile); err != nil {
		result.Error = fmt.Errorf("failed to remove plugin file: %w", err)
		return result, result.Error
	}

	result.HooksRemoved = HookTypes
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

	data, err := os.ReadFile(detection.HooksPath)
	if err != nil {
		if os.IsNotExist(err) {
			return status, nil
		}
		status.Issues = append(status.Issues, fmt.Sprintf("cannot read plugin file: %v", err))
		return status, nil
	}

	if !bytes.Contains(data, []byte(pluginMarker)) {
		status.Issues = append(status.Issues, "plugin file exists but does not contain envguard hooks")
		return status, nil
	}

	status.Installed = true
	status.Hooks = HookTypes
	status.Valid = bytes.Equal(data, pluginJS)
	if !status.Valid {
		status.Issues = append(status.Issues, "plugin file differs from expected content (may need update)")
	}

	return status, nil
}
