package claudecode

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/safedep/envguard/agent"
)

// settingsFileName is the Claude Code user settings file holding hooks.
const settingsFileName = "settings.json"

// Detect checks if Claude Code is installed on the system.
func Detect(ctx context.Context) (*agent.DetectionResult, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &agent.DetectionResult{
			Installed: false,
			Message:   "could not determine home directory",
		}, nil
	}

	claudeDir := filepath.Join(home, ".claude")
	if _, err := os.Stat(claudeDir); os.IsNotExist(err) {
		return &agent.DetectionResult{
			Installed: false,
			Message:   "Claude Code not installed (~/.claude not found)",
		}, nil
	}

	result := &agent.DetectionResult{
		Installed:  true,
		Path:       claudeDir,
		ConfigPath: claudeDir,
		HooksPath:  filepath.Join(claudeDir, settingsFileName),
	}

	// Output format: "2.1.15 (Claude Code)"
	if output, err := exec.CommandContext(ctx, "claude", "-v").Output(); err == nil {
		version := strings.TrimSpace(string(output))
		if idx := strings.Index(version, " "); idx > 0 {
			version = version[:idx]
		}
		result.Version = version
	}

	if result.Version == "" {
		result.Version = "unknown"
	}

	return result, nil
}
