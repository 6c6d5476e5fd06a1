package cursor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/safedep/envguard/agent"
)

const hooksFileName = "hooks.json"

// Detect checks if Cursor is installed on the system. The user-level
// ~/.cursor directory counts as an installation even when the application
// binary cannot be located.
func Detect(ctx context.Context) (*agent.DetectionResult, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &agent.DetectionResult{
			Installed: false,
			Message:   "could not determine home directory",
		}, nil
	}

	cursorDir := filepath.Join(home, ".cursor")
	installPath := findInstallation(home)

	if installPath == "" {
		if _, err := os.Stat(cursorDir); err == nil {
			installPath = cursorDir
		}
	}

	if installPath == "" {
		return &agent.DetectionResult{
			Installed: false,
			Message:   "Cursor not installed",
		}, nil
	}

	return &agent.DetectionResult{
		Installed:  true,
		Path:       installPath,
		ConfigPath: cursorDir,
		HooksPath:  filepath.Join(cursorDir, hooksFileName),
		Version:    getVersion(ctx),
	}, nil
}

// findInstallation looks for the Cursor application in platform locations.
func findInstallation(home string) string {
	switch runtime.GOOS {
	case "darwin":
		paths := []string{
			filepath.Join(home, "Applications", "Cursor.app"),
			"/Applications/Cursor.app",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}

	case "linux":
		if path, err := exec.LookPath("cursor"); err == nil {
			return path
		}

	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			cursorPath := filepath.Join(localAppData, "Programs", "cursor", "Cursor.exe")
			if _, err := os.Stat(cursorPath); err == nil {
				return cursorPath
			}
		}
	}
	return ""
}

// getVersion attempts to get the Cursor version.
func getVersion(ctx context.Context) string {
	cmdCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(cmdCtx, "cursor", "--version").Output()
	if err != nil {
		return "unknown"
	}

	// First line is the version, followed by commit and arch.
	version := strings.TrimSpace(string(output))
	for _, part := range strings.Fields(version) {
		if part[0] >= '0' && part[0] <= '9' {
			return part
		}
	}
	return version
}
