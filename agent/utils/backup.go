package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const backupTimeFormat = "20060102150405"

// BackupFile copies the file at path into backupDir/agentName and returns the
// backup path. With an empty backupDir the copy is written next to the original.
// A missing source file is not an error and yields an empty path.
func BackupFile(path, backupDir, agentName string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	name := fmt.Sprintf("%s.backup.%s", filepath.Base(path), time.Now().Format(backupTimeFormat))
	backupPath := filepath.Join(filepath.Dir(path), name)
	if backupDir != "" {
		dir := filepath.Join(backupDir, agentName)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		backupPath = filepath.Join(dir, name)
	}

	if err := os.WriteFile(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}

// LatestBackup returns the most recent backup of fileName for agentName.
func LatestBackup(backupDir, agentName, fileName string) (string, bool) {
	if backupDir == "" {
		return "", false
	}

	pattern := filepath.Join(backupDir, agentName, fileName+".backup.*")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}

	sort.Strings(matches)
	return matches[len(matches)-1], true
}

// RestoreBackup copies backupPath over target.
func RestoreBackup(backupPath, target string, perm os.FileMode) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := os.WriteFile(target, data, perm); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}
