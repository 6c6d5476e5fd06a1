package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFile_MissingSource(t *testing.T) {
	path, err := BackupFile(filepath.Join(t.TempDir(), "nope.json"), t.TempDir(), "cursor")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupFile_IntoBackupDir(t *testing.T) {
	srcDir := t.TempDir()
	backupDir := t.TempDir()
	src := filepath.Join(srcDir, "hooks.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"version":1}`), 0600))

	backupPath, err := BackupFile(src, backupDir, "cursor")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(backupDir, "cursor"), filepath.Dir(backupPath))

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))

	latest, ok := LatestBackup(backupDir, "cursor", "hooks.json")
	require.True(t, ok)
	assert.Equal(t, backupPath, latest)
}

func TestBackupFile_NextToOriginal(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "settings.json")
	require.NoError(t, os.WriteFile(src, []byte(`{}`), 0600))

	backupPath, err := BackupFile(src, "", "claude-code")
	require.NoError(t, err)
	assert.Equal(t, srcDir, filepath.Dir(backupPath))
}

func TestLatestBackup_None(t *testing.T) {
	_, ok := LatestBackup(t.TempDir(), "gemini", "settings.json")
	assert.False(t, ok)

	_, ok = LatestBackup("", "gemini", "settings.json")
	assert.False(t, ok)
}

func TestRestoreBackup(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "settings.json.backup.1")
	target := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(backup, []byte(`{"a":1}`), 0600))
	require.NoError(t, os.WriteFile(target, []byte(`{"b":2}`), 0600))

	require.NoError(t, RestoreBackup(backup, target, 0600))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}
