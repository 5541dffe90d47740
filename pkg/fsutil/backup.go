package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is the suffix of sidecar backup files.
const BackupSuffix = ".lexkeep.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// NewBackupConfig converts configuration values. An empty mode selects
// sidecar backups.
func NewBackupConfig(enabled bool, mode string) BackupConfig {
	m := BackupMode(mode)
	if m == "" {
		m = BackupModeSidecar
	}
	return BackupConfig{Enabled: enabled, Mode: m}
}

// BackupPath returns the backup path for path, or "" when mode stores none.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its backup location. An
// existing backup is never overwritten, so repeated edits keep the
// first original. It returns true if a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := BackupPath(path, cfg.Mode)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode.Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path back over it and removes the
// backup. It returns false when no backup exists.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	content, info, err := ReadFile(ctx, backupPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, info.Mode.Perm()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if err := os.Remove(backupPath); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
