package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	// BackupModeSidecar writes path + BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the original path for sidecar backups.
const BackupSuffix = ".seevg.bak"

// BackupConfig controls backups.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// BackupPath returns where the backup of path goes, or "" when mode disables backups.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location. An existing backup is
// never overwritten, so repeated runs keep the first original. It reports
// whether a backup was written.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	backupPath := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || backupPath == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, info, err := ReadFile(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, info.Mode.Perm()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
