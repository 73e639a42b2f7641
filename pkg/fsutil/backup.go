package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups are kept.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the file with BackupSuffix appended.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".jdkup.bak"

// ErrNoBackup is returned by Restore when no backup exists.
var ErrNoBackup = errors.New("no backup found")

// BackupConfig controls backup creation.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig enables sidecar backups.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Enabled: true, Mode: BackupModeSidecar}
}

// Active reports whether backups will be written.
func (c BackupConfig) Active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns the sidecar path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies content to the sidecar of path unless one already exists,
// so the first backup taken survives repeated runs. It reports whether a
// backup was written.
func Backup(ctx context.Context, path string, content []byte, mode os.FileMode, cfg BackupConfig) (bool, error) {
	if !cfg.Active() {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("backup %s: %w", path, err)
	}

	target := BackupPath(path)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, target, content, mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// Restore copies the sidecar backup of path back over path and removes
// the backup.
func Restore(ctx context.Context, path string) error {
	source := BackupPath(path)

	content, snap, err := Read(ctx, source)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNoBackup, path)
		}
		return err
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	if err := os.Remove(source); err != nil {
		return fmt.Errorf("remove backup: %w", err)
	}
	return nil
}
