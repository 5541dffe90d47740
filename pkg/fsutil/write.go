package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to a temp file in the target directory,
// syncs it and renames it over path. On error the temp file is removed
// and the original stays untouched. A zero mode selects DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// SaveResult describes what Save did.
type SaveResult struct {
	// Written is false when the content was unchanged.
	Written bool

	// BackupPath is set when a backup was created.
	BackupPath string
}

// Save writes the edited content of a file previously read with
// ReadFile. It refuses with ErrModified when the file changed on disk
// in between, creates a backup according to backups and keeps the
// original file mode. Unchanged content is not written.
func Save(ctx context.Context, info *FileInfo, content []byte, backups BackupConfig) (SaveResult, error) {
	var result SaveResult
	if info == nil {
		return result, ErrNilFileInfo
	}

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return result, err
	}
	if modified {
		return result, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	existing, err := os.ReadFile(info.Path)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", info.Path, err)
	}
	if bytes.Equal(existing, content) {
		return result, nil
	}

	created, err := CreateBackup(ctx, info.Path, backups)
	if err != nil {
		return result, err
	}
	if created {
		result.BackupPath = BackupPath(info.Path, backups.Mode)
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode.Perm()); err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}
