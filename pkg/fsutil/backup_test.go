package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode fsutil.BackupMode
		want string
	}{
		{"sidecar", fsutil.BackupModeSidecar, "/src/Main.java.lexkeep.bak"},
		{"none", fsutil.BackupModeNone, ""},
		{"unknown falls back to sidecar", fsutil.BackupMode("other"), "/src/Main.java.lexkeep.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fsutil.BackupPath("/src/Main.java", tt.mode))
		})
	}
}

func TestNewBackupConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}, fsutil.NewBackupConfig(true, ""))
	assert.Equal(t, fsutil.BackupConfig{Enabled: false, Mode: fsutil.BackupModeNone}, fsutil.NewBackupConfig(false, "none"))
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("keeps the first original", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "a.go")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

		created, err := fsutil.CreateBackup(ctx, path, fsutil.NewBackupConfig(true, "sidecar"))
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o600))
		created, err = fsutil.CreateBackup(ctx, path, fsutil.NewBackupConfig(true, "sidecar"))
		require.NoError(t, err)
		assert.False(t, created)

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "v1", string(backup))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "a.go")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o600))

		created, err := fsutil.CreateBackup(ctx, path, fsutil.NewBackupConfig(false, "sidecar"))
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.CreateBackup(ctx, filepath.Join(t.TempDir(), "gone.go"), fsutil.NewBackupConfig(true, ""))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")
	require.NoError(t, os.WriteFile(path, []byte("original\n"), 0o600))

	restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.False(t, restored)

	_, err = fsutil.CreateBackup(ctx, path, fsutil.NewBackupConfig(true, "sidecar"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("edited\n"), 0o600))

	restored, err = fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
	require.NoError(t, err)
	assert.True(t, restored)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(got))
	assert.NoFileExists(t, path+fsutil.BackupSuffix)
}
