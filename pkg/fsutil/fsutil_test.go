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

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("regular file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, dir, "Main.java", "class A {}\r\n")

		content, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "class A {}\r\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(12), info.Size)
		assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(ctx, filepath.Join(dir, "nope.go"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(ctx, dir)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.ReadFile(cctx, dir)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := fsutil.CheckModified(ctx, nil)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1\n")
	_, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	modified, err := fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.False(t, modified)

	// Same size, different bytes: only the hash can tell.
	require.NoError(t, os.WriteFile(path, []byte("x = 2\n"), 0o600))
	require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))
	modified, err = fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, os.Remove(path))
	modified, err = fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.True(t, modified)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "new.rs")
	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("fn main() {}\n"), 0))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}\n", string(got))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	err = fsutil.WriteAtomic(ctx, filepath.Join(dir, "missing", "x.rs"), []byte("x"), 0)
	require.Error(t, err)
}

func TestSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sidecar := fsutil.NewBackupConfig(true, "")

	t.Run("writes and backs up", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "A.java", "class A {}\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		result, err := fsutil.Save(ctx, info, []byte("class A { int x; }\n"), sidecar)
		require.NoError(t, err)
		assert.True(t, result.Written)
		assert.Equal(t, path+fsutil.BackupSuffix, result.BackupPath)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "class A { int x; }\n", string(got))

		backup, err := os.ReadFile(result.BackupPath)
		require.NoError(t, err)
		assert.Equal(t, "class A {}\n", string(backup))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("unchanged content is not written", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "a.go", "package a\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		result, err := fsutil.Save(ctx, info, []byte("package a\n"), sidecar)
		require.NoError(t, err)
		assert.False(t, result.Written)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("refuses concurrent modification", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "a.md", "# a\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("# changed elsewhere\n"), 0o600))

		_, err = fsutil.Save(ctx, info, []byte("# b\n"), sidecar)
		require.ErrorIs(t, err, fsutil.ErrModified)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# changed elsewhere\n", string(got))
	})

	t.Run("no backup when disabled", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "a.md", "# a\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		result, err := fsutil.Save(ctx, info, []byte("# b\n"), fsutil.NewBackupConfig(true, "none"))
		require.NoError(t, err)
		assert.True(t, result.Written)
		assert.Empty(t, result.BackupPath)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})
}
