package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/seevg/pkg/fsutil"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	write(t, path, "<svg/>")

	content, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(content))
	assert.Equal(t, int64(6), info.Size)
	assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())

	_, _, err = fsutil.ReadFile(context.Background(), filepath.Join(dir, "missing.svg"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(context.Background(), dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)
}

func TestReadFileCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fsutil.ReadFile(ctx, "whatever.svg")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	write(t, path, "<svg/>")

	_, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	modified, err := fsutil.CheckModified(context.Background(), info)
	require.NoError(t, err)
	assert.False(t, modified)

	write(t, path, "<svg></svg>")
	modified, err = fsutil.CheckModified(context.Background(), info)
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, os.Remove(path))
	modified, err = fsutil.CheckModified(context.Background(), info)
	require.NoError(t, err)
	assert.True(t, modified, "deleted files count as modified")

	_, err = fsutil.CheckModified(context.Background(), nil)
	require.Error(t, err)
}

func TestCheckModifiedSameSizeSameTime(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	write(t, path, "<svg a='1'/>")

	_, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	write(t, path, "<svg a='2'/>")
	require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))

	modified, err := fsutil.CheckModified(context.Background(), info)
	require.NoError(t, err)
	assert.True(t, modified, "hash catches edits that keep size and mtime")
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.svg")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("<svg/>"), 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	err = fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "missing", "out.svg"), nil, 0)
	require.Error(t, err)
}

func TestCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	write(t, path, "<svg><g/></svg>")

	_, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)

	backup := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	require.NoError(t, fsutil.Commit(context.Background(), info, []byte("<svg>\n  <g/>\n</svg>"), backup))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg>\n  <g/>\n</svg>", string(content))

	saved, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "<svg><g/></svg>", string(saved))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
}

func TestCommitRefusesModifiedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	write(t, path, "<svg/>")

	_, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	write(t, path, "<svg>edited elsewhere</svg>")

	err = fsutil.Commit(context.Background(), info, []byte("formatted"), fsutil.BackupConfig{})
	require.ErrorIs(t, err, fsutil.ErrModified)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<svg>edited elsewhere</svg>", string(content))
}

func TestCreateBackupKeepsFirstOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	write(t, path, "first")
	created, err := fsutil.CreateBackup(context.Background(), path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	write(t, path, "second")
	created, err = fsutil.CreateBackup(context.Background(), path, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	saved, err := os.ReadFile(path + ".seevg.bak")
	require.NoError(t, err)
	assert.Equal(t, "first", string(saved))
}

func TestCreateBackupDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "icon.svg")
	write(t, path, "x")

	for _, cfg := range []fsutil.BackupConfig{
		{Enabled: false, Mode: fsutil.BackupModeSidecar},
		{Enabled: true, Mode: fsutil.BackupModeNone},
	} {
		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		require.NoError(t, err)
		assert.False(t, created)
	}

	created, err := fsutil.CreateBackup(context.Background(), filepath.Join(dir, "missing.svg"),
		fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar})
	require.NoError(t, err)
	assert.False(t, created)

	assert.Empty(t, fsutil.BackupPath(path, fsutil.BackupModeNone))
}
