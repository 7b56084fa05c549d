// Package fsutil reads and rewrites markup files safely: content hashes
// detect concurrent edits, writes go through a temp file and rename, and a
// sidecar backup keeps the first original.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrModified indicates the file changed on disk after it was read.
	ErrModified = errors.New("file modified since it was read")
)

// FileInfo is the state of a file when it was read.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// ReadFile reads path and records its state for CheckModified.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// CheckModified reports whether the file changed since info was taken.
// A deleted file counts as modified. Size and mtime are compared first;
// the content hash settles the rest.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, errors.New("check modified: nil FileInfo")
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}
	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}

// Commit replaces the file described by info with content. It refuses with
// ErrModified when the file changed since it was read, and backs the
// original up first when backups are enabled.
func Commit(ctx context.Context, info *FileInfo, content []byte, backup BackupConfig) error {
	modified, err := CheckModified(ctx, info)
	if err != nil {
		return err
	}
	if modified {
		return fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	if _, err := CreateBackup(ctx, info.Path, backup); err != nil {
		return err
	}
	return WriteAtomic(ctx, info.Path, content, info.Mode.Perm())
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
