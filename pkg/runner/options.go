// Package runner formats many files concurrently: it discovers SVG and
// Markdown files under a set of paths, formats each on a worker pool, and
// optionally writes the results back.
package runner

import (
	"github.com/yaklabco/seevg/pkg/config"
	"github.com/yaklabco/seevg/pkg/fsutil"
)

// Options controls a run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working directory.
	WorkingDir string

	// ExcludeGlobs skip matching files and directories, relative to WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// IncludeVendored keeps files under dependency directories such as node_modules.
	IncludeVendored bool

	// Jobs is the worker count. 0 or negative means runtime.NumCPU().
	Jobs int

	// Write commits formatted content back to disk.
	Write bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) markdown() bool {
	return o.Config == nil || o.Config.Format.Markdown
}

func (o Options) backup() fsutil.BackupConfig {
	if o.Config == nil {
		return fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	}
	return fsutil.BackupConfig{
		Enabled: o.Config.BackupsEnabled(),
		Mode:    fsutil.BackupMode(o.Config.Backups.Mode),
	}
}
