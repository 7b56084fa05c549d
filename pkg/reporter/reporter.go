// Package reporter writes the results of a formatting run as styled text,
// JSON or unified diffs.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/seevg/pkg/config"
	"github.com/yaklabco/seevg/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes output for result and returns the number of files that
	// need (or received) formatting.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	switch opts.Format {
	case config.FormatText, "":
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
