package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/seevg/internal/ui/pretty"
	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/runner"
)

// DiffReporter formats results as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		files++
		additions += file.Result.Diff.Additions
		deletions += file.Result.Diff.Deletions
		r.writeDiff(file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	for _, line := range strings.Split(strings.TrimSuffix(diff.FullString(), "\n"), "\n") {
		fmt.Fprintln(r.bw, r.styles.DiffLine(line))
	}
	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pick(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pick(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pick(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func pick(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
