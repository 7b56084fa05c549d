package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/seevg/internal/ui/pretty"
	"github.com/yaklabco/seevg/pkg/runner"
)

// TextReporter lists files by status with a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to format."))
		}
		return 0, nil
	}

	changed := 0
	for _, file := range result.Files {
		path := r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir))

		switch res := file.Result; {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		case res == nil:
		case res.Skipped:
			if r.opts.ShowUnchanged || res.Kind != "" {
				fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Skipped.Render("skipped: "+res.Reason))
			}
		case res.Changed():
			changed++
			status := "needs formatting"
			if res.Written {
				status = "formatted"
			}
			fmt.Fprintf(r.bw, "%s: %s%s\n", path, r.styles.Changed.Render(status), r.blocks(res))
		case r.opts.ShowUnchanged:
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Unchanged.Render("unchanged"))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Write))
	}
	return changed, nil
}

func (r *TextReporter) blocks(res *runner.FileResult) string {
	if res.Blocks == 0 {
		return ""
	}
	return r.styles.Dim.Render(fmt.Sprintf(" (%s)", pluralBlocks(res.Blocks)))
}

func pluralBlocks(n int) string {
	if n == 1 {
		return "1 svg block"
	}
	return fmt.Sprintf("%d svg blocks", n)
}
