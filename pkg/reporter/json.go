package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/seevg/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path      string `json:"path"`
	Kind      string `json:"kind,omitempty"`
	Changed   bool   `json:"changed"`
	Written   bool   `json:"written,omitempty"`
	Skipped   string `json:"skipped,omitempty"`
	Blocks    int    `json:"blocks,omitempty"`
	Additions int    `json:"additions,omitempty"`
	Deletions int    `json:"deletions,omitempty"`
	Diff      string `json:"diff,omitempty"`
	Error     string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesChanged    int `json:"filesChanged"`
	FilesWritten    int `json:"filesWritten"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	BlocksFound     int `json:"blocksFound"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{Files: []JSONFileResult{}}
	changed := 0

	if result != nil {
		stats := result.Stats
		output.Summary = JSONSummary{
			FilesDiscovered: stats.FilesDiscovered,
			FilesProcessed:  stats.FilesProcessed,
			FilesChanged:    stats.FilesChanged,
			FilesWritten:    stats.FilesWritten,
			FilesSkipped:    stats.FilesSkipped,
			FilesErrored:    stats.FilesErrored,
			BlocksFound:     stats.BlocksFound,
		}

		for _, file := range result.Files {
			entry := JSONFileResult{Path: displayPath(file.Path, r.opts.WorkingDir)}
			if file.Error != nil {
				entry.Error = file.Error.Error()
			}
			if res := file.Result; res != nil {
				entry.Kind = string(res.Kind)
				entry.Changed = res.Changed()
				entry.Written = res.Written
				entry.Blocks = res.Blocks
				if res.Skipped {
					entry.Skipped = res.Reason
				}
				if res.Diff != nil {
					entry.Additions = res.Diff.Additions
					entry.Deletions = res.Diff.Deletions
					entry.Diff = res.Diff.String()
				}
			}
			if entry.Changed {
				changed++
			}
			output.Files = append(output.Files, entry)
		}
	}

	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}
	return changed, nil
}
