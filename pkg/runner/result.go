package runner

import (
	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/langdetect"
)

// FileResult is the outcome of formatting one file.
type FileResult struct {
	Kind langdetect.Kind

	Original  string
	Formatted string

	// Blocks counts the SVG blocks found in a Markdown file.
	Blocks int

	// Diff is nil when the file is already formatted.
	Diff *fix.Diff

	// Written is set when the formatted content was committed to disk.
	Written bool

	// Skipped is set for unsupported files and for files modified while
	// they were being formatted.
	Skipped bool
	Reason  string
}

// Changed reports whether formatting altered the file.
func (r *FileResult) Changed() bool {
	return r != nil && !r.Skipped && r.Original != r.Formatted
}

// FileOutcome pairs a path with its result or error.
type FileOutcome struct {
	Path   string
	Result *FileResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesSkipped    int
	FilesErrored    int
	BlocksFound     int
}

// Result is the outcome of a run. Files are in discovery order, sorted by path.
type Result struct {
	Files  []FileOutcome
	Stats  Stats
	Errors []error
}

// HasChanges reports whether any file needed formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || len(r.Errors) > 0)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.BlocksFound += res.Blocks
	switch {
	case res.Skipped:
		r.Stats.FilesSkipped++
	case res.Changed():
		r.Stats.FilesChanged++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
}
