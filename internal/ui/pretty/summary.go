package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/seevg/pkg/runner"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine formats run statistics as a single line, for
// example "2 files need formatting (5 checked), 1 error".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, write bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d checked)", stats.FilesProcessed))

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted")+checked)
	case write:
		parts = append(parts, s.Success.Render(plural(stats.FilesWritten, "file", "files")+" reformatted")+checked)
	default:
		verb := " need formatting"
		if stats.FilesChanged == 1 {
			verb = " needs formatting"
		}
		parts = append(parts, s.Changed.Render(plural(stats.FilesChanged, "file", "files")+verb)+checked)
	}

	if stats.BlocksFound > 0 {
		parts = append(parts, s.Dim.Render(plural(stats.BlocksFound, "embedded svg block", "embedded svg blocks")))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(plural(stats.FilesSkipped, "skipped", "skipped")))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "error", "errors")))
	}

	return strings.Join(parts, ", ") + "\n"
}
