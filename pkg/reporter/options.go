package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/seevg/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color is "auto" (default), "always" or "never".
	Color string

	// ShowSummary appends aggregate statistics.
	ShowSummary bool

	// ShowUnchanged lists files that were already formatted.
	ShowUnchanged bool

	// Write reports results as committed rather than pending.
	Write bool

	// WorkingDir is the directory paths are shown relative to.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}
