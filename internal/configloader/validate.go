package configloader

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"github.com/yaklabco/seevg/pkg/config"
	"github.com/yaklabco/seevg/pkg/highlight"
)

// ValidationError is an invalid configuration value.
type ValidationError struct {
	// Field is the dotted key, e.g. "serve.zoom".
	Field string

	Value any

	Message string

	// FilePath is the file the value came from, when known.
	FilePath string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult collects validation findings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// minLineWidth keeps at least a few characters of budget after the editor offset.
const minLineWidth = 20

// Validate checks cfg.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format.MaxLineWidth < 0 {
		result.fail("format.max_line_width", cfg.Format.MaxLineWidth, "must be >= 0 (0 means default)")
	} else if cfg.Format.MaxLineWidth > 0 && cfg.Format.MaxLineWidth < minLineWidth {
		result.warn("format.max_line_width", cfg.Format.MaxLineWidth,
			"widths below %d leave almost no room after the editor offset", minLineWidth)
	}
	if cfg.Format.FontSize < 0 {
		result.fail("format.font_size", cfg.Format.FontSize, "must be >= 0")
	}

	if cfg.Serve.Zoom != 0 && (cfg.Serve.Zoom < highlight.MinZoom || cfg.Serve.Zoom > highlight.MaxZoom) {
		result.fail("serve.zoom", cfg.Serve.Zoom, "must be between %d and %d", highlight.MinZoom, highlight.MaxZoom)
	} else if cfg.Serve.Zoom%highlight.ZoomStep != 0 {
		result.warn("serve.zoom", cfg.Serve.Zoom, "not a multiple of %d; zoom buttons step from here", highlight.ZoomStep)
	}
	if cfg.Serve.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Serve.Addr); err != nil {
			result.fail("serve.addr", cfg.Serve.Addr, "invalid address: %v", err)
		}
	}

	if cfg.Output != "" {
		if _, err := config.ParseOutputFormat(string(cfg.Output)); err != nil {
			result.fail("format", cfg.Output, "%v", err)
		}
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "must be >= 0 (0 means auto)")
	}
	if cfg.Write && cfg.Check {
		result.fail("write", cfg.Write, "--write and --check cannot be combined")
	}

	switch cfg.Backups.Mode {
	case "", "sidecar", "none":
	default:
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}
