// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// File status
	FilePath  lipgloss.Style
	Changed   lipgloss.Style
	Unchanged lipgloss.Style
	Skipped   lipgloss.Style
	Error     lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Element listing
	Tag      lipgloss.Style
	Span     lipgloss.Style
	Location lipgloss.Style
	Header   lipgloss.Style

	// Summary styles
	Success lipgloss.Style
	Failure lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		FilePath:  lipgloss.NewStyle().Bold(true),
		Changed:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Unchanged: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		// Tag matches the inspector's default highlight blue.
		Tag:      lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6")).Bold(true),
		Span:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		FilePath:    plain,
		Changed:     plain,
		Unchanged:   plain,
		Skipped:     plain,
		Error:       plain,
		DiffHeader:  plain,
		DiffHunk:    plain,
		DiffAdd:     plain,
		DiffRemove:  plain,
		DiffContext: plain,
		Tag:         plain,
		Span:        plain,
		Location:    plain,
		Header:      plain,
		Success:     plain,
		Failure:     plain,
		Dim:         plain,
		Bold:        plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// DiffLine styles one line of a unified diff by its leading marker.
func (s *Styles) DiffLine(line string) string {
	switch {
	case len(line) >= 2 && line[:2] == "@@":
		return s.DiffHunk.Render(line)
	case len(line) >= 4 && (line[:4] == "diff" || line[:3] == "---" || line[:3] == "+++"):
		return s.DiffHeader.Render(line)
	case len(line) > 0 && line[0] == '+':
		return s.DiffAdd.Render(line)
	case len(line) > 0 && line[0] == '-':
		return s.DiffRemove.Render(line)
	default:
		return s.DiffContext.Render(line)
	}
}
