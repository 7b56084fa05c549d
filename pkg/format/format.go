// Package format pretty-prints SVG/XML markup.
//
// Formatting runs in three passes. Whitespace between adjacent tags is
// removed and the text is split into tokens; tokens are placed one per line
// with two-space indentation by nesting depth; lines that exceed the width
// budget are wrapped between attributes, with continuation lines indented
// one level deeper than the tag they belong to.
//
// The formatter is pure and never fails. Unbalanced markup only yields odd
// indentation, and lines without an attribute boundary are left long.
package format

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Indent is one level of indentation.
	Indent = "  "

	// LineWidthOffset is subtracted from the width budget of long lines to
	// account for editor chrome such as gutters and line numbers.
	LineWidthOffset = 16

	// DefaultMaxLineWidth is the width budget used when none is given.
	DefaultMaxLineWidth = 90

	// DefaultFontSize is the editor font size in pixels used to turn a pixel
	// width into a character budget.
	DefaultFontSize = 18.0

	// CharWidthRatio approximates a monospace glyph width as a fraction of
	// the font size.
	CharWidthRatio = 0.6
)

// Options configures a Formatter.
type Options struct {
	// MaxLineWidth is the character budget per line.
	MaxLineWidth int

	// LineWidthOffset is subtracted from MaxLineWidth for lines at least this long.
	LineWidthOffset int

	// Indent is the string used for one nesting level.
	Indent string
}

// DefaultOptions returns the standard formatting options.
func DefaultOptions() Options {
	return Options{
		MaxLineWidth:    DefaultMaxLineWidth,
		LineWidthOffset: LineWidthOffset,
		Indent:          Indent,
	}
}

// Formatter formats markup with fixed options. It is safe for concurrent use.
type Formatter struct {
	opts Options
}

// New creates a Formatter. Zero-valued options fall back to defaults.
func New(opts Options) *Formatter {
	defaults := DefaultOptions()
	if opts.MaxLineWidth <= 0 {
		opts.MaxLineWidth = defaults.MaxLineWidth
	}
	if opts.LineWidthOffset <= 0 {
		opts.LineWidthOffset = defaults.LineWidthOffset
	}
	if opts.Indent == "" {
		opts.Indent = defaults.Indent
	}
	return &Formatter{opts: opts}
}

// Options returns the formatter's effective options.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format returns raw formatted with the default options and the given width.
// A non-positive width selects DefaultMaxLineWidth.
func Format(raw string, maxLineWidth int) string {
	return New(Options{
		MaxLineWidth:    maxLineWidth,
		LineWidthOffset: LineWidthOffset,
		Indent:          Indent,
	}).Format(raw)
}

// Format indents and wraps raw.
func (f *Formatter) Format(raw string) string {
	var assembled strings.Builder
	for _, line := range f.Lines(raw) {
		assembled.WriteString(line.Text)
		assembled.WriteByte('\n')
	}

	var out []string
	for _, line := range strings.Split(assembled.String(), "\n") {
		out = append(out, f.wrap(line)...)
	}

	return strings.TrimFunc(strings.Join(out, "\n"), unicode.IsSpace)
}

// MaxCharsForWidth converts an editor width in pixels to a character budget.
// A non-positive fontSize selects DefaultFontSize.
func MaxCharsForWidth(pixels int, fontSize float64) int {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if pixels <= 0 {
		return 0
	}
	return int(math.Floor(float64(pixels) / (fontSize * CharWidthRatio)))
}

// collapseBetweenTags removes whitespace runs that sit directly between '>' and '<'.
func collapseBetweenTags(raw string) string {
	var out strings.Builder
	out.Grow(len(raw))

	for idx := 0; idx < len(raw); idx++ {
		out.WriteByte(raw[idx])
		if raw[idx] != '>' {
			continue
		}

		next := idx + 1
		for next < len(raw) {
			r, size := utf8.DecodeRuneInString(raw[next:])
			if !unicode.IsSpace(r) {
				break
			}
			next += size
		}
		if next > idx+1 && next < len(raw) && raw[next] == '<' {
			idx = next - 1
		}
	}

	return out.String()
}
