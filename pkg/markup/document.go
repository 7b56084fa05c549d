// Package markup holds the immutable markup document model shared by the
// formatter, the element locator and the editing surface: a lexer that
// records byte offsets, spans, and a line index for offset conversion.
package markup

import "sort"

// Line describes one line of a document.
type Line struct {
	// Start is the byte offset of the first byte of the line.
	Start int

	// End is the byte offset just past the line content, before any newline.
	End int
}

// Document is an immutable snapshot of markup text.
// A new Document is created for every replacement; existing values never change.
type Document struct {
	text   string
	lines  []Line
	tokens []Token
}

// NewDocument lexes text and indexes its lines.
func NewDocument(text string) *Document {
	return &Document{
		text:   text,
		lines:  buildLines(text),
		tokens: Lex(text),
	}
}

// Text returns the full markup string.
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Tokens returns the document's tokens. Callers must not modify the slice.
func (d *Document) Tokens() []Token {
	return d.tokens
}

// Slice returns the text covered by span, or "" when span is not valid.
func (d *Document) Slice(span Span) string {
	if !span.Valid(len(d.text)) {
		return ""
	}
	return d.text[span.From:span.To]
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Returns (0, 0) if the offset is out of range.
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(d.text) || len(d.lines) == 0 {
		return 0, 0
	}

	idx := sort.Search(len(d.lines), func(i int) bool {
		return i+1 == len(d.lines) || d.lines[i+1].Start > offset
	})

	return idx + 1, offset - d.lines[idx].Start + 1
}

// LineContent returns the text of a 1-based line without its newline.
func (d *Document) LineContent(line int) string {
	if line < 1 || line > len(d.lines) {
		return ""
	}
	info := d.lines[line-1]
	return d.text[info.Start:info.End]
}

func buildLines(text string) []Line {
	lines := make([]Line, 0, 16)
	start := 0
	for idx := range len(text) {
		if text[idx] != '\n' {
			continue
		}
		end := idx
		if end > start && text[end-1] == '\r' {
			end--
		}
		lines = append(lines, Line{Start: start, End: end})
		start = idx + 1
	}
	return append(lines, Line{Start: start, End: len(text)})
}
