package format

import (
	"strings"
	"unicode"

	"github.com/yaklabco/seevg/pkg/markup"
)

// Line is one assembled output line before width wrapping.
type Line struct {
	// Text is the indented line content.
	Text string

	// Depth is the nesting depth the line was emitted at.
	// Directives are always emitted at depth 0.
	Depth int

	// Kind is the kind of token the line holds.
	Kind markup.TokenKind
}

// Lines runs the first two passes: it tokenizes raw and places every token
// on its own line, indented by nesting depth. Depth never goes below zero.
func (f *Formatter) Lines(raw string) []Line {
	src := strings.TrimFunc(collapseBetweenTags(raw), unicode.IsSpace)
	if src == "" {
		return nil
	}

	var lines []Line
	depth := 0

	for _, tok := range markup.Lex(src) {
		text := tok.Text(src)
		kind := markup.Classify(text)

		switch kind {
		case markup.TokenCloseTag:
			depth = max(0, depth-1)
			lines = append(lines, f.line(text, depth, kind))
		case markup.TokenSelfClosingTag:
			lines = append(lines, f.line(text, depth, kind))
		case markup.TokenDirective:
			lines = append(lines, Line{Text: text, Depth: 0, Kind: kind})
		case markup.TokenOpenTag:
			lines = append(lines, f.line(text, depth, kind))
			depth++
		case markup.TokenText:
			trimmed := strings.TrimFunc(text, unicode.IsSpace)
			if trimmed != "" {
				lines = append(lines, f.line(trimmed, depth, kind))
			}
		}
	}

	return lines
}

func (f *Formatter) line(text string, depth int, kind markup.TokenKind) Line {
	return Line{
		Text:  strings.Repeat(f.opts.Indent, depth) + text,
		Depth: depth,
		Kind:  kind,
	}
}
