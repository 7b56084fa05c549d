package format

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// attrPattern matches one complete name="value" attribute.
//
//nolint:gochecknoglobals // Compiled once, read-only
var attrPattern = regexp.MustCompile(`[\w:-]+="[^"]*"`)

// EffectiveWidth returns the width budget for a line of the given length.
// Lines at least LineWidthOffset characters long lose the offset from the budget.
func (f *Formatter) EffectiveWidth(lineLen int) int {
	if lineLen >= f.opts.LineWidthOffset {
		return f.opts.MaxLineWidth - f.opts.LineWidthOffset
	}
	return f.opts.MaxLineWidth
}

// wrap splits one assembled line at attribute boundaries until every piece
// fits the effective width or no boundary is left.
func (f *Formatter) wrap(line string) []string {
	effective := f.EffectiveWidth(width(line))
	if width(line) <= effective {
		return []string{line}
	}

	continuation := leadingSpace(line) + f.opts.Indent
	current := line
	first := true

	var pieces []string
	for width(current) > effective {
		budget := effective
		if !first {
			budget = effective - width(continuation) + width(leadingSpace(current))
		}

		cut := BreakPoint(current, budget)
		if cut < 0 {
			break
		}

		pieces = append(pieces, strings.TrimRightFunc(current[:cut], unicode.IsSpace))
		current = continuation + strings.TrimLeftFunc(current[cut:], unicode.IsSpace)
		first = false
	}

	if strings.TrimFunc(current, unicode.IsSpace) != "" {
		pieces = append(pieces, current)
	}
	if len(pieces) == 0 {
		return []string{line}
	}
	return pieces
}

// BreakPoint returns the byte offset at which line should be cut, or -1.
//
// Candidates are offsets directly after a complete attribute that are
// followed by a space. The last candidate within budget characters wins;
// when none is within budget the first candidate beyond it is used.
func BreakPoint(line string, budget int) int {
	cut := -1
	for _, match := range attrPattern.FindAllStringIndex(line, -1) {
		end := match[1]
		if end >= len(line) || line[end] != ' ' {
			continue
		}

		switch {
		case width(line[:end]) <= budget:
			cut = end
		case cut == -1:
			return end
		default:
			return cut
		}
	}
	return cut
}

// width measures a string in characters.
func width(s string) int {
	return utf8.RuneCountInString(s)
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}
