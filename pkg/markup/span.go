package markup

import "fmt"

// Span is a half-open byte range [From, To) into a markup document.
type Span struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// NoSpan is the sentinel span meaning "nothing to highlight".
//
//nolint:gochecknoglobals // Sentinel value shared with editor decorations
var NoSpan = Span{From: -1, To: -1}

// IsNone reports whether s is the NoSpan sentinel.
func (s Span) IsNone() bool {
	return s == NoSpan
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.To - s.From
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.From == s.To
}

// Contains returns true if offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.From && offset < s.To
}

// Valid reports whether the span satisfies 0 <= From <= To <= docLen.
func (s Span) Valid(docLen int) bool {
	return s.From >= 0 && s.From <= s.To && s.To <= docLen
}

func (s Span) String() string {
	if s.IsNone() {
		return "[none]"
	}
	return fmt.Sprintf("[%d,%d)", s.From, s.To)
}
