// Package fix applies byte-range text edits to markup and renders unified diffs.
package fix

import "fmt"

// TextEdit replaces bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int `json:"from"`

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int `json:"to"`

	// NewText is the replacement text.
	NewText string `json:"insert"`
}

// Delta returns the change in document length caused by the edit.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.EndOffset - e.StartOffset)
}

// MapOffset maps an offset in the original text to the edited text.
// The boundaries of a replaced range stick to the boundaries of the inserted
// text. Offsets strictly inside it, or at a pure insertion point, move before
// the inserted text, or after it when assocAfter is set.
func (e TextEdit) MapOffset(offset int, assocAfter bool) int {
	replaces := e.StartOffset < e.EndOffset
	switch {
	case offset < e.StartOffset:
		return offset
	case offset > e.EndOffset:
		return offset + e.Delta()
	case replaces && offset == e.StartOffset:
		return offset
	case replaces && offset == e.EndOffset:
		return e.StartOffset + len(e.NewText)
	case assocAfter:
		return e.StartOffset + len(e.NewText)
	default:
		return e.StartOffset
	}
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]=%q", e.StartOffset, e.EndOffset, e.NewText)
}

// Builder accumulates edits against one text.
type Builder struct {
	Edits []TextEdit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{Edits: make([]TextEdit, 0)}
}

// Replace adds an edit that replaces bytes [start, end) with text.
func (b *Builder) Replace(start, end int, text string) *Builder {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: text})
	return b
}

// Insert adds an edit that inserts text at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete adds an edit that removes bytes [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.Replace(start, end, "")
}
