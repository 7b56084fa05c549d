package fix

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError describes an edit whose range does not fit the text.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.StartOffset, e.First.EndOffset,
		e.Second.StartOffset, e.Second.EndOffset)
}

// Prepare validates edits against a text of length textLen and returns them
// sorted by position. Overlapping edits are rejected with a *ConflictError.
func Prepare(edits []TextEdit, textLen int) ([]TextEdit, error) {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return nil, &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return nil, &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > textLen:
			return nil, &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, textLen),
			}
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b TextEdit) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return a.EndOffset - b.EndOffset
	})

	for idx := 1; idx < len(sorted); idx++ {
		if sorted[idx].StartOffset < sorted[idx-1].EndOffset {
			return nil, &ConflictError{First: sorted[idx-1], Second: sorted[idx]}
		}
	}

	return sorted, nil
}

// Apply validates edits and applies them to text.
func Apply(text string, edits []TextEdit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted, err := Prepare(edits, len(text))
	if err != nil {
		return "", err
	}

	delta := 0
	for _, edit := range sorted {
		delta += edit.Delta()
	}

	var out strings.Builder
	out.Grow(len(text) + delta)

	cursor := 0
	for _, edit := range sorted {
		out.WriteString(text[cursor:edit.StartOffset])
		out.WriteString(edit.NewText)
		cursor = edit.EndOffset
	}
	out.WriteString(text[cursor:])

	return out.String(), nil
}
