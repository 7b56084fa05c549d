// Package editor models the text editing surface next to the preview: the
// current markup document, hover and locked decorations, scroll requests and
// a paste hook that formats pasted SVG.
package editor

import (
	"strings"

	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/markup"
)

// DecorationKind distinguishes the highlight layers.
type DecorationKind string

const (
	// DecorationHover marks the element under the pointer.
	DecorationHover DecorationKind = "hover"

	// DecorationLocked marks the element locked by a click.
	DecorationLocked DecorationKind = "locked"
)

// Class returns the CSS class the browser uses for the decoration.
func (k DecorationKind) Class() string {
	if k == DecorationLocked {
		return "cm-highlight-locked"
	}
	return "cm-highlight"
}

// Listeners receive buffer notifications. Nil fields are skipped.
type Listeners struct {
	Change     func(doc *markup.Document)
	Decoration func(kind DecorationKind, span markup.Span)
	Scroll     func(offset int)
}

// Buffer holds one markup document and the state the editor paints over it.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	doc         *markup.Document
	formatter   *format.Formatter
	decorations map[DecorationKind]markup.Span
	scroll      int
	listeners   []Listeners
}

// New creates a buffer holding initial. Pasted SVG is formatted with formatter;
// a nil formatter uses the default options.
func New(initial string, formatter *format.Formatter) *Buffer {
	if formatter == nil {
		formatter = format.New(format.DefaultOptions())
	}
	return &Buffer{
		doc:       markup.NewDocument(initial),
		formatter: formatter,
		decorations: map[DecorationKind]markup.Span{
			DecorationHover:  markup.NoSpan,
			DecorationLocked: markup.NoSpan,
		},
		scroll: -1,
	}
}

// Listen registers listeners. They run synchronously in registration order.
func (b *Buffer) Listen(l Listeners) {
	b.listeners = append(b.listeners, l)
}

// Document returns the current snapshot.
func (b *Buffer) Document() *markup.Document {
	return b.doc
}

// Text returns the current markup.
func (b *Buffer) Text() string {
	return b.doc.Text()
}

// Replace swaps in a whole new document. Decorations are cleared.
func (b *Buffer) Replace(text string) {
	b.commit(text, nil)
}

// Apply performs a partial replacement, such as a keystroke.
// Decorations are mapped through the edits; ones that collapse are cleared.
func (b *Buffer) Apply(edits ...fix.TextEdit) error {
	if len(edits) == 0 {
		return nil
	}

	sorted, err := fix.Prepare(edits, b.doc.Len())
	if err != nil {
		return err
	}

	text, err := fix.Apply(b.doc.Text(), sorted)
	if err != nil {
		return err
	}
	b.commit(text, sorted)
	return nil
}

// IsSVGPaste reports whether pasted text contains an SVG root marker.
func IsSVGPaste(text string) bool {
	return strings.Contains(text, "<svg") || strings.Contains(text, "<SVG")
}

// Paste handles a paste over at. SVG text replaces the whole document with
// its formatted form and Paste returns true. Any other text is inserted over
// at unchanged and Paste returns false. A maxChars above zero overrides the
// formatter's line width.
func (b *Buffer) Paste(text string, at markup.Span, maxChars int) bool {
	if !IsSVGPaste(text) {
		if !at.Valid(b.doc.Len()) {
			at = markup.Span{From: b.doc.Len(), To: b.doc.Len()}
		}
		// The span is valid for the current document, so Apply cannot fail.
		_ = b.Apply(fix.TextEdit{StartOffset: at.From, EndOffset: at.To, NewText: text})
		return false
	}

	formatter := b.formatter
	if maxChars > 0 {
		opts := formatter.Options()
		opts.MaxLineWidth = maxChars
		formatter = format.New(opts)
	}
	b.Replace(formatter.Format(text))
	return true
}

// FormatDocument reformats the current document in place.
func (b *Buffer) FormatDocument() {
	formatted := b.formatter.Format(b.doc.Text())
	if formatted != b.doc.Text() {
		b.Replace(formatted)
	}
}

// SetDecoration paints span with the given decoration, replacing any previous
// one of that kind. NoSpan or a span outside the document clears it.
func (b *Buffer) SetDecoration(kind DecorationKind, span markup.Span) {
	if !span.Valid(b.doc.Len()) {
		span = markup.NoSpan
	}
	if b.decorations[kind] == span {
		return
	}
	b.decorations[kind] = span
	for _, l := range b.listeners {
		if l.Decoration != nil {
			l.Decoration(kind, span)
		}
	}
}

// Decoration returns the span painted with kind, or NoSpan.
func (b *Buffer) Decoration(kind DecorationKind) markup.Span {
	span, ok := b.decorations[kind]
	if !ok {
		return markup.NoSpan
	}
	return span
}

// ScrollIntoView asks the editor to center offset.
func (b *Buffer) ScrollIntoView(offset int) {
	if offset < 0 || offset > b.doc.Len() {
		return
	}
	b.scroll = offset
	for _, l := range b.listeners {
		if l.Scroll != nil {
			l.Scroll(offset)
		}
	}
}

// ScrollTarget returns the offset of the last scroll request.
func (b *Buffer) ScrollTarget() (int, bool) {
	return b.scroll, b.scroll >= 0
}

// commit installs text. Decorations are mapped through edits, or cleared
// when edits is nil.
func (b *Buffer) commit(text string, edits []fix.TextEdit) {
	b.doc = markup.NewDocument(text)

	for _, kind := range []DecorationKind{DecorationHover, DecorationLocked} {
		span := b.decorations[kind]
		mapped := markup.NoSpan
		if edits != nil {
			mapped = mapSpan(span, edits)
		}
		if mapped != span {
			b.SetDecoration(kind, mapped)
		}
	}
	if b.scroll > b.doc.Len() {
		b.scroll = b.doc.Len()
	}

	for _, l := range b.listeners {
		if l.Change != nil {
			l.Change(b.doc)
		}
	}
}

// mapSpan moves span through sorted edits. Spans that end up empty are dropped.
func mapSpan(span markup.Span, edits []fix.TextEdit) markup.Span {
	if span.IsNone() {
		return span
	}

	from := mapOffset(span.From, edits, true)
	to := mapOffset(span.To, edits, false)
	if from >= to {
		return markup.NoSpan
	}
	return markup.Span{From: from, To: to}
}

func mapOffset(offset int, edits []fix.TextEdit, assocAfter bool) int {
	shift := 0
	for _, edit := range edits {
		if offset > edit.EndOffset {
			shift += edit.Delta()
			continue
		}
		return edit.MapOffset(offset, assocAfter) + shift
	}
	return offset + shift
}
