package server

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/seevg/pkg/editor"
	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/highlight"
)

const testSVG = `<svg><rect x="1" fill="red"/><circle r="2"/></svg>`

type recorder struct {
	msgs []any
	err  error
}

func (r *recorder) send(msg any) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recorder) types() []MessageType {
	var types []MessageType
	for _, msg := range r.msgs {
		switch m := msg.(type) {
		case DocumentMessage:
			types = append(types, m.Type)
		case DecorationMessage:
			types = append(types, m.Type)
		case ScrollMessage:
			types = append(types, m.Type)
		case StyleMessage:
			types = append(types, m.Type)
		case StatusMessage:
			types = append(types, m.Type)
		case ErrorMessage:
			types = append(types, m.Type)
		}
	}
	return types
}

func (r *recorder) last() StatusMessage {
	for idx := len(r.msgs) - 1; idx >= 0; idx-- {
		if status, ok := r.msgs[idx].(StatusMessage); ok {
			return status
		}
	}
	return StatusMessage{}
}

func (r *recorder) reset() {
	r.msgs = nil
}

func startSession(t *testing.T, document string) (*session, *recorder) {
	t.Helper()

	rec := &recorder{}
	sess := newSession(sessionConfig{
		id:        1,
		document:  document,
		formatter: format.New(format.DefaultOptions()),
		fontSize:  format.DefaultFontSize,
	}, rec.send)
	require.NoError(t, sess.start())
	return sess, rec
}

func TestSessionStartSendsFormattedDocument(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)

	require.Len(t, rec.msgs, 2)
	doc, ok := rec.msgs[0].(DocumentMessage)
	require.True(t, ok)
	assert.Equal(t, sess.formatter.Format(testSVG), doc.Text)
	assert.Contains(t, doc.Text, "\n  <rect")

	status := rec.last()
	assert.Equal(t, highlight.DefaultZoom, status.Zoom)
	assert.Empty(t, status.Hovered)
	assert.Empty(t, status.Locked)
}

func TestSessionHover(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)
	rec.reset()

	require.NoError(t, sess.handle(ClientMessage{Type: MsgPointerMove, Path: []int{0}}))

	want := []MessageType{MsgStyle, MsgDecoration, MsgScroll, MsgStatus}
	if diff := cmp.Diff(want, rec.types()); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}

	style := rec.msgs[0].(StyleMessage)
	assert.Equal(t, []int{0}, style.Path)
	assert.Equal(t, highlight.PaintOrder, style.Attrs["paint-order"])

	decoration := rec.msgs[1].(DecorationMessage)
	assert.Equal(t, editor.DecorationHover, decoration.Kind)
	assert.Equal(t, "cm-highlight", decoration.Class)
	text := sess.buffer.Text()
	assert.Equal(t, `<rect x="1" fill="red"/>`, text[decoration.From:decoration.To])

	assert.Equal(t, "rect", rec.last().Hovered)
}

func TestSessionLockSurvivesPointerLeave(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)

	require.NoError(t, sess.handle(ClientMessage{Type: MsgPointerMove, Path: []int{1}}))
	require.NoError(t, sess.handle(ClientMessage{Type: MsgClick, Path: []int{1}}))
	assert.Equal(t, "circle", rec.last().Locked)

	require.NoError(t, sess.handle(ClientMessage{Type: MsgPointerLeave}))
	assert.Equal(t, "circle", rec.last().Locked)

	// Moving over another element while locked changes nothing.
	rec.reset()
	require.NoError(t, sess.handle(ClientMessage{Type: MsgPointerMove, Path: []int{0}}))
	assert.Equal(t, []MessageType{MsgStatus}, rec.types())

	require.NoError(t, sess.handle(ClientMessage{Type: MsgClearLock}))
	assert.Empty(t, rec.last().Locked)
}

func TestSessionClickOnRootReleasesLock(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)

	require.NoError(t, sess.handle(ClientMessage{Type: MsgClick, Path: []int{0}}))
	assert.Equal(t, "rect", rec.last().Locked)

	require.NoError(t, sess.handle(ClientMessage{Type: MsgClick}))
	assert.Empty(t, rec.last().Locked)
	assert.Equal(t, editor.DecorationLocked, lastDecoration(rec).Kind)
	assert.Equal(t, -1, lastDecoration(rec).From)
}

func lastDecoration(rec *recorder) DecorationMessage {
	for idx := len(rec.msgs) - 1; idx >= 0; idx-- {
		if decoration, ok := rec.msgs[idx].(DecorationMessage); ok {
			return decoration
		}
	}
	return DecorationMessage{}
}

func TestSessionPasteFormatsSVG(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)
	rec.reset()

	pasted := `<svg><g><path d="M0 0"/></g></svg>`
	require.NoError(t, sess.handle(ClientMessage{Type: MsgPaste, Text: pasted, Width: 800}))

	doc, ok := rec.msgs[0].(DocumentMessage)
	require.True(t, ok)
	assert.Equal(t, "<svg>\n  <g>\n    <path d=\"M0 0\"/>\n  </g>\n</svg>", doc.Text)
}

func TestSessionPasteInsertsText(t *testing.T) {
	t.Parallel()

	sess, _ := startSession(t, "<svg></svg>")

	require.NoError(t, sess.handle(ClientMessage{
		Type:     MsgPaste,
		Text:     "<!-- hi -->",
		TextEdit: fix.TextEdit{StartOffset: 5, EndOffset: 5},
	}))
	assert.Equal(t, "<svg><!-- hi -->\n</svg>", sess.buffer.Text())
}

func TestSessionPasteAtByteEndOfNonASCIIDocument(t *testing.T) {
	t.Parallel()

	sess, _ := startSession(t, "<svg><text>héllo ✓</text></svg>")
	before := sess.buffer.Text()
	end := len(before)

	require.NoError(t, sess.handle(ClientMessage{
		Type:     MsgPaste,
		Text:     "<!-- end -->",
		TextEdit: fix.TextEdit{StartOffset: end, EndOffset: end},
	}))
	assert.Equal(t, before+"<!-- end -->", sess.buffer.Text())
}

func TestSessionEdit(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, "<svg></svg>")
	rec.reset()

	require.NoError(t, sess.handle(ClientMessage{
		Type:     MsgEdit,
		TextEdit: fix.TextEdit{StartOffset: 5, EndOffset: 5, NewText: "<rect/>"},
	}))
	assert.Equal(t, "<svg><rect/>\n</svg>", sess.buffer.Text())
	assert.Equal(t, MsgDocument, rec.types()[0])

	require.NotNil(t, sess.node([]int{0}))
	assert.Equal(t, "rect", sess.node([]int{0}).Name())
}

func TestSessionRejectsBadInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  ClientMessage
	}{
		{
			name: "edit out of range",
			msg:  ClientMessage{Type: MsgEdit, TextEdit: fix.TextEdit{StartOffset: 0, EndOffset: 999}},
		},
		{name: "unknown zoom action", msg: ClientMessage{Type: MsgZoom, Action: "sideways"}},
		{name: "unknown type", msg: ClientMessage{Type: "teleport"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sess, rec := startSession(t, "<svg></svg>")
			rec.reset()

			require.NoError(t, sess.handle(tt.msg))
			assert.Contains(t, rec.types(), MsgError)
			assert.Equal(t, "<svg>\n</svg>", sess.buffer.Text())
		})
	}
}

func TestSessionZoomAndBackground(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)

	require.NoError(t, sess.handle(ClientMessage{Type: MsgZoom, Action: "in"}))
	assert.Equal(t, 125, rec.last().Zoom)
	assert.InDelta(t, 1.25, rec.last().Scale, 1e-9)

	require.NoError(t, sess.handle(ClientMessage{Type: MsgZoom, Action: "reset"}))
	assert.Equal(t, 100, rec.last().Zoom)

	require.NoError(t, sess.handle(ClientMessage{Type: MsgPointerMove, Path: []int{0}}))
	rec.reset()
	require.NoError(t, sess.handle(ClientMessage{Type: MsgBackground, Dark: true}))
	assert.True(t, rec.last().Dark)

	// The hovered element is repainted for the new background.
	assert.Equal(t, []MessageType{MsgStyle, MsgStatus}, rec.types())
}

func TestSessionReload(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)
	require.NoError(t, sess.handle(ClientMessage{Type: MsgClick, Path: []int{1}}))
	rec.reset()

	require.NoError(t, sess.reload(`<svg><rect/><circle r="9"/></svg>`))
	assert.Contains(t, sess.buffer.Text(), `<circle r="9"/>`)
	// The lock carries over to the circle at the same position.
	assert.Equal(t, "circle", rec.last().Locked)

	rec.reset()
	require.NoError(t, sess.reload(`<svg><rect/><circle r="9"/></svg>`))
	assert.Empty(t, rec.msgs)
}

func TestSessionStopsAfterSendFailure(t *testing.T) {
	t.Parallel()

	sess, rec := startSession(t, testSVG)
	rec.err = errors.New("broken pipe")

	err := sess.handle(ClientMessage{Type: MsgPointerMove, Path: []int{0}})
	require.ErrorContains(t, err, "broken pipe")
}
