package server

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/pkg/dom"
	"github.com/yaklabco/seevg/pkg/editor"
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/highlight"
	"github.com/yaklabco/seevg/pkg/markup"
)

// session is one connected browser: an editor buffer, the rendered tree and
// the highlight controller over it. All methods run on the session's own
// goroutine.
type session struct {
	id        uint64
	buffer    *editor.Buffer
	ctrl      *highlight.Controller
	formatter *format.Formatter
	fontSize  float64
	zoom      highlight.Zoom
	logger    *log.Logger

	send func(msg any) error
	err  error
}

type sessionConfig struct {
	id        uint64
	document  string
	formatter *format.Formatter
	fontSize  float64
	zoom      highlight.Zoom
	dark      bool
	logger    *log.Logger
}

func newSession(cfg sessionConfig, send func(msg any) error) *session {
	s := &session{
		id:        cfg.id,
		formatter: cfg.formatter,
		fontSize:  cfg.fontSize,
		zoom:      cfg.zoom,
		logger:    cfg.logger,
		send:      send,
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	if s.zoom == 0 {
		s.zoom = highlight.DefaultZoom
	}

	s.buffer = editor.New(cfg.formatter.Format(cfg.document), cfg.formatter)
	s.ctrl = highlight.New(s.buffer, highlight.Options{
		DarkBackground: cfg.dark,
		Listener:       s,
	})
	s.buffer.Listen(editor.Listeners{
		Change:     s.changed,
		Decoration: s.decorated,
		Scroll:     s.scrolled,
	})
	return s
}

// start sends the initial document and status.
func (s *session) start() error {
	s.changed(s.buffer.Document())
	s.status()
	return s.err
}

// handle applies one client message. Invalid input is answered with an error
// message; only a failed send is returned.
func (s *session) handle(msg ClientMessage) error {
	switch msg.Type {
	case MsgPaste:
		maxChars := format.MaxCharsForWidth(msg.Width, s.fontSize)
		at := markup.Span{From: msg.StartOffset, To: msg.EndOffset}
		if s.buffer.Paste(msg.Text, at, maxChars) {
			s.logger.Debug("formatted pasted svg",
				logging.FieldSession, s.id, logging.FieldWidth, maxChars)
		}
	case MsgEdit:
		if err := s.buffer.Apply(msg.TextEdit); err != nil {
			s.fail(err.Error())
			// The client's text is now out of step; resend ours.
			s.push(DocumentMessage{Type: MsgDocument, Text: s.buffer.Text()})
		}
	case MsgPointerMove:
		s.ctrl.PointerMove(s.node(msg.Path))
	case MsgPointerLeave:
		s.ctrl.PointerLeave()
	case MsgClick:
		s.ctrl.Click(s.node(msg.Path))
	case MsgClearLock:
		s.ctrl.ClearLock()
	case MsgBackground:
		s.ctrl.SetDarkBackground(msg.Dark)
	case MsgZoom:
		zoom, err := s.zoom.Apply(msg.Action)
		if err != nil {
			s.fail(err.Error())
			break
		}
		s.zoom = zoom
	default:
		s.fail("unknown message type " + string(msg.Type))
	}

	s.status()
	return s.err
}

// reload replaces the document with text from disk, formatted.
func (s *session) reload(text string) error {
	formatted := s.formatter.Format(text)
	if formatted != s.buffer.Text() {
		s.buffer.Replace(formatted)
		s.status()
	}
	return s.err
}

// node resolves a client path. A null path is the root, which the
// controller treats as outside the drawing.
func (s *session) node(path []int) *dom.Node {
	tree := s.ctrl.Tree()
	if tree == nil || tree.Empty() {
		return nil
	}
	return tree.NodeAt(path)
}

func (s *session) changed(doc *markup.Document) {
	s.push(DocumentMessage{Type: MsgDocument, Text: doc.Text()})

	tree, err := dom.Render(doc.Text())
	if err != nil {
		s.logger.Debug("render failed", logging.FieldSession, s.id, logging.FieldError, err)
		tree = nil
	}
	s.ctrl.SetTree(tree)
}

func (s *session) decorated(kind editor.DecorationKind, span markup.Span) {
	s.push(DecorationMessage{
		Type:  MsgDecoration,
		Kind:  kind,
		Class: kind.Class(),
		From:  span.From,
		To:    span.To,
	})
}

func (s *session) scrolled(offset int) {
	s.push(ScrollMessage{Type: MsgScroll, Offset: offset})
}

// Styled implements highlight.Listener.
func (s *session) Styled(n *dom.Node, paint highlight.Paint) {
	s.push(StyleMessage{Type: MsgStyle, Path: n.IndexPath(), Attrs: paint.Style()})
}

// Restored implements highlight.Listener.
func (s *session) Restored(n *dom.Node, snapshot highlight.Snapshot) {
	s.push(StyleMessage{Type: MsgStyle, Path: n.IndexPath(), Attrs: snapshot.Style()})
}

func (s *session) status() {
	s.push(StatusMessage{
		Type:    MsgStatus,
		Hovered: s.ctrl.HoveredTag(),
		Locked:  s.ctrl.LockedTag(),
		Zoom:    int(s.zoom),
		Scale:   s.zoom.Scale(),
		Dark:    s.ctrl.DarkBackground(),
	})
}

func (s *session) fail(message string) {
	s.logger.Debug("rejected message", logging.FieldSession, s.id, logging.FieldMessage, message)
	s.push(ErrorMessage{Type: MsgError, Message: message})
}

// push sends msg unless an earlier send failed.
func (s *session) push(msg any) {
	if s.err != nil {
		return
	}
	s.err = s.send(msg)
}
