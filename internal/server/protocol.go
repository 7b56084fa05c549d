package server

import (
	"github.com/yaklabco/seevg/pkg/editor"
	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/highlight"
)

// MessageType names a websocket message.
type MessageType string

// Messages sent by the browser.
const (
	MsgPaste        MessageType = "paste"
	MsgEdit         MessageType = "edit"
	MsgPointerMove  MessageType = "pointermove"
	MsgPointerLeave MessageType = "pointerleave"
	MsgClick        MessageType = "click"
	MsgClearLock    MessageType = "clearlock"
	MsgBackground   MessageType = "background"
	MsgZoom         MessageType = "zoom"
)

// Messages sent by the server.
const (
	MsgDocument   MessageType = "document"
	MsgDecoration MessageType = "decoration"
	MsgScroll     MessageType = "scroll"
	MsgStyle      MessageType = "style"
	MsgStatus     MessageType = "status"
	MsgError      MessageType = "error"
)

// ClientMessage is any message from the browser. Fields not used by a type
// are left zero. Paste and edit ranges use the embedded from/to pair.
type ClientMessage struct {
	Type MessageType `json:"type"`

	fix.TextEdit

	// Text is the clipboard content of a paste.
	Text string `json:"text,omitempty"`

	// Width is the editor width in pixels at paste time.
	Width int `json:"width,omitempty"`

	// Path is the child-index path of the pointer target below the svg root.
	// Null means the pointer is on the root or outside the drawing.
	Path []int `json:"path,omitempty"`

	Dark   bool   `json:"dark,omitempty"`
	Action string `json:"action,omitempty"`
}

// DocumentMessage carries the full editor text.
type DocumentMessage struct {
	Type MessageType `json:"type"`
	Text string      `json:"text"`
}

// DecorationMessage paints or clears one highlight layer. From and To are
// -1 when the layer is cleared.
type DecorationMessage struct {
	Type  MessageType           `json:"type"`
	Kind  editor.DecorationKind `json:"kind"`
	Class string                `json:"class"`
	From  int                   `json:"from"`
	To    int                   `json:"to"`
}

// ScrollMessage asks the editor to center a byte offset.
type ScrollMessage struct {
	Type   MessageType `json:"type"`
	Offset int         `json:"offset"`
}

// StyleMessage writes presentation attributes onto the preview element at
// Path. An empty value removes the attribute.
type StyleMessage struct {
	Type  MessageType     `json:"type"`
	Path  []int           `json:"path"`
	Attrs highlight.Style `json:"attrs"`
}

// StatusMessage reports the inspector state after every event.
type StatusMessage struct {
	Type    MessageType `json:"type"`
	Hovered string      `json:"hovered"`
	Locked  string      `json:"locked"`
	Zoom    int         `json:"zoom"`
	Scale   float64     `json:"scale"`
	Dark    bool        `json:"dark"`
}

// ErrorMessage reports a rejected message. The session stays open.
type ErrorMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
