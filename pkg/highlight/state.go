package highlight

import (
	"github.com/yaklabco/seevg/pkg/dom"
	"github.com/yaklabco/seevg/pkg/markup"
)

// Phase is the coarse interaction state.
type Phase int

const (
	// PhaseIdle means nothing is hovered or locked.
	PhaseIdle Phase = iota
	// PhaseHovering means an element is under the pointer and nothing is locked.
	PhaseHovering
	// PhaseLocked means an element is locked by a click.
	PhaseLocked
)

func (p Phase) String() string {
	switch p {
	case PhaseHovering:
		return "hovering"
	case PhaseLocked:
		return "locked"
	default:
		return "idle"
	}
}

// Target is a highlighted element with the snapshot taken before styling it.
type Target struct {
	Node     *dom.Node
	Snapshot Snapshot
	// Span is where the element was located in the document, or NoSpan.
	Span markup.Span
}

// State is the controller's interaction state. Hovered and Locked may refer
// to the same element: locking keeps the hover that led to it.
type State struct {
	Hovered *Target
	Locked  *Target
}

// Phase reports the coarse state. A lock takes precedence over a hover.
func (s State) Phase() Phase {
	switch {
	case s.Locked != nil:
		return PhaseLocked
	case s.Hovered != nil:
		return PhaseHovering
	default:
		return PhaseIdle
	}
}

func tagOf(t *Target) string {
	if t == nil {
		return ""
	}
	return t.Node.Name()
}
