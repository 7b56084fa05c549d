package highlight

import "github.com/yaklabco/seevg/pkg/dom"

// Snapshot holds an element's presentation attributes as they were before
// highlighting. Absent stroke and fill are recorded as "none".
type Snapshot struct {
	Stroke      string
	StrokeWidth string
	Fill        string
}

// Capture records the current stroke, stroke-width and fill attributes of n.
func Capture(n *dom.Node) Snapshot {
	return Snapshot{
		Stroke:      attrOr(n, "stroke", none),
		StrokeWidth: attrOr(n, "stroke-width", ""),
		Fill:        attrOr(n, "fill", none),
	}
}

// Style returns the attribute writes that put the element back the way it
// was captured. The "none" sentinel is written back as an empty value.
func (s Snapshot) Style() Style {
	return Style{
		"stroke":       unsentinel(s.Stroke),
		"stroke-width": s.StrokeWidth,
		"fill":         unsentinel(s.Fill),
		"paint-order":  "",
	}
}

func attrOr(n *dom.Node, name, fallback string) string {
	if value, ok := n.Attr(name); ok && value != "" {
		return value
	}
	return fallback
}

func unsentinel(value string) string {
	if value == none {
		return ""
	}
	return value
}
