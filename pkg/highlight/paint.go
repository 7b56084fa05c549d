// Package highlight drives hover and lock highlighting over a rendered SVG
// tree and mirrors the selection into the editor as decorations.
//
// Styling is never written into the tree. Highlight paint lives in an
// Overlay keyed by node identity; removing the overlay entry restores the
// element. Hosts that style a real DOM receive Styled and Restored
// notifications carrying the attribute writes to perform.
package highlight

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/yaklabco/seevg/pkg/dom"
)

const (
	// FallbackColor is the highlight stroke for elements with neither fill nor stroke.
	FallbackColor = "#3b82f6"

	// StrokeWidth is the highlight stroke width.
	StrokeWidth = "4"

	// PaintOrder draws the stroke under the fill so half of it shows outside the shape.
	PaintOrder = "stroke fill"

	// MixAmount is how far the fill is blended toward the background.
	MixAmount = 0.4

	// none is the snapshot sentinel for an absent attribute.
	none = "none"
)

// Style is a set of presentation attribute writes. An empty value removes
// the attribute.
type Style map[string]string

// Paint is the highlight applied to one element.
type Paint struct {
	Stroke      string
	StrokeWidth string
	// Fill is the tinted fill, or empty to keep the element's own fill.
	Fill       string
	PaintOrder string
}

// Style returns the attribute writes that apply p.
func (p Paint) Style() Style {
	style := Style{
		"stroke":       p.Stroke,
		"stroke-width": p.StrokeWidth,
		"paint-order":  p.PaintOrder,
	}
	if p.Fill != "" {
		style["fill"] = p.Fill
	}
	return style
}

// Derive computes the highlight paint for n against a dark or light background.
func Derive(n *dom.Node, darkBackground bool) Paint {
	paint := Paint{
		Stroke:      StrokeColor(n),
		StrokeWidth: StrokeWidth,
		PaintOrder:  PaintOrder,
	}
	if tint, ok := Tint(n.ComputedFill(), darkBackground); ok {
		paint.Fill = tint
	}
	return paint
}

// StrokeColor picks the highlight stroke: the computed fill, else the
// computed stroke, else FallbackColor.
func StrokeColor(n *dom.Node) string {
	if fill := n.ComputedFill(); isPaint(fill) {
		return fill
	}
	if stroke := n.ComputedStroke(); isPaint(stroke) {
		return stroke
	}
	return FallbackColor
}

// Tint blends fill MixAmount of the way toward black on a dark background or
// toward white on a light one. It reports false when fill is not a color.
func Tint(fill string, darkBackground bool) (string, bool) {
	if !isPaint(fill) {
		return "", false
	}
	rgb, ok := dom.ParseColor(fill)
	if !ok {
		return "", false
	}

	toward := colorful.Color{R: 1, G: 1, B: 1}
	if darkBackground {
		toward = colorful.Color{}
	}
	return dom.FromColorful(rgb.Colorful().BlendRgb(toward, MixAmount)).String(), true
}

func isPaint(value string) bool {
	return value != "" && !strings.Contains(value, none)
}
