package highlight

import "github.com/yaklabco/seevg/pkg/dom"

// Overlay holds highlight paint per element, keyed by node identity.
type Overlay struct {
	entries map[*dom.Node]Paint
}

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[*dom.Node]Paint)}
}

// Apply paints n, replacing any previous paint.
func (o *Overlay) Apply(n *dom.Node, paint Paint) {
	o.entries[n] = paint
}

// Remove drops the paint for n. It reports whether n was painted.
func (o *Overlay) Remove(n *dom.Node) bool {
	if _, ok := o.entries[n]; !ok {
		return false
	}
	delete(o.entries, n)
	return true
}

// Paint returns the paint applied to n.
func (o *Overlay) Paint(n *dom.Node) (Paint, bool) {
	paint, ok := o.entries[n]
	return paint, ok
}

// Len returns the number of painted elements.
func (o *Overlay) Len() int {
	return len(o.entries)
}

// Clear removes all paint.
func (o *Overlay) Clear() {
	clear(o.entries)
}

// Effective returns the value of a presentation attribute as it renders:
// the overlay's write when n is painted, otherwise the element's own attribute.
func (o *Overlay) Effective(n *dom.Node, name string) string {
	if paint, ok := o.entries[n]; ok {
		if value, written := paint.Style()[name]; written {
			return value
		}
	}
	value, _ := n.Attr(name)
	return value
}
