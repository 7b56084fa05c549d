package highlight

import (
	"github.com/yaklabco/seevg/pkg/dom"
	"github.com/yaklabco/seevg/pkg/editor"
	"github.com/yaklabco/seevg/pkg/locate"
	"github.com/yaklabco/seevg/pkg/markup"
)

// Editor is the part of the editing surface the controller drives.
// *editor.Buffer implements it.
type Editor interface {
	Document() *markup.Document
	SetDecoration(kind editor.DecorationKind, span markup.Span)
	ScrollIntoView(offset int)
}

// Listener is told about every style change so a host can mirror it onto a
// real DOM.
type Listener interface {
	Styled(n *dom.Node, paint Paint)
	Restored(n *dom.Node, snapshot Snapshot)
}

// Options configures a Controller.
type Options struct {
	// DarkBackground selects the fill tint direction.
	DarkBackground bool

	// Listener is optional.
	Listener Listener
}

// Controller owns hover and lock state for one rendered tree. Handlers run to
// completion and must be called from a single goroutine.
type Controller struct {
	editor   Editor
	tree     *dom.Tree
	overlay  *Overlay
	state    State
	dark     bool
	listener Listener

	index   *locate.Index
	indexed *markup.Document
}

// New creates a controller with no tree. Call SetTree before sending events.
func New(ed Editor, opts Options) *Controller {
	return &Controller{
		editor:   ed,
		overlay:  NewOverlay(),
		dark:     opts.DarkBackground,
		listener: opts.Listener,
	}
}

// SetTree installs a freshly rendered tree. The hover is dropped. A lock
// carries over to the element at the same position in the new tree when
// it still has the same tag; otherwise the lock is released.
func (c *Controller) SetTree(tree *dom.Tree) {
	previous := c.state.Locked

	c.overlay.Clear()
	c.state = State{}
	c.tree = tree
	c.editor.SetDecoration(editor.DecorationHover, markup.NoSpan)

	if previous == nil || tree == nil {
		c.editor.SetDecoration(editor.DecorationLocked, markup.NoSpan)
		return
	}

	node := tree.NodeAt(previous.Node.IndexPath())
	if !c.inside(node) || node.Name() != previous.Node.Name() {
		c.editor.SetDecoration(editor.DecorationLocked, markup.NoSpan)
		return
	}

	target := c.style(node)
	target.Span = c.locate(node)
	c.state.Locked = target
	c.editor.SetDecoration(editor.DecorationLocked, target.Span)
}

// Tree returns the current tree.
func (c *Controller) Tree() *dom.Tree {
	return c.tree
}

// PointerMove handles the pointer entering target. A nil target is the
// container around the tree. Ignored while an element is locked.
func (c *Controller) PointerMove(target *dom.Node) {
	if c.state.Locked != nil {
		return
	}
	if !c.inside(target) {
		c.dropHover()
		return
	}
	if c.state.Hovered != nil && c.state.Hovered.Node == target {
		return
	}

	c.hover(target)
}

// PointerLeave handles the pointer leaving the container. A lock persists.
func (c *Controller) PointerLeave() {
	if c.state.Locked != nil {
		return
	}
	c.dropHover()
}

// Click toggles the lock on target. Clicking outside the tree releases the lock.
func (c *Controller) Click(target *dom.Node) {
	if !c.inside(target) {
		c.ClearLock()
		return
	}

	if locked := c.state.Locked; locked != nil && locked.Node == target {
		c.ClearLock()
		c.hover(target)
		return
	}

	if c.state.Locked != nil {
		c.ClearLock()
	}
	if hovered := c.state.Hovered; hovered != nil && hovered.Node != target {
		c.dropHover()
	}

	locked := c.style(target)
	locked.Span = c.locate(target)
	c.state.Locked = locked

	c.editor.SetDecoration(editor.DecorationLocked, locked.Span)
	if !locked.Span.IsNone() {
		c.editor.ScrollIntoView(locked.Span.From)
	}
}

// ClearLock releases the locked element and restores its style. When the
// locked element is also the hovered one the hover goes with it.
func (c *Controller) ClearLock() {
	locked := c.state.Locked
	c.state.Locked = nil
	c.editor.SetDecoration(editor.DecorationLocked, markup.NoSpan)
	if locked == nil {
		return
	}

	c.restore(locked)
	if hovered := c.state.Hovered; hovered != nil && hovered.Node == locked.Node {
		c.state.Hovered = nil
		c.editor.SetDecoration(editor.DecorationHover, markup.NoSpan)
	}
}

// SetDarkBackground switches the tint direction and repaints highlighted elements.
func (c *Controller) SetDarkBackground(dark bool) {
	if c.dark == dark {
		return
	}
	c.dark = dark

	for _, target := range []*Target{c.state.Hovered, c.state.Locked} {
		if target != nil {
			c.paint(target.Node)
		}
	}
}

// DarkBackground reports the current background mode.
func (c *Controller) DarkBackground() bool {
	return c.dark
}

// HoveredTag returns the lower-case tag of the hovered element, or "".
func (c *Controller) HoveredTag() string {
	return tagOf(c.state.Hovered)
}

// LockedTag returns the lower-case tag of the locked element, or "".
func (c *Controller) LockedTag() string {
	return tagOf(c.state.Locked)
}

// State returns a copy of the interaction state.
func (c *Controller) State() State {
	return c.state
}

// Overlay returns the highlight paint currently applied.
func (c *Controller) Overlay() *Overlay {
	return c.overlay
}

// inside reports whether target is a highlightable element of the current
// tree. svg elements, including the root, are not.
func (c *Controller) inside(target *dom.Node) bool {
	return target != nil && c.tree.Contains(target) && !target.IsSVG()
}

// hover moves the hover to target.
func (c *Controller) hover(target *dom.Node) {
	if hovered := c.state.Hovered; hovered != nil && !c.isLocked(hovered.Node) {
		c.restore(hovered)
	}

	next := c.style(target)
	next.Span = c.locate(target)
	c.state.Hovered = next

	c.editor.SetDecoration(editor.DecorationHover, next.Span)
	if !next.Span.IsNone() && c.state.Locked == nil {
		c.editor.ScrollIntoView(next.Span.From)
	}
}

// dropHover restores the hovered element and clears the hover decoration.
func (c *Controller) dropHover() {
	if hovered := c.state.Hovered; hovered != nil && !c.isLocked(hovered.Node) {
		c.restore(hovered)
	}
	c.state.Hovered = nil
	c.editor.SetDecoration(editor.DecorationHover, markup.NoSpan)
}

// style snapshots n and paints it.
func (c *Controller) style(n *dom.Node) *Target {
	target := &Target{Node: n, Snapshot: Capture(n), Span: markup.NoSpan}
	c.paint(n)
	return target
}

func (c *Controller) paint(n *dom.Node) {
	paint := Derive(n, c.dark)
	c.overlay.Apply(n, paint)
	if c.listener != nil {
		c.listener.Styled(n, paint)
	}
}

func (c *Controller) restore(t *Target) {
	if !c.overlay.Remove(t.Node) {
		return
	}
	if c.listener != nil {
		c.listener.Restored(t.Node, t.Snapshot)
	}
}

func (c *Controller) isLocked(n *dom.Node) bool {
	return c.state.Locked != nil && c.state.Locked.Node == n
}

// locate finds n in the current document, reusing the token index until the
// document changes.
func (c *Controller) locate(n *dom.Node) markup.Span {
	doc := c.editor.Document()
	if doc != c.indexed {
		c.index = locate.NewDocumentIndex(doc)
		c.indexed = doc
	}
	span, ok := c.index.Locate(n)
	if !ok {
		return markup.NoSpan
	}
	return span
}
