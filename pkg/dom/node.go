// Package dom models the live element tree a browser builds when SVG markup
// is injected into a page: element names, ordered attributes, parent and
// child links, and the computed fill and stroke used for highlighting.
package dom

import (
	"slices"
	"strings"
)

// Attr is one element attribute in source order.
type Attr struct {
	Name  string
	Value string
}

// Node is an element in a rendered tree. Nodes are compared by identity.
type Node struct {
	// Tag is the element name as the HTML parser exposes it, e.g. "linearGradient".
	Tag string

	// Attrs holds the attributes in source order.
	Attrs []Attr

	// Parent is nil for the tree root.
	Parent *Node

	// Children holds element children only.
	Children []*Node

	text string
	tree *Tree
}

// Name returns the lower-case tag name.
func (n *Node) Name() string {
	return strings.ToLower(n.Tag)
}

// IsSVG reports whether the node is an <svg> element.
func (n *Node) IsSVG() bool {
	return n.Name() == "svg"
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// FirstAttr returns the first attribute in source order.
func (n *Node) FirstAttr() (Attr, bool) {
	if len(n.Attrs) == 0 {
		return Attr{}, false
	}
	return n.Attrs[0], true
}

// Tree returns the tree the node belongs to.
func (n *Node) Tree() *Tree {
	return n.tree
}

// ChildIndex returns the node's position among its parent's element children,
// or -1 for a root.
func (n *Node) ChildIndex() int {
	if n.Parent == nil {
		return -1
	}
	return slices.Index(n.Parent.Children, n)
}

// IndexPath returns the child indices leading from the tree root to n.
// The root's path is empty.
func (n *Node) IndexPath() []int {
	var path []int
	for current := n; current.Parent != nil; current = current.Parent {
		path = append(path, current.ChildIndex())
	}
	slices.Reverse(path)
	return path
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for current := other; current != nil; current = current.Parent {
		if current == n {
			return true
		}
	}
	return false
}

// Text returns the concatenated character data directly inside the element.
func (n *Node) Text() string {
	return n.text
}
