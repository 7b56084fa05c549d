package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Tree is a rendered element tree rooted at the first <svg> element.
type Tree struct {
	root  *Node
	nodes []*Node
	sheet *styleSheet
}

// Render parses markup the way a browser does when assigning it as the inner
// HTML of a <div>. SVG content follows the HTML5 foreign-content rules.
// A document without an <svg> element yields an empty tree.
func Render(markup string) (*Tree, error) {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

	fragment, err := html.ParseFragment(strings.NewReader(markup), container)
	if err != nil {
		return nil, fmt.Errorf("render markup: %w", err)
	}

	tree := &Tree{}
	for _, top := range fragment {
		if svg := findSVG(top); svg != nil {
			tree.root = tree.build(svg, nil)
			break
		}
	}
	tree.sheet = parseStyleSheets(tree.nodes)

	return tree, nil
}

// Root returns the <svg> root element, or nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Empty reports whether the tree has no <svg> root.
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Nodes returns every element in document order. Callers must not modify the slice.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Contains reports whether n belongs to this tree.
func (t *Tree) Contains(n *Node) bool {
	return n != nil && t != nil && n.tree == t && t.root != nil
}

// NodeAt resolves a child-index path from the root. An empty path is the root.
// Returns nil when any index is out of range.
func (t *Tree) NodeAt(indices []int) *Node {
	current := t.root
	for _, idx := range indices {
		if current == nil || idx < 0 || idx >= len(current.Children) {
			return nil
		}
		current = current.Children[idx]
	}
	return current
}

// Find resolves an element path against the tree, matching tag names
// case-insensitively. Segment counts are ignored.
func (t *Tree) Find(path Path) *Node {
	current := t.root
	for _, seg := range path {
		if current == nil {
			return nil
		}
		current = nthChild(current, seg.Tag, seg.Index)
	}
	return current
}

func nthChild(parent *Node, tag string, index int) *Node {
	seen := 0
	for _, child := range parent.Children {
		if !strings.EqualFold(child.Tag, tag) {
			continue
		}
		if seen == index {
			return child
		}
		seen++
	}
	return nil
}

func (t *Tree) build(src *html.Node, parent *Node) *Node {
	node := &Node{
		Tag:    src.Data,
		Parent: parent,
		tree:   t,
	}
	for _, attr := range src.Attr {
		name := attr.Key
		if attr.Namespace != "" {
			name = attr.Namespace + ":" + attr.Key
		}
		node.Attrs = append(node.Attrs, Attr{Name: name, Value: attr.Val})
	}
	t.nodes = append(t.nodes, node)

	var text strings.Builder
	for child := src.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			node.Children = append(node.Children, t.build(child, node))
		case html.TextNode:
			text.WriteString(child.Data)
		}
	}
	node.text = text.String()

	return node
}

func findSVG(node *html.Node) *html.Node {
	if node.Type == html.ElementNode && strings.EqualFold(node.Data, "svg") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findSVG(child); found != nil {
			return found
		}
	}
	return nil
}
