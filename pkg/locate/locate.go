// Package locate maps rendered elements back to the markup that produced them.
//
// The mapping is a heuristic. Among the opening and self-closing tags that
// carry the element's name, the first one containing the element's first
// attribute as name="value" wins. Otherwise the element's index among
// same-tag siblings under its parent is used as an index into that tag list,
// and with no usable path the first tag is taken.
package locate

import (
	"strings"

	"github.com/yaklabco/seevg/pkg/dom"
	"github.com/yaklabco/seevg/pkg/markup"
)

// Index holds the tag offsets of one markup text. Build a new Index for every
// document revision; an Index is safe for concurrent lookups.
type Index struct {
	text   string
	byName map[string][]markup.Token
}

// NewIndex lexes text once and groups element-start tags by lower-case name.
func NewIndex(text string) *Index {
	return newIndex(text, markup.Lex(text))
}

// NewDocumentIndex builds an Index from a document's existing tokens.
func NewDocumentIndex(doc *markup.Document) *Index {
	return newIndex(doc.Text(), doc.Tokens())
}

func newIndex(text string, tokens []markup.Token) *Index {
	byName := make(map[string][]markup.Token)
	for _, tok := range markup.ElementStarts(tokens) {
		name := strings.ToLower(tok.Name)
		byName[name] = append(byName[name], tok)
	}
	return &Index{text: text, byName: byName}
}

// Locate returns the span of node's start tag in text.
func Locate(node *dom.Node, text string) (markup.Span, bool) {
	return NewIndex(text).Locate(node)
}

// Occurrences returns the start tags named tag, in document order.
func (ix *Index) Occurrences(tag string) []markup.Token {
	return ix.byName[strings.ToLower(tag)]
}

// Locate returns the span of node's start tag. It reports false when the
// text has no tag of that name or the chosen index is out of range.
func (ix *Index) Locate(node *dom.Node) (markup.Span, bool) {
	if node == nil {
		return markup.NoSpan, false
	}

	occurrences := ix.Occurrences(node.Name())
	if len(occurrences) == 0 {
		return markup.NoSpan, false
	}

	index := ix.matchFirstAttr(node, occurrences)
	if index == -1 {
		if last, ok := dom.PathOf(node).Last(); ok {
			index = last.Index
		}
	}
	if index == -1 {
		index = 0
	}

	if index >= len(occurrences) {
		return markup.NoSpan, false
	}
	return occurrences[index].Span(), true
}

func (ix *Index) matchFirstAttr(node *dom.Node, occurrences []markup.Token) int {
	attr, ok := node.FirstAttr()
	if !ok {
		return -1
	}

	needle := attr.Name + `="` + attr.Value + `"`
	for idx, tok := range occurrences {
		if strings.Contains(tok.Text(ix.text), needle) {
			return idx
		}
	}
	return -1
}

// Entry is the location of one element of a tree.
type Entry struct {
	Node  *dom.Node
	Path  dom.Path
	Span  markup.Span
	Found bool
}

// LocateAll locates every element below the tree root, in document order.
func (ix *Index) LocateAll(tree *dom.Tree) []Entry {
	if tree == nil || tree.Empty() {
		return nil
	}

	var entries []Entry
	for _, node := range tree.Nodes() {
		span, found := ix.Locate(node)
		entries = append(entries, Entry{
			Node:  node,
			Path:  dom.PathOf(node),
			Span:  span,
			Found: found,
		})
	}
	return entries
}
