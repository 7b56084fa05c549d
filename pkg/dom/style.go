package dom

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Initial values of the paint properties.
const (
	InitialFill   = "rgb(0, 0, 0)"
	InitialStroke = "none"
	InitialColor  = "rgb(0, 0, 0)"
)

// ComputedFill returns the element's computed fill.
func (n *Node) ComputedFill() string {
	return n.ComputedStyle("fill")
}

// ComputedStroke returns the element's computed stroke.
func (n *Node) ComputedStroke() string {
	return n.ComputedStyle("stroke")
}

// ComputedStyle resolves an inherited paint property (fill, stroke or color).
//
// Declarations are taken from inline style, <style> sheets in the tree and
// presentation attributes, in that order of precedence, with !important
// declarations first. Invalid values are skipped. Colors are normalized to
// "rgb(r, g, b)"; "none" and url() references are returned as written.
func (n *Node) ComputedStyle(property string) string {
	for current := n; current != nil; current = current.Parent {
		for _, value := range current.declared(property) {
			if resolved, ok := current.resolve(property, value); ok {
				return resolved
			}
		}
	}

	switch property {
	case "fill":
		return InitialFill
	case "stroke":
		return InitialStroke
	default:
		return InitialColor
	}
}

func (n *Node) resolve(property, value string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	switch {
	case lower == "" || lower == "inherit":
		return "", false
	case lower == "none":
		return "none", true
	case lower == "transparent":
		return "rgba(0, 0, 0, 0)", true
	case lower == "currentcolor":
		if property == "color" {
			if n.Parent == nil {
				return InitialColor, true
			}
			return n.Parent.ComputedStyle("color"), true
		}
		return n.ComputedStyle("color"), true
	case strings.HasPrefix(lower, "url("):
		return strings.TrimSpace(value), true
	}

	rgb, ok := ParseColor(lower)
	if !ok {
		return "", false
	}
	return rgb.String(), true
}

// declared lists the node's own declarations for property, highest precedence first.
func (n *Node) declared(property string) []string {
	var inline []*css.Declaration
	if style, ok := n.Attr("style"); ok {
		if decls, err := parser.ParseDeclarations(style); err == nil {
			inline = decls
		}
	}

	var sheet []*css.Declaration
	if n.tree != nil && n.tree.sheet != nil {
		sheet = n.tree.sheet.matching(n)
	}

	var values []string
	for _, important := range []bool{true, false} {
		values = appendDecls(values, inline, property, important)
		values = appendDecls(values, sheet, property, important)
	}
	if attr, ok := n.Attr(property); ok {
		values = append(values, attr)
	}
	return values
}

func appendDecls(values []string, decls []*css.Declaration, property string, important bool) []string {
	for i := len(decls) - 1; i >= 0; i-- {
		decl := decls[i]
		if decl.Important == important && strings.EqualFold(decl.Property, property) {
			values = append(values, decl.Value)
		}
	}
	return values
}

// styleSheet holds the rules of every <style> element with a simple selector.
type styleSheet struct {
	rules []sheetRule
}

type sheetRule struct {
	selector     simpleSelector
	order        int
	declarations []*css.Declaration
}

// simpleSelector is a compound selector of an optional type, ids and classes.
type simpleSelector struct {
	tag     string
	ids     []string
	classes []string
}

func (s simpleSelector) specificity() [3]int {
	tags := 0
	if s.tag != "" {
		tags = 1
	}
	return [3]int{len(s.ids), len(s.classes), tags}
}

func (s simpleSelector) matches(n *Node) bool {
	if s.tag != "" && s.tag != "*" && !strings.EqualFold(s.tag, n.Tag) {
		return false
	}
	id, _ := n.Attr("id")
	for _, want := range s.ids {
		if id != want {
			return false
		}
	}
	class, _ := n.Attr("class")
	have := strings.Fields(class)
	for _, want := range s.classes {
		if !slices.Contains(have, want) {
			return false
		}
	}
	return true
}

func parseStyleSheets(nodes []*Node) *styleSheet {
	sheet := &styleSheet{}
	for _, node := range nodes {
		if node.Name() != "style" {
			continue
		}
		parsed, err := parser.Parse(node.Text())
		if err != nil {
			continue
		}
		for _, rule := range parsed.Rules {
			if rule.Kind != css.QualifiedRule {
				continue
			}
			for _, raw := range rule.Selectors {
				selector, ok := parseSelector(raw)
				if !ok {
					continue
				}
				sheet.rules = append(sheet.rules, sheetRule{
					selector:     selector,
					order:        len(sheet.rules),
					declarations: rule.Declarations,
				})
			}
		}
	}
	if len(sheet.rules) == 0 {
		return nil
	}
	return sheet
}

// matching returns declarations of matching rules in cascade order, lowest precedence first.
func (s *styleSheet) matching(n *Node) []*css.Declaration {
	var matched []sheetRule
	for _, rule := range s.rules {
		if rule.selector.matches(n) {
			matched = append(matched, rule)
		}
	}

	slices.SortStableFunc(matched, func(a, b sheetRule) int {
		specA, specB := a.selector.specificity(), b.selector.specificity()
		if c := slices.Compare(specA[:], specB[:]); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	var decls []*css.Declaration
	for _, rule := range matched {
		decls = append(decls, rule.declarations...)
	}
	return decls
}

// parseSelector accepts compound selectors such as "rect", ".a.b" or "path#id".
// Combinators, attribute selectors and pseudo-classes are not supported.
func parseSelector(raw string) (simpleSelector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " >+~[:,") {
		return simpleSelector{}, false
	}

	var sel simpleSelector
	rest := raw
	if end := strings.IndexAny(rest, ".#"); end != 0 {
		if end < 0 {
			end = len(rest)
		}
		sel.tag = rest[:end]
		rest = rest[end:]
	}

	for rest != "" {
		marker := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, ".#")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		if name == "" {
			return simpleSelector{}, false
		}
		if marker == '#' {
			sel.ids = append(sel.ids, name)
		} else {
			sel.classes = append(sel.classes, name)
		}
		rest = rest[end:]
	}

	return sel, true
}
