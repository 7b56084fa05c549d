package dom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned by ParsePath for malformed input.
var ErrInvalidPath = errors.New("invalid element path")

// Segment is one step of an element path: a tag name and the element's
// position among same-tag siblings under its parent.
type Segment struct {
	Tag   string `json:"tag"`
	Index int    `json:"index"`
	Count int    `json:"count"`
}

// Path runs from just below the <svg> root down to an element.
type Path []Segment

// PathOf walks from n up to the nearest <svg> ancestor, recording one segment
// for every node that has a parent. Sibling matching compares tag names exactly.
func PathOf(n *Node) Path {
	var path Path
	for current := n; current != nil && !current.IsSVG(); current = current.Parent {
		parent := current.Parent
		if parent == nil {
			continue
		}

		seg := Segment{Tag: current.Name(), Index: -1}
		for _, sibling := range parent.Children {
			if sibling.Tag != current.Tag {
				continue
			}
			if sibling == current {
				seg.Index = seg.Count
			}
			seg.Count++
		}
		path = append(path, seg)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Last returns the final segment, which describes the element itself.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// String renders the path as "g[0]/rect[2]".
func (p Path) String() string {
	parts := make([]string, 0, len(p))
	for _, seg := range p {
		parts = append(parts, fmt.Sprintf("%s[%d]", seg.Tag, seg.Index))
	}
	return strings.Join(parts, "/")
}

// ParsePath parses the String form. A segment without an index means index 0.
func ParsePath(s string) (Path, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return Path{}, nil
	}

	var path Path
	for _, part := range strings.Split(s, "/") {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}
	return path, nil
}

func parseSegment(part string) (Segment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if part == "" {
			return Segment{}, fmt.Errorf("%w: empty segment", ErrInvalidPath)
		}
		return Segment{Tag: strings.ToLower(part)}, nil
	}

	if open == 0 || !strings.HasSuffix(part, "]") {
		return Segment{}, fmt.Errorf("%w: %q", ErrInvalidPath, part)
	}

	index, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || index < 0 {
		return Segment{}, fmt.Errorf("%w: bad index in %q", ErrInvalidPath, part)
	}

	return Segment{Tag: strings.ToLower(part[:open]), Index: index}, nil
}
