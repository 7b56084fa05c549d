package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Diff is a unified diff between two versions of a file.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Additions is the number of added lines.
	Additions int

	// Deletions is the number of removed lines.
	Deletions int

	text string
}

// GenerateDiff compares original and modified. Returns nil when they are equal.
func GenerateDiff(path, original, modified string) (*Diff, error) {
	if original == modified {
		return nil, nil
	}

	name := strings.TrimPrefix(path, "/")
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	diff := &Diff{Path: path, text: text}
	inHunk := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			inHunk = true
		case !inHunk:
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
	}
	return diff, nil
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	name := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", name, name)
}

// String returns the unified diff without the git header.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.text
}

// FullString returns the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.text
}

// HasChanges reports whether the diff contains any hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && d.text != ""
}
