// Package mdsvg finds SVG markup embedded in Markdown and reformats it in
// place. Two block shapes are recognized: fenced code blocks tagged svg
// (or untagged and holding an svg element), and raw HTML blocks that start
// with an svg element. Everything outside those blocks is left byte-for-byte
// unchanged.
package mdsvg

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/seevg/pkg/fix"
	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/langdetect"
	"github.com/yaklabco/seevg/pkg/markup"
)

// BlockKind is the Markdown construct holding the SVG.
type BlockKind string

const (
	// BlockFence is a fenced code block.
	BlockFence BlockKind = "fence"

	// BlockHTML is a raw HTML block.
	BlockHTML BlockKind = "html"
)

// Block is one embedded SVG.
type Block struct {
	Kind BlockKind

	// Span covers the SVG text inside the Markdown source. For fences it
	// excludes the fence lines.
	Span markup.Span

	// Line is the 1-based line where the SVG text starts.
	Line int

	// Source is the SVG text as written, without its trailing newline.
	Source string
}

// Result is the outcome of formatting one Markdown document.
type Result struct {
	Text   string
	Blocks []Block

	// Edits are the replacements applied to the source, one per changed block.
	Edits []fix.TextEdit
}

// Changed reports whether any block was rewritten.
func (r Result) Changed() bool {
	return len(r.Edits) > 0
}

//nolint:gochecknoglobals // Parser is stateless between Parse calls
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Extract returns the SVG blocks of source in document order.
func Extract(source string) []Block {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))
	lines := markup.NewDocument(source)

	var blocks []Block
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var block Block
		var ok bool
		switch n := node.(type) {
		case *ast.FencedCodeBlock:
			block, ok = fenceBlock(n, src)
		case *ast.HTMLBlock:
			block, ok = htmlBlock(n, src)
		default:
			return ast.WalkContinue, nil
		}
		if ok {
			block.Line, _ = lines.LineAt(block.Span.From)
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// Format reformats every SVG block of source with f.
func Format(source string, f *format.Formatter) (Result, error) {
	result := Result{Text: source, Blocks: Extract(source)}

	for _, block := range result.Blocks {
		formatted := f.Format(block.Source)
		if formatted == block.Source {
			continue
		}
		if block.Kind == BlockHTML && !keepsHTMLBlock(formatted) {
			continue
		}
		result.Edits = append(result.Edits, fix.TextEdit{
			StartOffset: block.Span.From,
			EndOffset:   block.Span.To,
			NewText:     formatted,
		})
	}

	out, err := fix.Apply(source, result.Edits)
	if err != nil {
		return Result{}, fmt.Errorf("apply svg block edits: %w", err)
	}
	result.Text = out
	return result, nil
}

// keepsHTMLBlock reports whether formatted still parses as one HTML block.
// A blank line ends the block early, and the first line must hold the whole
// open tag or the block degrades to a paragraph of inline HTML.
func keepsHTMLBlock(formatted string) bool {
	if strings.Contains(formatted, "\n\n") {
		return false
	}
	first, _, _ := strings.Cut(formatted, "\n")
	return strings.HasSuffix(strings.TrimRight(first, " \t\r"), ">")
}

func fenceBlock(n *ast.FencedCodeBlock, src []byte) (Block, bool) {
	span, ok := contiguous(n.Lines(), src)
	if !ok {
		return Block{}, false
	}
	body := trimNewline(string(src[span.From:span.To]))

	lang := strings.ToLower(string(n.Language(src)))
	switch {
	case lang == "svg":
	case lang == "" || lang == "xml" || lang == "html":
		if !langdetect.IsSVG(body) {
			return Block{}, false
		}
	default:
		return Block{}, false
	}

	return Block{
		Kind:   BlockFence,
		Span:   markup.Span{From: span.From, To: span.From + len(body)},
		Source: body,
	}, true
}

func htmlBlock(n *ast.HTMLBlock, src []byte) (Block, bool) {
	span, ok := contiguous(n.Lines(), src)
	if !ok {
		return Block{}, false
	}
	if n.HasClosure() {
		closure := n.ClosureLine
		if closure.Start != span.To {
			return Block{}, false
		}
		span.To = closure.Stop
	}

	body := trimNewline(string(src[span.From:span.To]))
	if !langdetect.IsSVG(body) || !strings.HasSuffix(strings.ToLower(strings.TrimSpace(body)), "</svg>") {
		return Block{}, false
	}

	return Block{
		Kind:   BlockHTML,
		Span:   markup.Span{From: span.From, To: span.From + len(body)},
		Source: body,
	}, true
}

// contiguous returns the span covered by segs when every segment starts a
// line and they are back to back. Blocks nested in lists or quotes fail
// this, and are skipped so their container prefixes survive.
func contiguous(segs *text.Segments, src []byte) (markup.Span, bool) {
	if segs == nil || segs.Len() == 0 {
		return markup.NoSpan, false
	}

	first := segs.At(0)
	span := markup.Span{From: first.Start, To: first.Stop}
	for idx := 1; idx < segs.Len(); idx++ {
		seg := segs.At(idx)
		if seg.Start != span.To || seg.Padding != 0 || !lineStart(seg.Start, src) {
			return markup.NoSpan, false
		}
		span.To = seg.Stop
	}
	if first.Padding != 0 || !lineStart(first.Start, src) {
		return markup.NoSpan, false
	}
	return span, true
}

func lineStart(offset int, src []byte) bool {
	return offset == 0 || src[offset-1] == '\n'
}

func trimNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
