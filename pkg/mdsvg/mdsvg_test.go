package mdsvg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/seevg/pkg/format"
	"github.com/yaklabco/seevg/pkg/mdsvg"
)

func formatter() *format.Formatter {
	return format.New(format.DefaultOptions())
}

func TestFormatFencedBlock(t *testing.T) {
	t.Parallel()

	source := "# Icon\n\n```svg\n<svg><rect x=\"1\"/></svg>\n```\n"
	want := "# Icon\n\n```svg\n<svg>\n  <rect x=\"1\"/>\n</svg>\n```\n"

	result, err := mdsvg.Format(source, formatter())
	require.NoError(t, err)
	assert.Equal(t, want, result.Text)
	assert.True(t, result.Changed())
	require.Len(t, result.Blocks, 1)
	assert.Equal(t, mdsvg.BlockFence, result.Blocks[0].Kind)
	assert.Equal(t, 4, result.Blocks[0].Line)
	assert.Equal(t, `<svg><rect x="1"/></svg>`, result.Blocks[0].Source)
}

func TestFormatHTMLBlock(t *testing.T) {
	t.Parallel()

	source := "Intro\n\n<svg width=\"10\">\n<circle r=\"1\"/>\n</svg>\n\nAfter\n"
	want := "Intro\n\n<svg width=\"10\">\n  <circle r=\"1\"/>\n</svg>\n\nAfter\n"

	result, err := mdsvg.Format(source, formatter())
	require.NoError(t, err)
	assert.Equal(t, want, result.Text)
	require.Len(t, result.Blocks, 1)
	assert.Equal(t, mdsvg.BlockHTML, result.Blocks[0].Kind)
	assert.Equal(t, 3, result.Blocks[0].Line)
}

func TestFormatUntaggedFence(t *testing.T) {
	t.Parallel()

	source := "```\n<svg><g/></svg>\n```\n"

	result, err := mdsvg.Format(source, formatter())
	require.NoError(t, err)
	assert.Equal(t, "```\n<svg>\n  <g/>\n</svg>\n```\n", result.Text)
}

func TestFormatLeavesOtherBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{name: "other language", source: "```go\n<svg><g/></svg>\n```\n"},
		{name: "untagged non svg", source: "```\n<div><g/></div>\n```\n"},
		{name: "html div", source: "<div>\n<svg><g/></svg>\n</div>\n"},
		{name: "list item", source: "- item\n\n  ```svg\n  <svg><g/></svg>\n  ```\n"},
		{name: "block quote", source: "> ```svg\n> <svg><g/></svg>\n> ```\n"},
		{name: "plain text", source: "Just <svg> in a sentence.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := mdsvg.Format(tt.source, formatter())
			require.NoError(t, err)
			assert.Equal(t, tt.source, result.Text)
			assert.False(t, result.Changed())
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	t.Parallel()

	source := "```svg\n<svg><g><path d=\"M0 0\"/></g></svg>\n```\n\ntext\n\n```SVG\n<svg/>\n```\n"

	first, err := mdsvg.Format(source, formatter())
	require.NoError(t, err)
	second, err := mdsvg.Format(first.Text, formatter())
	require.NoError(t, err)

	assert.Equal(t, first.Text, second.Text)
	assert.False(t, second.Changed())
	assert.Len(t, second.Blocks, 2)
}

func TestExtractOrder(t *testing.T) {
	t.Parallel()

	source := "<svg id=\"a\">\n</svg>\n\n```svg\n<svg id=\"b\"/>\n```\n"

	blocks := mdsvg.Extract(source)
	require.Len(t, blocks, 2)
	assert.Equal(t, mdsvg.BlockHTML, blocks[0].Kind)
	assert.Equal(t, mdsvg.BlockFence, blocks[1].Kind)
	assert.Equal(t, `<svg id="b"/>`, source[blocks[1].Span.From:blocks[1].Span.To])
}

func TestFormatHTMLBlockKeepsOpenTagWhole(t *testing.T) {
	t.Parallel()

	source := "# Logo\n\n" +
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"800\" height=\"379\" viewBox=\"0 0 800 379\">\n" +
		"<rect x=\"1\"/>\n</svg>\n\nAfter.\n"

	opts := format.DefaultOptions()
	opts.MaxLineWidth = 60
	narrow := format.New(opts)

	result, err := mdsvg.Format(source, narrow)
	require.NoError(t, err)
	assert.Equal(t, source, result.Text)
	assert.False(t, result.Changed())

	blocks := mdsvg.Extract(result.Text)
	require.Len(t, blocks, 1)
	assert.Equal(t, mdsvg.BlockHTML, blocks[0].Kind)
}
