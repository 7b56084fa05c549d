package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/seevg/pkg/dom"
	"github.com/yaklabco/seevg/pkg/highlight"
)

func TestTint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fill   string
		dark   bool
		want   string
		wantOK bool
	}{
		{name: "dark", fill: "rgb(100, 200, 50)", dark: true, want: "rgb(60, 120, 30)", wantOK: true},
		{name: "light", fill: "rgb(100, 200, 50)", want: "rgb(162, 222, 132)", wantOK: true},
		{name: "white on dark", fill: "rgb(255, 255, 255)", dark: true, want: "rgb(153, 153, 153)", wantOK: true},
		{name: "transparent", fill: "rgba(0, 0, 0, 0)", want: "rgb(102, 102, 102)", wantOK: true},
		{name: "none", fill: "none", dark: true},
		{name: "gradient", fill: "url(#grad)", dark: true},
		{name: "empty", fill: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := highlight.Tint(tt.fill, tt.dark)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStrokeColor(t *testing.T) {
	t.Parallel()

	tree, err := dom.Render(`<svg>` +
		`<rect fill="green"/>` +
		`<line fill="none" stroke="#00f"/>` +
		`<path fill="none"/>` +
		`</svg>`)
	require.NoError(t, err)

	assert.Equal(t, "rgb(0, 128, 0)", highlight.StrokeColor(tree.NodeAt([]int{0})))
	assert.Equal(t, "rgb(0, 0, 255)", highlight.StrokeColor(tree.NodeAt([]int{1})))
	assert.Equal(t, highlight.FallbackColor, highlight.StrokeColor(tree.NodeAt([]int{2})))
}

func TestCaptureAndStyle(t *testing.T) {
	t.Parallel()

	tree, err := dom.Render(`<svg><rect stroke="red" stroke-width="2"/><circle fill="none"/></svg>`)
	require.NoError(t, err)

	rect := highlight.Capture(tree.NodeAt([]int{0}))
	assert.Equal(t, highlight.Snapshot{Stroke: "red", StrokeWidth: "2", Fill: "none"}, rect)
	assert.Equal(t, highlight.Style{
		"stroke":       "red",
		"stroke-width": "2",
		"fill":         "",
		"paint-order":  "",
	}, rect.Style())

	circle := highlight.Capture(tree.NodeAt([]int{1}))
	assert.Equal(t, highlight.Snapshot{Stroke: "none", Fill: "none"}, circle)
}

func TestPaintStyle(t *testing.T) {
	t.Parallel()

	withFill := highlight.Paint{Stroke: "red", StrokeWidth: "4", Fill: "rgb(1, 2, 3)", PaintOrder: "stroke fill"}
	assert.Equal(t, "rgb(1, 2, 3)", withFill.Style()["fill"])

	_, hasFill := highlight.Paint{Stroke: "red"}.Style()["fill"]
	assert.False(t, hasFill)
}

func TestZoom(t *testing.T) {
	t.Parallel()

	zoom := highlight.ClampZoom(0)
	assert.Equal(t, highlight.Zoom(100), zoom)
	assert.Equal(t, highlight.Zoom(125), zoom.In())
	assert.Equal(t, highlight.Zoom(75), zoom.Out())
	assert.Equal(t, highlight.Zoom(300), highlight.Zoom(300).In())
	assert.Equal(t, highlight.Zoom(25), highlight.Zoom(25).Out())
	assert.Equal(t, highlight.Zoom(25), highlight.ClampZoom(5))
	assert.Equal(t, highlight.Zoom(300), highlight.ClampZoom(1000))
	assert.InDelta(t, 1.5, highlight.Zoom(150).Scale(), 1e-9)
	assert.Equal(t, "150%", highlight.Zoom(150).String())

	next, err := highlight.Zoom(275).Apply("in")
	require.NoError(t, err)
	assert.Equal(t, highlight.Zoom(300), next)

	next, err = next.Apply("reset")
	require.NoError(t, err)
	assert.Equal(t, highlight.Zoom(100), next)

	_, err = next.Apply("sideways")
	require.Error(t, err)
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", highlight.State{}.Phase().String())
	assert.Equal(t, "hovering", highlight.PhaseHovering.String())
	assert.Equal(t, "locked", highlight.PhaseLocked.String())
}
