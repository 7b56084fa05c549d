package dom_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/seevg/pkg/dom"
)

const sample = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" xmlns:xlink="http://www.w3.org/1999/xlink">
  <defs><linearGradient id="grad"/></defs>
  <g id="a"><rect x="1"/><circle r="2"/><rect x="3"/></g>
  <g id="b"><rect x="5"/></g>
  <use xlink:href="#grad"/>
</svg>`

func TestRender(t *testing.T) {
	t.Parallel()

	tree, err := dom.Render(sample)
	require.NoError(t, err)
	require.False(t, tree.Empty())

	root := tree.Root()
	assert.Equal(t, "svg", root.Tag)
	assert.Nil(t, root.Parent)
	assert.Equal(t, []dom.Attr{
		{Name: "xmlns", Value: "http://www.w3.org/2000/svg"},
		{Name: "viewBox", Value: "0 0 10 10"},
		{Name: "xmlns:xlink", Value: "http://www.w3.org/1999/xlink"},
	}, root.Attrs)

	tags := make([]string, 0, len(tree.Nodes()))
	for _, node := range tree.Nodes() {
		tags = append(tags, node.Tag)
	}
	want := []string{"svg", "defs", "linearGradient", "g", "rect", "circle", "rect", "g", "rect", "use"}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Errorf("document order mismatch (-want +got):\n%s", diff)
	}

	use := tree.NodeAt([]int{3})
	require.NotNil(t, use)
	href, ok := use.Attr("xlink:href")
	assert.True(t, ok)
	assert.Equal(t, "#grad", href)
}

func TestRenderWithoutSVG(t *testing.T) {
	t.Parallel()

	tree, err := dom.Render("<p>not an image</p>")
	require.NoError(t, err)
	assert.True(t, tree.Empty())
	assert.Nil(t, tree.NodeAt(nil))
}

func TestNodeNavigation(t *testing.T) {
	t.Parallel()

	tree, err := dom.Render(sample)
	require.NoError(t, err)

	second := tree.NodeAt([]int{1, 2})
	require.NotNil(t, second)
	assert.Equal(t, "rect", second.Tag)
	assert.Equal(t, []int{1, 2}, second.IndexPath())
	assert.Equal(t, 2, second.ChildIndex())
	assert.True(t, tree.Root().Contains(second))
	assert.False(t, second.Contains(tree.Root()))
	assert.True(t, tree.Contains(second))
	assert.Empty(t, tree.Root().IndexPath())
	assert.Nil(t, tree.NodeAt([]int{9}))

	other, err := dom.Render(sample)
	require.NoError(t, err)
	assert.False(t, tree.Contains(other.Root()), "nodes of another render are foreign")
}

func TestPathOf(t *testing.T) {
	t.Parallel()

	tree, err := dom.Render(sample)
	require.NoError(t, err)

	rect := tree.NodeAt([]int{1, 2})
	path := dom.PathOf(rect)

	assert.Equal(t, dom.Path{
		{Tag: "g", Index: 0, Count: 2},
		{Tag: "rect", Index: 1, Count: 2},
	}, path)
	assert.Equal(t, "g[0]/rect[1]", path.String())

	last, ok := path.Last()
	assert.True(t, ok)
	assert.Equal(t, 1, last.Index)

	assert.Empty(t, dom.PathOf(tree.Root()))
	assert.Same(t, rect, tree.Find(path))
}

func TestParsePath(t *testing.T) {
	t.Parallel()

	path, err := dom.ParsePath("/G[1]/rect/")
	require.NoError(t, err)
	assert.Equal(t, dom.Path{{Tag: "g", Index: 1}, {Tag: "rect", Index: 0}}, path)

	empty, err := dom.ParsePath("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, bad := range []string{"g[", "[1]", "g[-1]", "g[x]", "g//rect"} {
		_, err := dom.ParsePath(bad)
		require.ErrorIs(t, err, dom.ErrInvalidPath, bad)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	tree, err := dom.Render(sample)
	require.NoError(t, err)

	node := tree.Find(dom.Path{{Tag: "g", Index: 1}, {Tag: "rect", Index: 0}})
	require.NotNil(t, node)
	value, _ := node.Attr("x")
	assert.Equal(t, "5", value)

	assert.Nil(t, tree.Find(dom.Path{{Tag: "g", Index: 5}}))
	assert.Same(t, tree.Root(), tree.Find(nil))
}
