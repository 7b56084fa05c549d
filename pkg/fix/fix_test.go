package fix_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/seevg/pkg/fix"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "<svg/>",
			want:    "<svg/>",
		},
		{
			name:    "replacement",
			content: `<rect x="1"/>`,
			edits:   []fix.TextEdit{{StartOffset: 9, EndOffset: 10, NewText: "42"}},
			want:    `<rect x="42"/>`,
		},
		{
			name:    "insertion",
			content: "<svg></svg>",
			edits:   []fix.TextEdit{{StartOffset: 5, EndOffset: 5, NewText: "<g/>"}},
			want:    "<svg><g/></svg>",
		},
		{
			name:    "unsorted edits",
			content: "abcdef",
			edits: []fix.TextEdit{
				{StartOffset: 4, EndOffset: 6, NewText: "ZZ"},
				{StartOffset: 0, EndOffset: 2, NewText: "XX"},
			},
			want: "XXcdZZ",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 3, NewText: ""},
				{StartOffset: 3, EndOffset: 6, NewText: "!"},
			},
			want: "!",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := fix.Apply(testCase.content, testCase.edits)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestApplyRejectsBadEdits(t *testing.T) {
	t.Parallel()

	_, err := fix.Apply("abc", []fix.TextEdit{{StartOffset: -1, EndOffset: 1}})
	var validation *fix.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "negative")

	_, err = fix.Apply("abc", []fix.TextEdit{{StartOffset: 2, EndOffset: 9}})
	require.ErrorAs(t, err, &validation)

	_, err = fix.Apply("abc", []fix.TextEdit{{StartOffset: 2, EndOffset: 1}})
	require.ErrorAs(t, err, &validation)

	_, err = fix.Apply("abcdef", []fix.TextEdit{
		{StartOffset: 0, EndOffset: 3},
		{StartOffset: 2, EndOffset: 4},
	})
	var conflict *fix.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.Second.StartOffset)
}

func TestBuilder(t *testing.T) {
	t.Parallel()

	builder := fix.NewBuilder().
		Insert(0, "<svg>").
		Replace(0, 3, "g").
		Delete(3, 4)

	require.Len(t, builder.Edits, 3)
	assert.Equal(t, fix.TextEdit{StartOffset: 3, EndOffset: 4}, builder.Edits[2])
}

func TestMapOffset(t *testing.T) {
	t.Parallel()

	edit := fix.TextEdit{StartOffset: 5, EndOffset: 8, NewText: "abcdef"}

	assert.Equal(t, 3, edit.MapOffset(3, false), "before the edit")
	assert.Equal(t, 13, edit.MapOffset(10, false), "after the edit")
	assert.Equal(t, 5, edit.MapOffset(6, false), "inside, associated before")
	assert.Equal(t, 11, edit.MapOffset(6, true), "inside, associated after")
	assert.Equal(t, 11, edit.MapOffset(8, false), "replaced end sticks to inserted end")
	assert.Equal(t, 5, edit.MapOffset(5, true), "replaced start sticks to inserted start")

	insert := fix.TextEdit{StartOffset: 4, EndOffset: 4, NewText: "xy"}
	assert.Equal(t, 4, insert.MapOffset(4, false))
	assert.Equal(t, 6, insert.MapOffset(4, true))
	assert.Equal(t, 2, insert.Delta())
}

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	original := "<svg><rect/></svg>\n"
	modified := "<svg>\n  <rect/>\n</svg>\n"

	diff, err := fix.GenerateDiff("/icons/a.svg", original, modified)
	require.NoError(t, err)
	require.True(t, diff.HasChanges())

	assert.Equal(t, 3, diff.Additions)
	assert.Equal(t, 1, diff.Deletions)
	assert.Equal(t, "diff --git a/icons/a.svg b/icons/a.svg", diff.GitHeader())
	assert.True(t, strings.HasPrefix(diff.String(), "--- a/icons/a.svg\n+++ b/icons/a.svg\n"))
	assert.Contains(t, diff.String(), "-<svg><rect/></svg>\n")
	assert.Contains(t, diff.String(), "+  <rect/>\n")
	assert.True(t, strings.HasPrefix(diff.FullString(), "diff --git"))
}

func TestGenerateDiffNoChanges(t *testing.T) {
	t.Parallel()

	diff, err := fix.GenerateDiff("a.svg", "same", "same")
	require.NoError(t, err)
	assert.Nil(t, diff)
	assert.False(t, diff.HasChanges())
	assert.Empty(t, diff.String())
	assert.Empty(t, diff.FullString())
}
