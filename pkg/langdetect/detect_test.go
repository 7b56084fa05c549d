package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/seevg/pkg/langdetect"
)

func TestDetectFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		content string
		want    langdetect.Kind
	}{
		{name: "svg", path: "icons/logo.svg", content: "<svg/>", want: langdetect.KindSVG},
		{name: "upper case extension", path: "LOGO.SVG", content: "<svg/>", want: langdetect.KindSVG},
		{name: "markdown", path: "README.md", content: "# Title\n", want: langdetect.KindMarkdown},
		{name: "markdown long extension", path: "notes.markdown", content: "# Notes\n", want: langdetect.KindMarkdown},
		{name: "go source", path: "main.go", content: "package main\n", want: langdetect.KindUnknown},
		{name: "no extension with svg", path: "logo", content: "<svg><g/></svg>", want: langdetect.KindSVG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.DetectFile(tt.path, []byte(tt.content)))
		})
	}
}

func TestIsSVG(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "bare", text: `<svg width="1"/>`, want: true},
		{name: "upper case", text: `<SVG></SVG>`, want: true},
		{name: "leading whitespace", text: "\n  <svg></svg>", want: true},
		{name: "xml prolog and comment", text: `<?xml version="1.0"?><!-- icon --><svg/>`, want: true},
		{name: "doctype", text: "<!DOCTYPE svg>\n<svg/>", want: true},
		{name: "html first", text: `<div><svg/></div>`, want: false},
		{name: "text first", text: `icon: <svg/>`, want: false},
		{name: "prefix tag", text: `<svgfoo/>`, want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.IsSVG(tt.text))
		})
	}
}

func TestDetectContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.KindSVG, langdetect.DetectContent([]byte("<svg><rect/></svg>")))
	assert.Equal(t, langdetect.KindUnknown, langdetect.DetectContent([]byte("   \n")))
}

func TestIsVendored(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVendored("node_modules/icons/logo.svg"))
	assert.False(t, langdetect.IsVendored("src/logo.svg"))
}
