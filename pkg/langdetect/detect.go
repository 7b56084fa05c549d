// Package langdetect decides whether a file or snippet holds SVG markup,
// Markdown, or something seevg does not handle. File names go through
// go-enry's linguist data; bare content is sniffed by its first element.
package langdetect

import (
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/seevg/pkg/markup"
)

// Kind is the kind of document seevg can format.
type Kind string

const (
	// KindUnknown is anything seevg leaves alone.
	KindUnknown Kind = ""

	// KindSVG is standalone SVG markup.
	KindSVG Kind = "svg"

	// KindMarkdown is Markdown that may embed SVG blocks.
	KindMarkdown Kind = "markdown"
)

const (
	enrySVG      = "SVG"
	enryMarkdown = "Markdown"
	enryXML      = "XML"
)

// DetectFile classifies a file by name, falling back to its content when
// the extension is unknown or shared by several languages.
func DetectFile(path string, content []byte) Kind {
	langs := enry.GetLanguagesByExtension(path, content, nil)
	switch {
	case slices.Contains(langs, enrySVG):
		return KindSVG
	case slices.Contains(langs, enryMarkdown):
		return KindMarkdown
	case len(langs) == 0 && content != nil:
		return DetectContent(content)
	default:
		return KindUnknown
	}
}

// DetectContent classifies a snippet with no file name, such as stdin.
func DetectContent(content []byte) Kind {
	if IsSVG(string(content)) {
		return KindSVG
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return KindUnknown
	}

	lang, _ := enry.GetLanguageByClassifier(content, []string{enryMarkdown, enryXML})
	if lang == enryMarkdown {
		return KindMarkdown
	}
	return KindUnknown
}

// IsSVG reports whether the first element of text is an svg element. Only
// whitespace, an XML declaration, comments and a doctype may precede it.
func IsSVG(text string) bool {
	for _, tok := range markup.Lex(text) {
		switch tok.Kind {
		case markup.TokenDirective:
			continue
		case markup.TokenText:
			if strings.TrimSpace(tok.Text(text)) != "" {
				return false
			}
		case markup.TokenOpenTag, markup.TokenSelfClosingTag:
			return strings.EqualFold(tok.Name, "svg")
		default:
			return false
		}
	}
	return false
}

// IsVendored reports whether path sits in a dependency or generated
// directory such as node_modules or vendor.
func IsVendored(path string) bool {
	return enry.IsVendor(path)
}
