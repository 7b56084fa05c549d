package markup

import "strings"

// TokenKind classifies a lexical unit of markup.
type TokenKind uint8

const (
	// TokenText is a run of characters outside any tag.
	TokenText TokenKind = iota

	// TokenOpenTag is an opening tag such as <g transform="...">.
	TokenOpenTag

	// TokenSelfClosingTag is a tag ending in "/>".
	TokenSelfClosingTag

	// TokenCloseTag is a closing tag such as </g>.
	TokenCloseTag

	// TokenDirective is a processing instruction, comment or doctype (<?...>, <!...>).
	TokenDirective
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "Text"
	case TokenOpenTag:
		return "OpenTag"
	case TokenSelfClosingTag:
		return "SelfClosingTag"
	case TokenCloseTag:
		return "CloseTag"
	case TokenDirective:
		return "Directive"
	default:
		return "Unknown"
	}
}

// IsElementStart reports whether tokens of this kind begin an element.
func (k TokenKind) IsElementStart() bool {
	return k == TokenOpenTag || k == TokenSelfClosingTag
}

// Token is a classified span of the source.
// Tokens produced by Lex are contiguous and cover the whole input.
type Token struct {
	Kind TokenKind

	// Start is the byte index where the token begins (inclusive).
	Start int

	// End is the byte index where the token ends (exclusive).
	End int

	// Name is the tag name as written in the source, empty for text and directives.
	Name string
}

// Text returns the token's source text.
func (t Token) Text(src string) string {
	if t.Start < 0 || t.End > len(src) || t.Start > t.End {
		return ""
	}
	return src[t.Start:t.End]
}

// Span returns the token's byte range.
func (t Token) Span() Span {
	return Span{From: t.Start, To: t.End}
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Classify returns the kind of a raw token by its delimiters.
// The checks run in a fixed order: closing, self-closing, directive, opening.
// Anything not starting with '<' is text.
func Classify(raw string) TokenKind {
	switch {
	case strings.HasPrefix(raw, "</"):
		return TokenCloseTag
	case strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, "/>"):
		return TokenSelfClosingTag
	case strings.HasPrefix(raw, "<?"), strings.HasPrefix(raw, "<!"):
		return TokenDirective
	case strings.HasPrefix(raw, "<"):
		return TokenOpenTag
	default:
		return TokenText
	}
}

// tagName extracts the element name from a raw tag.
func tagName(raw string, kind TokenKind) string {
	if kind == TokenText || kind == TokenDirective {
		return ""
	}
	name := strings.TrimPrefix(raw, "<")
	name = strings.TrimPrefix(name, "/")
	end := strings.IndexAny(name, " \t\r\n\f/>")
	if end >= 0 {
		name = name[:end]
	}
	return name
}
