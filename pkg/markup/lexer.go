package markup

import "strings"

// Lex splits src into tag and text tokens.
//
// A tag is a '<' followed by at least one byte other than '>' and then the
// first '>'. Everything between tags is a text token; empty text is never
// emitted. Lex never fails: a '<' with no closing '>' stays inside text.
func Lex(src string) []Token {
	var tokens []Token
	textStart := 0
	pos := 0

	for pos < len(src) {
		if src[pos] != '<' {
			pos++
			continue
		}

		rel := strings.IndexByte(src[pos+1:], '>')
		if rel < 0 {
			// No '>' anywhere ahead, so no further tags.
			break
		}
		if rel == 0 {
			// "<>" is not a tag.
			pos++
			continue
		}

		end := pos + rel + 2
		if pos > textStart {
			tokens = append(tokens, Token{Kind: TokenText, Start: textStart, End: pos})
		}

		raw := src[pos:end]
		kind := Classify(raw)
		tokens = append(tokens, Token{
			Kind:  kind,
			Start: pos,
			End:   end,
			Name:  tagName(raw, kind),
		})

		pos = end
		textStart = end
	}

	if textStart < len(src) {
		tokens = append(tokens, Token{Kind: TokenText, Start: textStart, End: len(src)})
	}

	return tokens
}

// ElementStarts returns the opening and self-closing tags in document order.
func ElementStarts(tokens []Token) []Token {
	starts := make([]Token, 0, len(tokens)/2)
	for _, tok := range tokens {
		if tok.Kind.IsElementStart() {
			starts = append(starts, tok)
		}
	}
	return starts
}
