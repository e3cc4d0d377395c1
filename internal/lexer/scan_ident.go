package lexer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"tsiface/internal/diag"
	"tsiface/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword scans an IdentifierName and classifies it with LookupKeyword.
// Token.Text is the exact source slice. Names containing \u escapes or
// non-NFC text carry the decoded, normalized name in Token.Value; an escaped
// keyword stays an identifier.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	var decoded strings.Builder
	escaped := false
	first := true

	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '\\' {
			r, ok := lx.scanUnicodeEscape()
			if !ok || !(first && isIdentStartRune(r) || !first && isIdentContinueRune(r)) {
				if ok {
					lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "escaped character is not allowed in an identifier")
				}
				if first {
					sp := lx.cursor.SpanFrom(start)
					return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
				}
			}
			escaped = true
			decoded.WriteRune(r)
			first = false
			continue
		}

		r, sz := lx.peekRune()
		if sz == 0 {
			break
		}
		if first && !isIdentStartRune(r) || !first && !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
		decoded.WriteRune(r)
		first = false
	}

	sp := lx.cursor.SpanFrom(start)
	if first {
		// not an identifier start after all
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}
	text := lx.text(sp)

	if escaped {
		return token.Token{Kind: token.Ident, Span: sp, Text: text, Value: norm.NFC.String(decoded.String())}
	}
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	tok := token.Token{Kind: token.Ident, Span: sp, Text: text}
	if !isASCII(text) && !norm.NFC.IsNormalString(text) {
		tok.Value = norm.NFC.String(text)
	}
	return tok
}

// scanPrivateName scans '#' followed by an identifier.
func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	r, sz := lx.peekRune()
	if sz == 0 || !(isIdentStartRune(r) || lx.cursor.Peek() == '\\') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadPrivateName, sp, "expected a name after '#'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	name := lx.scanIdentOrKeyword()
	sp := lx.cursor.SpanFrom(start)
	tok := token.Token{Kind: token.PrivateName, Span: sp, Text: lx.text(sp)}
	if name.Value != "" {
		tok.Value = "#" + name.Value
	}
	return tok
}

// scanUnicodeEscape consumes \uXXXX or \u{X...}. On malformed input it
// reports LexBadEscape, consumes what it recognised and returns ok=false.
func (lx *Lexer) scanUnicodeEscape() (rune, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if !lx.cursor.Eat('u') {
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected 'u' after '\\'")
		return utf8.RuneError, false
	}
	var r rune
	if lx.cursor.Eat('{') {
		digits := 0
		for isHex(lx.cursor.Peek()) {
			r = r*16 + hexVal(lx.cursor.Bump())
			digits++
			if r > utf8.MaxRune {
				break
			}
		}
		if digits == 0 || r > utf8.MaxRune || !lx.cursor.Eat('}') {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "malformed \\u{...} escape")
			return utf8.RuneError, false
		}
		return r, true
	}
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "expected four hex digits after \\u")
			return utf8.RuneError, false
		}
		r = r*16 + hexVal(lx.cursor.Bump())
	}
	return r, true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8RuneSelf {
			return false
		}
	}
	return true
}
