package lexer

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
)

// scanString scans a '...' or "..." literal. Escapes are skipped without
// validation; a backslash before a line break continues the string.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.cursor.Bump()
			lx.bumpRune()
			continue
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
}

// scanTemplate scans a whole template literal. Substitutions are skipped by
// brace depth, nested strings and templates included; names inside them are
// not reported as uses.
func (lx *Lexer) scanTemplate() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '`'
	if lx.skipTemplateBody() {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.TemplateLit, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedTemplate, sp, "unterminated template literal")
	return token.Token{Kind: token.TemplateLit, Span: sp, Text: lx.text(sp)}
}

// skipTemplateBody consumes up to and including the closing '`'.
func (lx *Lexer) skipTemplateBody() bool {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Bump(); b {
		case '`':
			return true
		case '\\':
			lx.bumpRune()
		case '$':
			if lx.cursor.Eat('{') && !lx.skipSubstitution() {
				return false
			}
		}
	}
	return false
}

func (lx *Lexer) skipSubstitution() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Bump(); b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return true
			}
		case '"', '\'':
			for !lx.cursor.EOF() {
				c := lx.cursor.Bump()
				if c == '\\' {
					lx.bumpRune()
					continue
				}
				if c == b || c == '\n' {
					break
				}
			}
		case '`':
			if !lx.skipTemplateBody() {
				return false
			}
		}
	}
	return false
}
