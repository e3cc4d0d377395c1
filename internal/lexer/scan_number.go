package lexer

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
)

// scanNumber accepts 0, 123, 1_000, 0b1, 0o7, 0xFF, 1.5, .5, 1., 1e-3 and a
// trailing bigint 'n'. A name glued to the literal (3in) is reported and
// absorbed into the same token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	digits := func(ok func(byte) bool) int {
		n := 0
		for ok(lx.cursor.Peek()) || (n > 0 && lx.cursor.Peek() == '_') {
			lx.cursor.Bump()
			n++
		}
		return n
	}
	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		var radix func(byte) bool
		switch b1 {
		case 'b', 'B':
			radix = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			radix = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			radix = isHex
		}
		if radix != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if digits(radix) == 0 {
				return bad("expected digits after radix prefix")
			}
			lx.cursor.Eat('n')
			return lx.finishNumber(start)
		}
	}

	intDigits := digits(isDec)
	fraction := false
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' {
		fraction = true
		lx.cursor.Bump()
		if digits(isDec) == 0 && intDigits == 0 {
			return bad("expected digit after '.'")
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if digits(isDec) == 0 {
			return bad("expected digit after exponent")
		}
		fraction = true
	}
	if !fraction {
		lx.cursor.Eat('n')
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) finishNumber(start Mark) token.Token {
	if r, sz := lx.peekRune(); sz > 0 && (isIdentStartRune(r) || isDec(lx.cursor.Peek())) {
		for {
			r, sz := lx.peekRune()
			if sz == 0 || !isIdentContinueRune(r) {
				break
			}
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "identifier starts immediately after numeric literal")
		return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: lx.text(sp)}
}
