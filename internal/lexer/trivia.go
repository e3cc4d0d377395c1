package lexer

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
)

// collectLeadingTrivia gathers the trivia run before the next significant token.
//   - spaces, tabs, \v, \f and Unicode spaces coalesce into one TriviaSpace
//   - consecutive line breaks, LS and PS included, coalesce into one TriviaNewline
//   - //... up to the line break is a TriviaLineComment; so is a leading #! line
//   - /* ... */ is a TriviaBlockComment; JavaScript block comments do not nest
func (lx *Lexer) collectLeadingTrivia() {
	if lx.cursor.Off == 0 && lx.cursor.Peek() == '#' && lx.cursor.PeekAt(1) == '!' {
		lx.scanLineCommentIntoHold()
	}
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch {
		case lx.eatSpaces():
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		case lx.eatNewlines():
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '/':
			lx.scanLineCommentIntoHold()
			continue
		case lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) == '*':
			lx.scanBlockCommentIntoHold()
			continue
		}
		break
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) eatSpaces() bool {
	eaten := false
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\v' || b == '\f':
			lx.cursor.Bump()
		case b >= utf8RuneSelf:
			r, _ := lx.peekRune()
			if !isSpaceRune(r) {
				return eaten
			}
			lx.bumpRune()
		default:
			return eaten
		}
		eaten = true
	}
	return eaten
}

func (lx *Lexer) eatNewlines() bool {
	eaten := false
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case b == '\n' || b == '\r':
			lx.cursor.Bump()
		case b >= utf8RuneSelf:
			r, _ := lx.peekRune()
			if !isLineTerminatorRune(r) {
				return eaten
			}
			lx.bumpRune()
		default:
			return eaten
		}
		eaten = true
	}
	return eaten
}

func (lx *Lexer) scanLineCommentIntoHold() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
			break
		}
		if lx.cursor.Peek() >= utf8RuneSelf {
			if r, _ := lx.peekRune(); isLineTerminatorRune(r) {
				break
			}
		}
		lx.bumpRune()
	}
	lx.pushTrivia(token.TriviaLineComment, start)
}

func (lx *Lexer) scanBlockCommentIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	closed := false
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			closed = true
			break
		}
		lx.cursor.Bump()
	}
	if !closed {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(token.TriviaBlockComment, start)
}
