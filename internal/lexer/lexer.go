package lexer

import (
	"fmt"

	"tsiface/internal/diag"
	"tsiface/internal/source"
	"tsiface/internal/token"
)

// MaxLookahead is the deepest PeekN offset the parser may request.
const MaxLookahead = 3

// maxTokenLength caps a single token; longer input is reported once and the
// rest of the file is skipped.
const maxTokenLength = 1 << 16

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	queue  []token.Token  // scanned but not yet returned, at most MaxLookahead+1
	hold   []token.Trivia // leading trivia collected for the next token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		queue:  make([]token.Token, 0, MaxLookahead+1),
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next returns the next significant token with its Leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.queue) > 0 {
		tok := lx.queue[0]
		copy(lx.queue, lx.queue[1:])
		lx.queue = lx.queue[:len(lx.queue)-1]
		return tok
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekN(0)
}

// PeekN returns the token n positions after the one Peek returns.
// The stream is never rewound, so n is bounded by MaxLookahead.
func (lx *Lexer) PeekN(n int) token.Token {
	if n < 0 || n > MaxLookahead {
		panic(fmt.Sprintf("lexer: lookahead %d out of range", n))
	}
	for len(lx.queue) <= n {
		lx.queue = append(lx.queue, lx.scan())
	}
	return lx.queue[n]
}

// EmptySpan returns a zero-width span at the scan position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) scan() token.Token {
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		// trivia before EOF is kept so a final line break is visible to ASI
		tok := token.Token{Kind: token.EOF, Span: lx.EmptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch), ch == '\\':
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case ch == '#':
		tok = lx.scanPrivateName()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)

	case ch == '`':
		tok = lx.scanTemplate()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token exceeds %d bytes", maxTokenLength))
		lx.cursor.Off = lx.cursor.Limit
		tok = token.Token{Kind: token.Invalid, Span: tok.Span}
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
