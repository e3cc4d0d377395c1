package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/source"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

func (p *Parser) peek() token.Token { return p.lx.Peek() }

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// afterLast is the zero-width span right after the last consumed token.
func (p *Parser) afterLast() source.Span {
	return p.lastSpan.AtEnd()
}

// getDiagnosticSpan returns the best span for a diagnostic about the next
// token. At end of input that is the position after the last token.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.afterLast()
	}
	return peek.Span
}

// expect consumes a token of kind k or reports code at the next token.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// err reports an error at the next token.
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, fixes ...diag.Fix) bool {
	if p.opts.Reporter == nil {
		return false
	}
	enough := p.opts.Enough()
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if enough {
		return false
	}
	b := diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
	for _, fx := range fixes {
		b.WithFixSuggestion(fx)
	}
	b.Emit()
	return true
}

// resyncUntil skips tokens until one of kinds or EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.at_or(kinds...) {
		p.advance()
	}
}

// skipBalanced consumes a bracketed group starting at the current open
// token, including nested groups. Unbalanced input stops at EOF.
func (p *Parser) skipBalanced() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			depth--
		}
		if depth <= 0 {
			return
		}
	}
}

func ident(tok token.Token) visit.Identifier {
	return visit.Identifier{Name: tok.Name(), Span: tok.Span}
}

// sameLine reports whether tok starts on the line the previous token ended.
func sameLine(tok token.Token) bool {
	return !tok.HasLeadingNewline()
}

// adjacent reports whether b starts exactly where a ends.
func adjacent(a, b token.Token) bool {
	return a.Span.End == b.Span.Start
}
