package parser

import (
	"slices"

	"tsiface/internal/diag"
	"tsiface/internal/source"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

// memberKey is the name part of a member. Known keys carry a name;
// string, numeric and computed keys are unknown. Signatures have no key.
type memberKey struct {
	present bool
	known   bool
	private bool
	name    string
	span    source.Span
}

func (k memberKey) identifier() *visit.Identifier {
	if !k.known {
		return nil
	}
	return &visit.Identifier{Name: k.name, Span: k.span}
}

func knownKey(tok token.Token) memberKey {
	return memberKey{present: true, known: true, name: tok.Name(), span: tok.Span}
}

// isIndexSignatureStart looks for `[ name :`.
func (p *Parser) isIndexSignatureStart() bool {
	return p.at(token.LBracket) &&
		p.lx.PeekN(1).Kind.IsIdentifierName() &&
		p.lx.PeekN(2).Kind == token.Colon
}

// canStartMember reports whether tok may begin an interface member.
func canStartMember(tok token.Token) bool {
	switch tok.Kind {
	case token.PrivateName, token.StringLit, token.NumberLit,
		token.LBracket, token.LParen, token.Lt, token.Star:
		return true
	}
	return tok.Kind.IsIdentifierName()
}

// functionNameFollowers are the tokens after `function` that make it a
// member name rather than a misplaced keyword.
var functionNameFollowers = [...]token.Kind{
	token.LParen, token.Assign, token.Question, token.Semicolon, token.RBrace,
	token.Colon, token.Comma, token.Bang, token.Lt, token.EOF,
}

func isFunctionName(next token.Kind) bool {
	return slices.Contains(functionNameFollowers[:], next)
}

// parseKey resolves the key of m. It returns false when the current token
// cannot be a key; nothing is consumed in that case.
func (p *Parser) parseKey(m *member) bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.PrivateName:
		m.key = knownKey(p.advance())
		m.key.private = true
		m.mods.add(modPrivateName, tok)
	case tok.Kind == token.StringLit || tok.Kind == token.NumberLit:
		p.advance()
		m.key = memberKey{present: true, span: tok.Span}
	case tok.Kind == token.LBracket:
		p.parseComputedKey(m)
	case tok.Kind == token.KwNew && !m.mods.accessor() && p.at_next(token.LParen, token.Lt):
		p.advance()
		m.shape = shapeConstructSignature
	case tok.Kind.IsIdentifierName():
		m.key = knownKey(p.advance())
	case tok.Kind == token.LParen || tok.Kind == token.Lt:
		m.shape = shapeCallSignature
	default:
		return false
	}
	return true
}

func (p *Parser) parseComputedKey(m *member) {
	open := p.advance()
	p.parseExpression()
	if !p.at(token.RBracket) {
		p.report(diag.SynExpectedRightBracket, diag.SevError, p.getDiagnosticSpan(),
			"expected ']' to close the computed property name")
	} else {
		p.advance()
	}
	m.key = memberKey{present: true, span: open.Span.Cover(p.lastSpan)}
}

// skipFunctionKeyword handles `function` in key position. It reports
// whether the keyword was dropped and the member must be reparsed.
func (p *Parser) skipFunctionKeyword() bool {
	if !p.at(token.KwFunction) || isFunctionName(p.lx.PeekN(1).Kind) {
		return false
	}
	kw := p.advance()
	p.report(diag.SynMethodUsesFunctionKeyword, diag.SevError, kw.Span,
		"methods should not use the 'function' keyword",
		diag.DeleteFix("remove 'function'", kw.Span))
	return true
}

func (p *Parser) at_next(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.PeekN(1).Kind)
}
