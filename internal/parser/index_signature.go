package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

// parseIndexSignature parses `[key: KeyType]: ValueType`. All of its events,
// including a mistaken parameter list, stay inside the index-signature
// scope.
func (p *Parser) parseIndexSignature(m *member) {
	p.v.EnterIndexSignatureScope()

	p.advance() // [
	key := p.advance()
	p.advance() // :
	p.parseType()
	p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' after the index signature key type")
	m.indexClose.set(p.lastSpan)
	p.v.VariableDeclaration(ident(key), visit.VarParameter)

	switch {
	case p.at(token.Colon):
		m.indexValue.set(p.advance().Span)
		p.parseType()
	case p.at(token.LParen) && sameLine(p.peek()):
		m.indexParen.set(p.peek().Span)
		p.v.PropertyDeclaration(nil)
		p.v.EnterFunctionScope()
		p.parseParams()
		if p.at(token.Colon) {
			m.typeAnnotation.set(p.advance().Span)
			p.parseReturnType()
		}
		p.v.ExitFunctionScope()
	}

	p.v.ExitIndexSignatureScope()
	p.validate(m)
	p.terminate(m)
}
