package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/source"
	"tsiface/internal/token"
)

// shape is the syntactic form of an interface member.
type shape uint8

const (
	shapeField shape = iota
	shapeMethod
	shapeAccessor
	shapeCallSignature
	shapeConstructSignature
	shapeIndexSignature
)

func (s shape) String() string {
	switch s {
	case shapeField:
		return "field"
	case shapeMethod:
		return "method"
	case shapeAccessor:
		return "accessor"
	case shapeCallSignature:
		return "call signature"
	case shapeConstructSignature:
		return "construct signature"
	case shapeIndexSignature:
		return "index signature"
	}
	return "member"
}

func (s shape) callable() bool {
	switch s {
	case shapeMethod, shapeAccessor, shapeCallSignature, shapeConstructSignature:
		return true
	case shapeField, shapeIndexSignature:
		return false
	}
	return false
}

// marker records where an optional part of a member was written.
type marker struct {
	span source.Span
	seen bool
}

func (m *marker) set(sp source.Span) {
	m.span, m.seen = sp, true
}

// member describes one interface member while it is parsed. It lives only
// for the duration of parseMember.
type member struct {
	shape shape
	key   memberKey
	mods  modifierSet

	typeAnnotation marker // ':' of a field type or return type
	params         marker // '(' of the parameter list
	initializer    marker // '=' of a field
	definite       marker // '!' of a field
	body           marker // '{' of a method body
	arrow          marker // '=>' before a body
	indexClose     marker // ']' closing an index signature key
	indexValue     marker // ':' before an index signature value type
	indexParen     marker // '(' written after an index signature
}

// parseMember parses one member of an interface body. The current token
// satisfies canStartMember.
func (p *Parser) parseMember() {
	var m member
	if p.parseModifiers(&m.mods) {
		p.parseStaticBlock(&m)
		return
	}
	for p.skipFunctionKeyword() {
	}

	if p.isIndexSignatureStart() {
		m.shape = shapeIndexSignature
		p.parseIndexSignature(&m)
		return
	}
	if !p.parseKey(&m) {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.getDiagnosticSpan(),
			"expected a property name after modifiers")
		p.v.PropertyDeclaration(nil)
		p.validate(&m)
		return
	}

	switch m.shape {
	case shapeCallSignature, shapeConstructSignature:
		p.parseCallable(&m)
		return
	}

	if p.at(token.Question) {
		m.mods.add(modOptional, p.advance())
	}
	if p.at_or(token.LParen, token.Lt, token.LBrace) {
		m.shape = shapeMethod
		if m.mods.accessor() {
			m.shape = shapeAccessor
		}
		p.parseCallable(&m)
		return
	}
	m.shape = shapeField
	p.parseField(&m)
}

func (p *Parser) parseField(m *member) {
	if p.at(token.Bang) {
		m.definite.set(p.advance().Span)
	}
	if p.at(token.Colon) {
		m.typeAnnotation.set(p.advance().Span)
		p.parseType()
	}
	if p.at(token.Assign) {
		m.initializer.set(p.advance().Span)
		p.parseAssignment()
	}
	p.v.PropertyDeclaration(m.key.identifier())
	p.validate(m)
	p.terminate(m)
}

// parseCallable handles methods, accessors, call and construct signatures.
// The property is declared before the function scope opens.
func (p *Parser) parseCallable(m *member) {
	p.v.PropertyDeclaration(m.key.identifier())
	p.v.EnterFunctionScope()
	p.pushFn(fnContext{async: m.mods.has(modAsync), generator: m.mods.has(modGenerator)})

	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	if p.at(token.LParen) {
		m.params.set(p.peek().Span)
		p.parseParams()
	}
	if p.at(token.Colon) {
		m.typeAnnotation.set(p.advance().Span)
		p.parseReturnType()
	}
	if p.at(token.FatArrow) {
		m.arrow.set(p.advance().Span)
		if !p.at(token.LBrace) {
			p.parseReturnType()
		}
	}
	if p.at(token.LBrace) {
		m.body.set(p.peek().Span)
		p.parseFunctionBody()
	}

	p.popFn()
	p.v.ExitFunctionScope()
	p.validate(m)
	if !m.body.seen {
		p.terminate(m)
	}
}

// parseStaticBlock parses `static { ... }`. The statements are visited but
// no property is declared.
func (p *Parser) parseStaticBlock(m *member) {
	st := m.mods.mods[len(m.mods.mods)-1]
	p.report(diag.SynStaticBlockNotAllowed, diag.SevError, st.span,
		"interfaces cannot contain static blocks")
	p.pushFn(fnContext{})
	p.parseBlock()
	p.popFn()
}
