package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

// Type expressions are parsed only far enough to visit the names they
// reference. Predefined type keywords produce no events.

// parseType parses a full type including unions, intersections and
// conditional types.
func (p *Parser) parseType() {
	p.parseUnionType()
	if p.at(token.KwExtends) && sameLine(p.peek()) {
		p.advance()
		p.parseUnionType()
		if _, ok := p.expect(token.Question, diag.SynExpectedType, "expected '?' in conditional type"); !ok {
			return
		}
		p.parseType()
		if _, ok := p.expect(token.Colon, diag.SynExpectedType, "expected ':' in conditional type"); !ok {
			return
		}
		p.parseType()
	}
}

func (p *Parser) parseUnionType() {
	if p.at_or(token.Pipe, token.Amp) {
		p.advance()
	}
	p.parsePostfixType()
	for p.at_or(token.Pipe, token.Amp) {
		p.advance()
		p.parsePostfixType()
	}
}

func (p *Parser) parsePostfixType() {
	p.parsePrimaryType()
	for p.at(token.LBracket) && sameLine(p.peek()) {
		p.advance()
		if !p.at(token.RBracket) {
			p.parseType()
		}
		p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' in type")
	}
}

func (p *Parser) parsePrimaryType() {
	tok := p.peek()
	switch tok.Kind {
	case token.KwAny, token.KwBigint, token.KwBoolean, token.KwNever, token.KwNull,
		token.KwNumber, token.KwObject, token.KwString, token.KwSymbol,
		token.KwUndefined, token.KwUnknown, token.KwVoid, token.KwThis,
		token.KwTrue, token.KwFalse,
		token.StringLit, token.NumberLit, token.TemplateLit:
		p.advance()
	case token.Minus:
		p.advance()
		p.expect(token.NumberLit, diag.SynExpectedType, "expected a number after '-' in type")
	case token.KwKeyof, token.KwUnique, token.KwReadonly:
		p.advance()
		p.parsePostfixType()
	case token.KwInfer:
		p.advance()
		if p.peek().Kind.IsIdentifierName() {
			p.advance()
		}
		if p.at(token.KwExtends) {
			p.advance()
			p.parsePostfixType()
		}
	case token.KwTypeof:
		p.advance()
		p.parseTypeofQuery()
	case token.LParen:
		if p.isFunctionTypeStart() {
			p.parseFunctionType()
			return
		}
		p.advance()
		p.parseType()
		p.expect(token.RParen, diag.SynExpectedRightParen, "expected ')' in type")
	case token.Lt:
		p.parseFunctionType()
	case token.KwNew:
		p.advance()
		p.parseFunctionType()
	case token.LBrace:
		p.parseObjectType()
	case token.LBracket:
		p.parseTupleType()
	default:
		if tok.Kind.IsIdentifierName() {
			p.parseTypeReference()
			return
		}
		p.err(diag.SynExpectedType, "expected a type")
	}
}

// parseTypeReference visits `T`, `ns.T` and their type arguments.
func (p *Parser) parseTypeReference() {
	first := p.advance()
	if p.at(token.Dot) {
		p.v.VariableNamespaceUse(ident(first))
		p.skipQualifiedTail()
	} else {
		p.v.VariableTypeUse(ident(first))
	}
	if p.at(token.Lt) && sameLine(p.peek()) {
		p.parseTypeArguments()
	}
}

// parseTypeofQuery visits the value named by `typeof x.y`.
func (p *Parser) parseTypeofQuery() {
	if !p.peek().Kind.IsIdentifierName() {
		p.err(diag.SynExpectedExpression, "expected a name after 'typeof'")
		return
	}
	p.v.VariableUse(ident(p.advance()))
	p.skipQualifiedTail()
	if p.at(token.Lt) && sameLine(p.peek()) {
		p.parseTypeArguments()
	}
}

func (p *Parser) skipQualifiedTail() {
	for p.at(token.Dot) {
		p.advance()
		if !p.peek().Kind.IsIdentifierName() && !p.at(token.PrivateName) {
			p.err(diag.SynExpectedType, "expected a name after '.'")
			return
		}
		p.advance()
	}
}

// parseTypeArguments parses `<A, B>`.
func (p *Parser) parseTypeArguments() {
	p.advance() // <
	for !p.at_or(token.Gt, token.EOF) {
		p.parseType()
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.Gt, diag.SynExpectedGreater, "expected '>' to close type arguments")
}

// isFunctionTypeStart decides between `(T)` and `(a: T) => R` at `(`.
func (p *Parser) isFunctionTypeStart() bool {
	t1 := p.lx.PeekN(1)
	switch t1.Kind {
	case token.RParen, token.DotDotDot:
		return true
	}
	if !t1.Kind.IsIdentifierName() {
		return false
	}
	switch p.lx.PeekN(2).Kind {
	case token.Colon, token.Comma, token.Question, token.Assign:
		return true
	case token.RParen:
		return p.lx.PeekN(3).Kind == token.FatArrow
	}
	return false
}

// parseFunctionType parses `<T>(params) => R` after any `new`.
func (p *Parser) parseFunctionType() {
	p.v.EnterFunctionScope()
	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	if p.at(token.LParen) {
		p.parseParams()
	} else {
		p.err(diag.SynExpectedType, "expected '(' in function type")
	}
	if _, ok := p.expect(token.FatArrow, diag.SynExpectedType, "expected '=>' in function type"); ok {
		p.parseReturnType()
	}
	p.v.ExitFunctionScope()
}

// parseReturnType parses a return type, including the predicate forms
// `x is T`, `asserts x` and `asserts x is T`.
func (p *Parser) parseReturnType() {
	if p.at(token.KwAsserts) && p.lx.PeekN(1).Kind.IsIdentifierName() && sameLine(p.lx.PeekN(1)) {
		p.advance()
		p.advance()
		if p.at(token.KwIs) {
			p.advance()
			p.parseType()
		}
		return
	}
	if p.peek().Kind.IsIdentifierName() && p.lx.PeekN(1).Kind == token.KwIs && sameLine(p.lx.PeekN(1)) {
		p.advance()
		p.advance()
	}
	p.parseType()
}

// parseObjectType parses a type literal. Its members are not interface
// members, so no property declarations are emitted.
func (p *Parser) parseObjectType() {
	open := p.advance()
	for !p.at_or(token.RBrace, token.EOF) {
		before := p.peek().Span.Start
		p.parseObjectTypeMember()
		if p.at_or(token.Semicolon, token.Comma) {
			p.advance()
		}
		if next := p.peek(); next.Kind != token.EOF && next.Span.Start == before {
			p.advance()
		}
	}
	if !p.at(token.RBrace) {
		p.report(diag.SynUnclosedCodeBlock, diag.SevError, open.Span, "unclosed object type")
		return
	}
	p.advance()
}

func (p *Parser) parseObjectTypeMember() {
	for p.at_or(token.KwReadonly, token.Plus, token.Minus) && !p.at_next(token.Colon, token.Question, token.LParen) {
		p.advance()
	}
	switch {
	case p.isIndexSignatureStart():
		p.v.EnterIndexSignatureScope()
		p.advance()
		key := p.advance()
		p.advance()
		p.parseType()
		p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' after the index signature key type")
		p.v.VariableDeclaration(ident(key), visit.VarParameter)
		if p.at(token.Colon) {
			p.advance()
			p.parseType()
		}
		p.v.ExitIndexSignatureScope()
		return
	case p.at(token.LBracket) && p.lx.PeekN(1).Kind.IsIdentifierName() && p.lx.PeekN(2).Kind == token.KwIn:
		// mapped type: [K in keyof T as N]: V
		p.advance()
		p.advance()
		p.advance()
		p.parseType()
		if p.at(token.KwAs) {
			p.advance()
			p.parseType()
		}
		p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' in mapped type")
	case p.at(token.LBracket):
		p.advance()
		p.parseExpression()
		p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' after computed property name")
	case p.at(token.KwNew) && p.at_next(token.LParen, token.Lt):
		p.advance()
	case p.at_or(token.LParen, token.Lt):
	case p.peek().Kind.IsIdentifierName() || p.at_or(token.StringLit, token.NumberLit, token.PrivateName):
		p.advance()
	default:
		p.err(diag.SynExpectedType, "expected a property in object type")
		return
	}

	if p.at_or(token.Plus, token.Minus) {
		p.advance()
	}
	if p.at(token.Question) {
		p.advance()
	}
	switch {
	case p.at_or(token.LParen, token.Lt):
		p.v.EnterFunctionScope()
		if p.at(token.Lt) {
			p.parseGenericParams()
		}
		if p.at(token.LParen) {
			p.parseParams()
		}
		if p.at(token.Colon) {
			p.advance()
			p.parseReturnType()
		}
		p.v.ExitFunctionScope()
	case p.at(token.Colon):
		p.advance()
		p.parseType()
	}
}

// parseTupleType parses `[A, b?: B, ...C[]]`.
func (p *Parser) parseTupleType() {
	p.advance() // [
	for !p.at_or(token.RBracket, token.EOF) {
		if p.at(token.DotDotDot) {
			p.advance()
		}
		if p.peek().Kind.IsIdentifierName() && (p.at_next(token.Colon) ||
			(p.at_next(token.Question) && p.lx.PeekN(2).Kind == token.Colon)) {
			p.advance()
			if p.at(token.Question) {
				p.advance()
			}
			p.advance() // :
		}
		p.parseType()
		if p.at(token.Question) {
			p.advance()
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' to close tuple type")
}
