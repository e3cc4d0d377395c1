package parser

import (
	"fmt"

	"tsiface/internal/diag"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

// ParseInterface parses an interface declaration starting at the
// `interface` keyword. It returns false, consuming nothing, when the
// current token is not `interface`.
func (p *Parser) ParseInterface() bool {
	if !p.at(token.KwInterface) {
		return false
	}
	kw := p.advance()
	if !p.opts.TypeScript {
		p.report(diag.LngInterfaceNotAllowedInJavaScript, diag.SevError, kw.Span,
			"TypeScript's 'interface' feature is not allowed in JavaScript code")
	}

	if p.peek().Kind.IsIdentifierName() {
		name := p.advance()
		p.checkInterfaceName(name)
		p.v.VariableDeclaration(ident(name), visit.VarInterface)
	} else {
		p.report(diag.SynExpectedInterfaceName, diag.SevError, p.getDiagnosticSpan(),
			"expected a name after 'interface'")
	}

	p.v.EnterInterfaceScope()
	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	if p.at(token.KwExtends) {
		p.parseExtends()
	}
	p.parseInterfaceBody(kw)
	p.v.ExitInterfaceScope()
	return true
}

func (p *Parser) checkInterfaceName(name token.Token) {
	n := name.Name()
	switch token.ReservedIn(n) {
	case token.ReservedInAsync:
		if p.inAsync() {
			p.report(diag.NamInterfaceNamedAwaitInAsync, diag.SevError, name.Span,
				"cannot declare an interface named 'await' inside an async function")
		}
	case token.ReservedInGenerator:
		if p.inGenerator() {
			p.report(diag.NamInterfaceNamedYieldInGenerator, diag.SevError, name.Span,
				"cannot declare an interface named 'yield' inside a generator function")
		}
	case token.ReservedAlways:
		p.report(diag.NamInterfaceNameReserved, diag.SevError, name.Span,
			fmt.Sprintf("'%s' is a reserved word and cannot name an interface", n))
	case token.NotReserved:
	}
	if token.IsPredefinedType(n) {
		p.report(diag.NamInterfaceNameBuiltinType, diag.SevError, name.Span,
			fmt.Sprintf("interface name cannot be '%s'", n))
	}
}

// parseExtends visits each heritage target left to right.
func (p *Parser) parseExtends() {
	p.advance() // extends
	for {
		if !p.peek().Kind.IsIdentifierName() {
			p.err(diag.SynExpectedType, "expected an interface name after 'extends'")
			return
		}
		first := p.advance()
		if p.at(token.Dot) {
			p.v.VariableNamespaceUse(ident(first))
			for p.at(token.Dot) {
				p.advance()
				if !p.peek().Kind.IsIdentifierName() {
					p.err(diag.SynExpectedType, "expected a name after '.'")
					break
				}
				p.advance()
			}
		} else {
			p.v.VariableTypeUse(ident(first))
		}
		if p.at(token.Lt) {
			p.parseTypeArguments()
		}
		if !p.at(token.Comma) {
			return
		}
		comma := p.advance()
		if p.at(token.LBrace) {
			p.report(diag.SynUnexpectedComma, diag.SevError, comma.Span,
				"unexpected ',' after the last 'extends' target",
				diag.DeleteFix("remove ','", comma.Span))
			return
		}
	}
}

// parseInterfaceBody parses `{ members }`. Any path out of here leaves the
// stream where the caller can continue: a missing `{` consumes nothing and
// an unclosed body stops before the offending token.
func (p *Parser) parseInterfaceBody(kw token.Token) {
	if !p.at(token.LBrace) {
		sp := kw.Span.Cover(p.lastSpan)
		p.report(diag.SynMissingInterfaceBody, diag.SevError, sp,
			"missing body for TypeScript interface",
			diag.InsertFix("add an empty body", sp.AtEnd(), " {}"))
		return
	}
	open := p.advance()
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.Semicolon:
			p.advance()
			continue
		case tok.Kind == token.RBrace:
			p.advance()
			return
		case tok.Kind == token.EOF || !canStartMember(tok):
			p.report(diag.SynUnclosedInterfaceBlock, diag.SevError, open.Span,
				"unclosed interface; expected '}' by end of the body")
			return
		}

		before := tok.Span.Start
		p.parseMember()
		if next := p.peek(); next.Kind != token.EOF && next.Span.Start == before {
			p.advance()
		}
	}
}
