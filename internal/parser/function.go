package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

// parseGenericParams parses `<T extends C = D, ...>`, declaring each
// parameter before visiting its constraint and default.
func (p *Parser) parseGenericParams() {
	p.advance() // <
	for !p.at_or(token.Gt, token.EOF) {
		if p.at_or(token.KwIn, token.KwOut, token.KwConst) && p.lx.PeekN(1).Kind.IsIdentifierName() {
			p.advance()
		}
		if !p.peek().Kind.IsIdentifierName() {
			p.err(diag.SynUnexpectedToken, "expected a generic parameter name")
			break
		}
		p.v.VariableDeclaration(ident(p.advance()), visit.VarGenericParameter)
		if p.at(token.KwExtends) {
			p.advance()
			p.parseType()
		}
		if p.at(token.Assign) {
			p.advance()
			p.parseType()
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.Gt, diag.SynExpectedGreater, "expected '>' to close generic parameters")
}

// parameterModifiers may precede a constructor parameter name.
var parameterModifiers = map[token.Kind]bool{
	token.KwPublic:    true,
	token.KwProtected: true,
	token.KwPrivate:   true,
	token.KwReadonly:  true,
	token.KwOverride:  true,
}

// parseParams parses a parenthesised parameter list. Types and defaults are
// visited before the names they belong to are declared.
func (p *Parser) parseParams() {
	p.advance() // (
	for !p.at_or(token.RParen, token.EOF) {
		for parameterModifiers[p.peek().Kind] && (p.lx.PeekN(1).Kind.IsIdentifierName() || p.at_next(token.LBrace, token.LBracket)) {
			p.advance()
		}
		if p.at(token.DotDotDot) {
			p.advance()
		}

		var names []visit.Identifier
		isThis := p.at(token.KwThis)
		if isThis {
			p.advance()
		} else if !p.parseBindingTarget(&names) {
			break
		}
		if p.at(token.Question) {
			p.advance()
		}
		if p.at(token.Colon) {
			p.advance()
			p.parseType()
		}
		if p.at(token.Assign) {
			p.advance()
			p.parseAssignment()
		}
		for _, n := range names {
			p.v.VariableDeclaration(n, visit.VarParameter)
		}

		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynExpectedRightParen, "expected ')' to close the parameter list")
}

// parseBindingTarget collects the names bound by an identifier, object
// pattern or array pattern. Default values inside patterns are visited
// as they are read.
func (p *Parser) parseBindingTarget(names *[]visit.Identifier) bool {
	tok := p.peek()
	switch {
	case tok.Kind == token.LBrace:
		p.advance()
		for !p.at_or(token.RBrace, token.EOF) {
			if p.at(token.DotDotDot) {
				p.advance()
				p.parseBindingTarget(names)
			} else if p.at(token.LBracket) {
				p.advance()
				p.parseAssignment()
				p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' after computed key")
				p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after computed key in pattern")
				p.parseBindingTarget(names)
			} else if p.peek().Kind.IsIdentifierName() || p.at_or(token.StringLit, token.NumberLit) {
				key := p.advance()
				if p.at(token.Colon) {
					p.advance()
					p.parseBindingTarget(names)
				} else if key.Kind.IsIdentifierName() {
					*names = append(*names, ident(key))
				}
			} else {
				p.err(diag.SynUnexpectedToken, "unexpected token in object pattern")
				p.advance()
				continue
			}
			if p.at(token.Assign) {
				p.advance()
				p.parseAssignment()
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.RBrace, diag.SynUnexpectedToken, "expected '}' to close object pattern")
	case tok.Kind == token.LBracket:
		p.advance()
		for !p.at_or(token.RBracket, token.EOF) {
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			if p.at(token.DotDotDot) {
				p.advance()
			}
			if !p.parseBindingTarget(names) {
				p.advance()
				continue
			}
			if p.at(token.Assign) {
				p.advance()
				p.parseAssignment()
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' to close array pattern")
	case tok.Kind.IsIdentifierName():
		*names = append(*names, ident(p.advance()))
	default:
		p.err(diag.SynUnexpectedToken, "expected a parameter name")
		return false
	}
	return true
}

// parseFunctionBody parses `{ statements }` inside an open function scope.
func (p *Parser) parseFunctionBody() {
	open := p.advance()
	p.v.EnterFunctionScopeBody()
	p.parseStatementsUntilBrace()
	p.closeBrace(open)
}

// parseBlock parses a braced statement list in its own block scope.
func (p *Parser) parseBlock() {
	open := p.advance()
	p.v.EnterBlockScope()
	p.parseStatementsUntilBrace()
	p.closeBrace(open)
	p.v.ExitBlockScope()
}

func (p *Parser) closeBrace(open token.Token) {
	if p.at(token.RBrace) {
		p.advance()
		return
	}
	p.report(diag.SynUnclosedCodeBlock, diag.SevError, open.Span,
		"unclosed code block; expected '}' by end of file")
}

// parseFunctionDeclaration parses `async? function *? name<T>(params): R { }`.
func (p *Parser) parseFunctionDeclaration() {
	async := false
	if p.at(token.KwAsync) {
		p.advance()
		async = true
	}
	p.advance() // function
	generator := false
	if p.at(token.Star) {
		p.advance()
		generator = true
	}
	if p.peek().Kind.IsIdentifierName() && !p.at(token.LParen) {
		p.v.VariableDeclaration(ident(p.advance()), visit.VarFunction)
	}
	p.parseFunctionRest(fnContext{async: async, generator: generator})
}

// parseFunctionRest parses everything after the function name.
func (p *Parser) parseFunctionRest(ctx fnContext) {
	p.v.EnterFunctionScope()
	p.pushFn(ctx)
	if p.at(token.Lt) {
		p.parseGenericParams()
	}
	if p.at(token.LParen) {
		p.parseParams()
	} else {
		p.err(diag.SynUnexpectedToken, "expected '(' to start the parameter list")
	}
	if p.at(token.Colon) {
		p.advance()
		p.parseReturnType()
	}
	if p.at(token.LBrace) {
		p.parseFunctionBody()
	} else if p.at(token.Semicolon) {
		p.advance()
	}
	p.popFn()
	p.v.ExitFunctionScope()
}
