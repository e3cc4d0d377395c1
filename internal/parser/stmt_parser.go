package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

// parseStatementsUntilBrace parses statements up to a closing `}` or EOF.
func (p *Parser) parseStatementsUntilBrace() {
	for !p.at_or(token.RBrace, token.EOF) {
		before := p.peek().Span.Start
		p.parseStatement()
		if next := p.peek(); next.Kind != token.EOF && next.Kind != token.RBrace && next.Span.Start == before {
			p.advance()
		}
	}
}

// parseStatement parses one statement. Constructs without interface
// relevance are either visited for their uses or skipped.
func (p *Parser) parseStatement() {
	tok := p.peek()
	next := p.lx.PeekN(1)
	switch tok.Kind {
	case token.Semicolon:
		p.advance()
	case token.KwInterface:
		if (next.Kind.IsIdentifierName() || next.Kind == token.LBrace) && sameLine(next) {
			p.ParseInterface()
			return
		}
		p.parseExpressionStatement()
	case token.KwExport:
		p.parseExport()
	case token.KwDeclare:
		if sameLine(next) && startsDeclaration(next.Kind) {
			p.advance()
			p.parseStatement()
			return
		}
		p.parseExpressionStatement()
	case token.KwImport:
		if next.Kind == token.LParen || next.Kind == token.Dot {
			p.parseExpressionStatement()
			return
		}
		p.skipImport()
	case token.KwFunction:
		p.parseFunctionDeclaration()
	case token.KwAsync:
		if next.Kind == token.KwFunction && sameLine(next) {
			p.parseFunctionDeclaration()
			return
		}
		p.parseExpressionStatement()
	case token.LBrace:
		p.parseBlock()
	case token.KwConst, token.KwLet, token.KwVar:
		if tok.Kind == token.KwConst && next.Kind == token.KwEnum {
			p.advance()
			p.skipDeclarationBody()
			return
		}
		if tok.Kind == token.KwLet && !(next.Kind.IsIdentifierName() || next.Kind == token.LBrace || next.Kind == token.LBracket) {
			p.parseExpressionStatement()
			return
		}
		p.parseVariableDeclarations()
		p.eatSemicolon()
	case token.KwReturn, token.KwThrow:
		p.advance()
		if !p.at_or(token.Semicolon, token.RBrace, token.EOF) && sameLine(p.peek()) {
			p.parseExpression()
		}
		p.eatSemicolon()
	case token.KwIf:
		p.advance()
		p.parseParenCondition()
		p.parseStatement()
		if p.at(token.KwElse) {
			p.advance()
			p.parseStatement()
		}
	case token.KwWhile:
		p.advance()
		p.parseParenCondition()
		p.parseStatement()
	case token.KwDo:
		p.advance()
		p.parseStatement()
		if p.at(token.KwWhile) {
			p.advance()
			p.parseParenCondition()
		}
		p.eatSemicolon()
	case token.KwFor:
		p.parseFor()
	case token.KwTry:
		p.parseTry()
	case token.KwSwitch:
		p.parseSwitch()
	case token.KwBreak, token.KwContinue:
		p.advance()
		if p.peek().Kind.IsIdentifierName() && sameLine(p.peek()) {
			p.advance()
		}
		p.eatSemicolon()
	case token.KwType:
		if next.Kind.IsIdentifierName() && sameLine(next) {
			p.parseTypeAlias()
			return
		}
		p.parseExpressionStatement()
	case token.KwClass, token.KwEnum, token.KwAbstract:
		if next.Kind.IsIdentifierName() {
			p.skipDeclarationBody()
			return
		}
		p.parseExpressionStatement()
	case token.KwNamespace, token.KwModule, token.KwGlobal:
		if (next.Kind.IsIdentifierName() || next.Kind == token.StringLit || next.Kind == token.LBrace) && sameLine(next) {
			p.parseNamespace()
			return
		}
		p.parseExpressionStatement()
	default:
		if tok.Kind.IsIdentifierName() && next.Kind == token.Colon {
			p.advance() // label
			p.advance()
			p.parseStatement()
			return
		}
		if canStartExpression(tok) {
			p.parseExpressionStatement()
			return
		}
		p.advance()
	}
}

// startsDeclaration reports whether k can follow `declare` or `export`.
func startsDeclaration(k token.Kind) bool {
	switch k {
	case token.KwInterface, token.KwFunction, token.KwAsync, token.KwConst, token.KwLet,
		token.KwVar, token.KwClass, token.KwEnum, token.KwNamespace, token.KwModule,
		token.KwType, token.KwAbstract, token.KwGlobal:
		return true
	}
	return false
}

func (p *Parser) eatSemicolon() {
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseExpressionStatement() {
	p.parseExpression()
	p.eatSemicolon()
}

func (p *Parser) parseParenCondition() {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return
	}
	p.parseExpression()
	p.expect(token.RParen, diag.SynExpectedRightParen, "expected ')'")
}

// parseVariableDeclarations parses `const a = x, {b} = y`. Each name is
// declared after its initializer is visited.
func (p *Parser) parseVariableDeclarations() {
	p.advance() // const, let or var
	for {
		var names []visit.Identifier
		if !p.parseBindingTarget(&names) {
			return
		}
		if p.at(token.Bang) {
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
			p.v.VariableDeclaration(n, visit.VarVariable)
		}
		if !p.at(token.Comma) {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseFor() {
	p.advance() // for
	if p.at(token.KwAwait) {
		p.advance()
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'for'"); !ok {
		return
	}
	p.v.EnterBlockScope()
	if p.at_or(token.KwConst, token.KwLet, token.KwVar) {
		p.parseForBinding()
	}
	for !p.at_or(token.RParen, token.EOF) {
		if p.at_or(token.Semicolon, token.KwOf) {
			p.advance()
			continue
		}
		before := p.peek().Span.Start
		p.parseExpression()
		if p.peek().Span.Start == before && !p.at_or(token.RParen, token.EOF) {
			p.advance()
		}
	}
	p.expect(token.RParen, diag.SynExpectedRightParen, "expected ')' to close the 'for' header")
	p.parseStatement()
	p.v.ExitBlockScope()
}

// parseForBinding handles `const x of xs`, `const k in o` and
// `let i = 0`.
func (p *Parser) parseForBinding() {
	if !p.lx.PeekN(1).Kind.IsIdentifierName() && !p.at_next(token.LBrace, token.LBracket) {
		return
	}
	p.advance()
	var names []visit.Identifier
	if !p.parseBindingTarget(&names) {
		return
	}
	if p.at(token.Colon) {
		p.advance()
		p.parseType()
	}
	switch {
	case p.at_or(token.KwOf, token.KwIn):
		p.advance()
		p.parseAssignment()
	case p.at(token.Assign):
		p.advance()
		p.parseAssignment()
	}
	for _, n := range names {
		p.v.VariableDeclaration(n, visit.VarVariable)
	}
	for p.at(token.Comma) {
		p.advance()
		names = names[:0]
		if !p.parseBindingTarget(&names) {
			return
		}
		if p.at(token.Assign) {
			p.advance()
			p.parseAssignment()
		}
		for _, n := range names {
			p.v.VariableDeclaration(n, visit.VarVariable)
		}
	}
}

func (p *Parser) parseTry() {
	p.advance() // try
	if p.at(token.LBrace) {
		p.parseBlock()
	}
	if p.at(token.KwCatch) {
		p.advance()
		p.v.EnterBlockScope()
		if p.at(token.LParen) {
			p.advance()
			var names []visit.Identifier
			if p.parseBindingTarget(&names) {
				if p.at(token.Colon) {
					p.advance()
					p.parseType()
				}
				for _, n := range names {
					p.v.VariableDeclaration(n, visit.VarVariable)
				}
			}
			p.expect(token.RParen, diag.SynExpectedRightParen, "expected ')' after catch binding")
		}
		if p.at(token.LBrace) {
			p.parseBlock()
		}
		p.v.ExitBlockScope()
	}
	if p.at(token.KwFinally) {
		p.advance()
		if p.at(token.LBrace) {
			p.parseBlock()
		}
	}
}

func (p *Parser) parseSwitch() {
	p.advance() // switch
	p.parseParenCondition()
	if !p.at(token.LBrace) {
		return
	}
	open := p.advance()
	p.v.EnterBlockScope()
	for !p.at_or(token.RBrace, token.EOF) {
		switch {
		case p.at(token.KwCase):
			p.advance()
			p.parseExpression()
			p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after case expression")
		case p.at(token.KwDefault):
			p.advance()
			p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after 'default'")
		default:
			before := p.peek().Span.Start
			p.parseStatement()
			if next := p.peek(); next.Kind != token.EOF && next.Kind != token.RBrace && next.Span.Start == before {
				p.advance()
			}
		}
	}
	p.closeBrace(open)
	p.v.ExitBlockScope()
}

// parseTypeAlias parses `type Name<T> = Type`. The alias itself is not a
// declaration this parser reports; its type is visited for uses.
func (p *Parser) parseTypeAlias() {
	p.advance() // type
	p.advance() // name
	if p.at(token.Lt) {
		p.v.EnterBlockScope()
		p.parseGenericParams()
		p.parseTypeAliasValue()
		p.v.ExitBlockScope()
		return
	}
	p.parseTypeAliasValue()
}

func (p *Parser) parseTypeAliasValue() {
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias"); ok {
		p.parseType()
	}
	p.eatSemicolon()
}

// parseNamespace parses `namespace a.b { ... }`, `module "m" { ... }` and
// `global { ... }`. Their bodies are statement blocks and may declare
// interfaces.
func (p *Parser) parseNamespace() {
	p.advance()
	if p.at(token.StringLit) {
		p.advance()
	} else if p.peek().Kind.IsIdentifierName() && !p.at(token.LBrace) {
		p.advance()
		p.skipQualifiedTail()
	}
	if p.at(token.LBrace) {
		p.parseBlock()
		return
	}
	p.eatSemicolon()
}

// skipDeclarationBody skips a class, enum or namespace declaration: the
// header up to `{` and the balanced body.
func (p *Parser) skipDeclarationBody() {
	for !p.at_or(token.LBrace, token.Semicolon, token.EOF) {
		p.advance()
	}
	if p.at(token.LBrace) {
		p.skipBalanced()
	}
}

func (p *Parser) parseExport() {
	p.advance() // export
	switch {
	case p.at(token.KwDefault):
		p.advance()
		if p.at(token.KwInterface) || p.at(token.KwFunction) || p.at(token.KwAsync) || p.at(token.KwClass) {
			p.parseStatement()
			return
		}
		p.parseExpressionStatement()
	case p.at(token.LBrace), p.at(token.Star):
		p.skipImport()
	case p.at(token.Assign):
		p.advance()
		p.parseExpressionStatement()
	default:
		p.parseStatement()
	}
}

// skipImport skips an import or re-export clause. The clause ends at its
// module string, at a closing `}` with no `from`, or at `;`.
func (p *Parser) skipImport() {
	p.advance() // import or export
	depth := 0
	for !p.at(token.EOF) && !(depth == 0 && p.at(token.Semicolon)) {
		tok := p.advance()
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 && !p.at(token.KwFrom) {
				p.eatSemicolon()
				return
			}
		case token.StringLit:
			if depth <= 0 {
				p.eatSemicolon()
				return
			}
		}
	}
	p.eatSemicolon()
}
