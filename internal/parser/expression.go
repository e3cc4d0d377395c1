package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

// Expressions are parsed to visit the variables they use and the functions
// they contain; no values are built.

var binaryPrec = map[token.Kind]int{
	token.QuestionQuestion: 1,
	token.OrOr:             2,
	token.AndAnd:           3,
	token.Pipe:             4,
	token.Caret:            5,
	token.Amp:              6,
	token.EqEq:             7,
	token.EqEqEq:           7,
	token.BangEq:           7,
	token.BangEqEq:         7,
	token.Lt:               8,
	token.LtEq:             8,
	token.KwInstanceof:     8,
	token.KwIn:             8,
	token.KwAs:             8,
	token.KwSatisfies:      8,
	token.Shl:              9,
	token.Plus:             10,
	token.Minus:            10,
	token.Star:             11,
	token.Slash:            11,
	token.Percent:          11,
	token.StarStar:         12,
}

var assignOps = map[token.Kind]bool{
	token.Assign:                 true,
	token.PlusAssign:             true,
	token.MinusAssign:            true,
	token.StarAssign:             true,
	token.StarStarAssign:         true,
	token.SlashAssign:            true,
	token.PercentAssign:          true,
	token.ShlAssign:              true,
	token.AmpAssign:              true,
	token.PipeAssign:             true,
	token.CaretAssign:            true,
	token.AndAndAssign:           true,
	token.OrOrAssign:             true,
	token.QuestionQuestionAssign: true,
}

// greaterRun measures the operator starting at a `>` token. The lexer never
// joins `>` with what follows, so `>>`, `>>>`, `>=`, `>>=` and `>>>=` arrive
// as adjacent tokens. It returns the number of tokens in the operator and
// whether it is an assignment.
func (p *Parser) greaterRun() (n int, assign bool) {
	prev := p.lx.PeekN(0)
	n = 1
	for n < 3 {
		next := p.lx.PeekN(n)
		if next.Kind != token.Gt || !adjacent(prev, next) {
			break
		}
		prev = next
		n++
	}
	if next := p.lx.PeekN(n); next.Kind == token.Assign && adjacent(prev, next) {
		return n + 1, true
	}
	return n, false
}

// binaryOp returns the precedence and token width of the binary operator at
// the current token, or 0 when there is none.
func (p *Parser) binaryOp() (prec, width int) {
	tok := p.peek()
	if tok.Kind == token.Gt {
		n, assign := p.greaterRun()
		switch {
		case assign && n == 2:
			return 8, 2 // >=
		case assign:
			return 0, 0
		case n == 1:
			return 8, 1
		default:
			return 9, n
		}
	}
	if (tok.Kind == token.KwAs || tok.Kind == token.KwSatisfies) && !sameLine(tok) {
		return 0, 0
	}
	return binaryPrec[tok.Kind], 1
}

// assignWidth returns the token width of the assignment operator at the
// current token, or 0.
func (p *Parser) assignWidth() int {
	tok := p.peek()
	if assignOps[tok.Kind] {
		return 1
	}
	if tok.Kind == token.Gt {
		if n, assign := p.greaterRun(); assign && n > 2 {
			return n
		}
	}
	return 0
}

func (p *Parser) parseExpression() {
	p.parseAssignment()
	for p.at(token.Comma) {
		p.advance()
		p.parseAssignment()
	}
}

func (p *Parser) parseAssignment() {
	if p.at(token.KwYield) && p.inGenerator() {
		p.advance()
		if p.at(token.Star) {
			p.advance()
		}
		if sameLine(p.peek()) && canStartExpression(p.peek()) {
			p.parseAssignment()
		}
		return
	}
	p.parseConditional()
	if n := p.assignWidth(); n > 0 {
		for range n {
			p.advance()
		}
		p.parseAssignment()
	}
}

func (p *Parser) parseConditional() {
	p.parseBinary(0)
	if !p.at(token.Question) {
		return
	}
	p.advance()
	p.parseAssignment()
	if _, ok := p.expect(token.Colon, diag.SynExpectedExpression, "expected ':' in conditional expression"); ok {
		p.parseAssignment()
	}
}

func (p *Parser) parseBinary(minPrec int) {
	p.parseUnary()
	for {
		prec, width := p.binaryOp()
		if prec == 0 || prec <= minPrec {
			return
		}
		op := p.peek().Kind
		for range width {
			p.advance()
		}
		switch {
		case op == token.KwAs || op == token.KwSatisfies:
			if op == token.KwAs && p.at(token.KwConst) {
				p.advance()
			} else {
				p.parseType()
			}
		case op == token.StarStar:
			p.parseBinary(prec - 1)
		default:
			p.parseBinary(prec)
		}
	}
}

func (p *Parser) parseUnary() {
	switch p.peek().Kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus, token.PlusPlus, token.MinusMinus,
		token.KwTypeof, token.KwVoid, token.KwDelete:
		p.advance()
		p.parseUnary()
		return
	case token.KwAwait:
		if p.inAsync() {
			p.advance()
			p.parseUnary()
			return
		}
	case token.Lt:
		if p.isGenericArrowStart() {
			p.parseGenericArrow()
			return
		}
		// <T>expr
		p.advance()
		p.parseType()
		p.expect(token.Gt, diag.SynExpectedGreater, "expected '>' after type assertion")
		p.parseUnary()
		return
	}
	p.parsePostfix()
}

func (p *Parser) parsePostfix() {
	p.parsePrimary()
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.Dot:
			p.advance()
			p.parseMemberName()
		case token.QuestionDot:
			p.advance()
			switch {
			case p.at(token.LParen):
				p.parseArguments()
			case p.at(token.LBracket):
				p.parseIndexExpr()
			default:
				p.parseMemberName()
			}
		case token.LBracket:
			p.parseIndexExpr()
		case token.LParen:
			p.parseArguments()
		case token.TemplateLit:
			p.advance()
		case token.Bang, token.PlusPlus, token.MinusMinus:
			if !sameLine(tok) {
				return
			}
			p.advance()
		default:
			return
		}
	}
}

func (p *Parser) parseMemberName() {
	if p.peek().Kind.IsIdentifierName() || p.at(token.PrivateName) {
		p.advance()
		return
	}
	p.err(diag.SynExpectedExpression, "expected a property name after '.'")
}

func (p *Parser) parseIndexExpr() {
	p.advance() // [
	p.parseExpression()
	p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' after index expression")
}

func (p *Parser) parseArguments() {
	p.advance() // (
	for !p.at_or(token.RParen, token.EOF) {
		if p.at(token.DotDotDot) {
			p.advance()
		}
		p.parseAssignment()
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynExpectedRightParen, "expected ')' to close the argument list")
}

// canStartExpression reports whether tok may begin an expression.
func canStartExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.NumberLit, token.StringLit, token.TemplateLit, token.PrivateName,
		token.LParen, token.LBracket, token.LBrace, token.Lt,
		token.Bang, token.Tilde, token.Plus, token.Minus, token.PlusPlus, token.MinusMinus:
		return true
	}
	return tok.Kind.IsIdentifierName()
}

// isClosing reports tokens that end an enclosing construct; error recovery
// never consumes them.
func isClosing(k token.Kind) bool {
	switch k {
	case token.RParen, token.RBracket, token.RBrace, token.Semicolon, token.Comma,
		token.Colon, token.EOF:
		return true
	}
	return false
}

func (p *Parser) parsePrimary() {
	tok := p.peek()
	switch tok.Kind {
	case token.NumberLit, token.StringLit, token.TemplateLit, token.PrivateName,
		token.KwNull, token.KwTrue, token.KwFalse, token.KwThis, token.KwSuper, token.KwImport:
		p.advance()
		return
	case token.LParen:
		p.parseParenOrArrow(nil)
		return
	case token.LBracket:
		p.parseArrayLiteral()
		return
	case token.LBrace:
		p.parseObjectLiteral()
		return
	case token.KwFunction:
		p.parseFunctionExpression(false)
		return
	case token.KwNew:
		p.advance()
		if p.at(token.Dot) {
			p.advance()
			p.parseMemberName()
			return
		}
		p.parsePostfix()
		return
	case token.KwClass:
		p.skipClassExpression()
		return
	case token.KwAsync:
		next := p.lx.PeekN(1)
		if sameLine(next) {
			switch {
			case next.Kind == token.KwFunction:
				p.parseFunctionExpression(true)
				return
			case next.Kind.IsIdentifierName() && p.lx.PeekN(2).Kind == token.FatArrow:
				p.advance()
				p.parseSimpleArrow(true)
				return
			case next.Kind == token.LParen:
				async := p.advance()
				p.parseParenOrArrow(&async)
				return
			}
		}
	}

	if tok.Kind.IsIdentifierName() && token.ReservedIn(tok.Name()) != token.ReservedAlways {
		if p.at_next(token.FatArrow) && sameLine(p.lx.PeekN(1)) {
			p.parseSimpleArrow(false)
			return
		}
		p.v.VariableUse(ident(p.advance()))
		return
	}

	p.err(diag.SynExpectedExpression, "expected an expression")
	if !isClosing(tok.Kind) {
		p.advance()
	}
}

// parseSimpleArrow parses `x => body` with the parser at x.
func (p *Parser) parseSimpleArrow(async bool) {
	param := p.advance()
	p.advance() // =>
	p.v.EnterFunctionScope()
	p.pushFn(fnContext{async: async})
	p.v.VariableDeclaration(ident(param), visit.VarParameter)
	p.parseArrowBody()
	p.popFn()
	p.v.ExitFunctionScope()
}

func (p *Parser) parseArrowBody() {
	if p.at(token.LBrace) {
		p.parseFunctionBody()
		return
	}
	p.parseAssignment()
}

// parseParenOrArrow parses a parenthesised expression or an arrow
// function's parameter list. Whether `=>` follows is only known after `)`,
// so events are buffered and replayed once the form is known. Names written
// as plain parameters become declarations in the arrow case and uses
// otherwise. async is the `async` token of `async (...)`, if any.
func (p *Parser) parseParenOrArrow(async *token.Token) {
	outer := p.v
	buf := visit.NewRecorder()
	p.v = buf
	params := make(map[int]bool)

	p.advance() // (
	for !p.at_or(token.RParen, token.EOF) {
		if p.at(token.DotDotDot) {
			p.advance()
		}
		if p.isParamCandidate() {
			name := p.advance()
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
			params[len(buf.Events)] = true
			buf.VariableUse(ident(name))
		} else {
			p.parseAssignment()
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RParen, diag.SynExpectedRightParen, "expected ')'")
	p.v = outer

	if !p.at(token.FatArrow) || !sameLine(p.peek()) {
		if async != nil {
			p.v.VariableUse(ident(*async))
		}
		visit.Replay(p.v, buf.Events...)
		return
	}

	p.advance() // =>
	p.v.EnterFunctionScope()
	p.pushFn(fnContext{async: async != nil})
	for i, e := range buf.Events {
		if params[i] {
			p.v.VariableDeclaration(visit.Identifier{Name: e.Name, Span: e.Span}, visit.VarParameter)
			continue
		}
		visit.Replay(p.v, e)
	}
	p.parseArrowBody()
	p.popFn()
	p.v.ExitFunctionScope()
}

// isParamCandidate reports whether the next element inside parentheses is
// a bare name that could be an arrow parameter: `a`, `a?: T`, `a: T`, `a = d`.
func (p *Parser) isParamCandidate() bool {
	tok := p.peek()
	if !tok.Kind.IsIdentifierName() || token.ReservedIn(tok.Name()) == token.ReservedAlways {
		return false
	}
	switch p.lx.PeekN(1).Kind {
	case token.Comma, token.RParen, token.Colon, token.Assign:
		return true
	case token.Question:
		switch p.lx.PeekN(2).Kind {
		case token.Colon, token.Comma, token.RParen, token.Assign:
			return true
		}
	}
	return false
}

// isGenericArrowStart looks for `<T,`, `<T extends` or `<T>(`.
func (p *Parser) isGenericArrowStart() bool {
	if !p.lx.PeekN(1).Kind.IsIdentifierName() {
		return false
	}
	switch p.lx.PeekN(2).Kind {
	case token.Comma, token.KwExtends:
		return true
	case token.Gt:
		return p.lx.PeekN(3).Kind == token.LParen
	}
	return false
}

func (p *Parser) parseGenericArrow() {
	p.v.EnterFunctionScope()
	p.pushFn(fnContext{})
	p.parseGenericParams()
	if p.at(token.LParen) {
		p.parseParams()
	}
	if p.at(token.Colon) {
		p.advance()
		p.parseReturnType()
	}
	if _, ok := p.expect(token.FatArrow, diag.SynExpectedExpression, "expected '=>' after generic arrow parameters"); ok {
		p.parseArrowBody()
	}
	p.popFn()
	p.v.ExitFunctionScope()
}

func (p *Parser) parseFunctionExpression(async bool) {
	if async {
		p.advance()
	}
	p.advance() // function
	generator := false
	if p.at(token.Star) {
		p.advance()
		generator = true
	}
	if p.peek().Kind.IsIdentifierName() {
		p.advance()
	}
	p.parseFunctionRest(fnContext{async: async, generator: generator})
}

func (p *Parser) skipClassExpression() {
	p.advance() // class
	if p.peek().Kind.IsIdentifierName() && !p.at_or(token.KwExtends, token.KwImplements) {
		p.advance()
	}
	if p.at(token.KwExtends) {
		p.advance()
		p.parsePostfix()
	}
	for !p.at_or(token.LBrace, token.EOF) && !isClosing(p.peek().Kind) {
		p.advance()
	}
	if p.at(token.LBrace) {
		p.skipBalanced()
	}
}

func (p *Parser) parseArrayLiteral() {
	p.advance() // [
	for !p.at_or(token.RBracket, token.EOF) {
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if p.at(token.DotDotDot) {
			p.advance()
		}
		p.parseAssignment()
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.RBracket, diag.SynExpectedRightBracket, "expected ']' to close the array literal")
}

func (p *Parser) parseObjectLiteral() {
	open := p.advance()
	for !p.at_or(token.RBrace, token.EOF) {
		before := p.peek().Span.Start
		p.parseObjectEntry()
		if next := p.peek(); next.Span.Start == before && !isClosing(next.Kind) {
			p.advance()
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.closeBrace(open)
}

func (p *Parser) parseObjectEntry() {
	if p.at(token.DotDotDot) {
		p.advance()
		p.parseAssignment()
		return
	}
	var ctx fnContext
	for p.at_or(token.KwGet, token.KwSet, token.KwAsync) &&
		!p.at_next(token.Colon, token.LParen, token.Comma, token.RBrace, token.Assign) {
		if p.at(token.KwAsync) {
			ctx.async = true
		}
		p.advance()
	}
	if p.at(token.Star) {
		p.advance()
		ctx.generator = true
	}

	var key token.Token
	switch {
	case p.at(token.LBracket):
		p.parseIndexExpr()
	case p.at_or(token.StringLit, token.NumberLit) || p.peek().Kind.IsIdentifierName():
		key = p.advance()
	default:
		p.err(diag.SynExpectedExpression, "expected a property name in object literal")
		return
	}

	switch {
	case p.at(token.Colon):
		p.advance()
		p.parseAssignment()
	case p.at_or(token.LParen, token.Lt):
		p.parseFunctionRest(ctx)
	case key.Kind.IsIdentifierName():
		p.v.VariableUse(ident(key))
		if p.at(token.Assign) {
			p.advance()
			p.parseAssignment()
		}
	}
}
