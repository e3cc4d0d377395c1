package parser

import "tsiface/internal/token"

// ParseModule parses statements until end of input and then emits
// EndOfModule. Interface declarations anywhere in the module, including
// function bodies and namespaces, go through ParseInterface.
func (p *Parser) ParseModule() {
	for !p.at(token.EOF) {
		before := p.peek().Span.Start
		p.parseStatement()
		if next := p.peek(); next.Kind != token.EOF && next.Span.Start == before {
			p.advance()
		}
	}
	p.v.EndOfModule()
}
