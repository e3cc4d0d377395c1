package parser

import (
	"tsiface/internal/diag"
	"tsiface/internal/token"
)

// terminate ends a member. `;` and `,` are consumed; a line break, `}` or end
// of input end the member implicitly. Anything else is reported at the end
// of the member and left for the body loop.
func (p *Parser) terminate(m *member) {
	tok := p.peek()
	switch tok.Kind {
	case token.Semicolon, token.Comma:
		p.advance()
		return
	case token.RBrace, token.EOF:
		return
	}
	if tok.HasLeadingNewline() {
		return
	}

	var code diag.Code
	var what string
	switch m.shape {
	case shapeField:
		code, what = diag.SynMissingSemicolonAfterField, "field"
	case shapeIndexSignature:
		code, what = diag.SynMissingSemicolonAfterIndexSignature, "index signature"
	case shapeMethod, shapeAccessor, shapeCallSignature, shapeConstructSignature:
		code, what = diag.SynMissingSemicolonAfterMethod, "method"
	}
	at := p.afterLast()
	p.report(code, diag.SevError, at, "missing semicolon after "+what,
		diag.InsertFix("insert ';'", at, ";"))
}
