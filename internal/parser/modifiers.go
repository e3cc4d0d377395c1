package parser

import (
	"tsiface/internal/source"
	"tsiface/internal/token"
)

type modKind uint8

const (
	modStatic modKind = iota
	modAsync
	modGenerator
	modReadonly
	modAccess // public, protected or private
	modGet
	modSet
	modOptional
	modPrivateName
)

var modKindNames = [...]string{
	modStatic:      "static",
	modAsync:       "async",
	modGenerator:   "*",
	modReadonly:    "readonly",
	modAccess:      "access",
	modGet:         "get",
	modSet:         "set",
	modOptional:    "?",
	modPrivateName: "#",
}

func (k modKind) String() string {
	if int(k) < len(modKindNames) {
		return modKindNames[k]
	}
	return "modifier"
}

type modifier struct {
	kind modKind
	text string
	span source.Span
}

// modifierSet holds the modifiers of one member in source order.
type modifierSet struct {
	mods []modifier
}

func (s *modifierSet) add(kind modKind, tok token.Token) {
	s.mods = append(s.mods, modifier{kind: kind, text: tok.Text, span: tok.Span})
}

// first returns the earliest modifier of kind. For modAccess this is the
// single access-specifier slot.
func (s *modifierSet) first(kind modKind) (modifier, bool) {
	for _, m := range s.mods {
		if m.kind == kind {
			return m, true
		}
	}
	return modifier{}, false
}

func (s *modifierSet) has(kind modKind) bool {
	_, ok := s.first(kind)
	return ok
}

func (s *modifierSet) accessor() bool {
	return s.has(modGet) || s.has(modSet)
}

type modifierInfo struct {
	kind modKind
	// newlineEndsModifier makes a line break after the keyword turn it into
	// a property name.
	newlineEndsModifier bool
}

var modifierKeywords = map[token.Kind]modifierInfo{
	token.KwStatic:    {kind: modStatic},
	token.KwAsync:     {kind: modAsync, newlineEndsModifier: true},
	token.KwReadonly:  {kind: modReadonly},
	token.KwPublic:    {kind: modAccess},
	token.KwProtected: {kind: modAccess},
	token.KwPrivate:   {kind: modAccess},
	token.KwGet:       {kind: modGet},
	token.KwSet:       {kind: modSet},
}

// endsModifierRun reports whether next makes the keyword before it a name.
func endsModifierRun(kw token.Kind, next token.Token) bool {
	switch next.Kind {
	case token.LParen, token.Lt, token.Colon, token.Semicolon, token.Comma,
		token.Question, token.Bang, token.Assign, token.RBrace, token.EOF:
		return true
	case token.LBrace:
		return kw != token.KwStatic
	}
	return false
}

// parseModifiers consumes the leading modifiers of a member. staticBlock is
// true when the member is `static {`; the static keyword is then recorded
// and consumed and the parser stands at `{`.
func (p *Parser) parseModifiers(set *modifierSet) (staticBlock bool) {
	for {
		tok := p.peek()
		if tok.Kind == token.Star {
			set.add(modGenerator, p.advance())
			continue
		}
		info, ok := modifierKeywords[tok.Kind]
		if !ok {
			return false
		}
		next := p.lx.PeekN(1)
		if endsModifierRun(tok.Kind, next) {
			return false
		}
		if info.newlineEndsModifier && next.HasLeadingNewline() {
			return false
		}
		set.add(info.kind, p.advance())
		if tok.Kind == token.KwStatic && next.Kind == token.LBrace {
			return true
		}
	}
}
