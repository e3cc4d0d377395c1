package token

import (
	"strings"

	"tsiface/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	// Text is the raw source slice.
	Text    string
	// Value is the decoded name for identifiers written with \u escapes,
	// NFC-normalized. It is empty when it equals Text.
	Value   string
	Leading []Trivia
}

// Name returns the identifier name the token declares or references.
func (t Token) Name() string {
	if t.Value != "" {
		return t.Value
	}
	return t.Text
}

// HasLeadingNewline reports whether a line terminator separates the token
// from the previous one. A block comment spanning lines counts.
func (t Token) HasLeadingNewline() bool {
	for _, tv := range t.Leading {
		switch tv.Kind {
		case TriviaNewline:
			return true
		case TriviaBlockComment:
			if strings.ContainsRune(tv.Text, '\n') {
				return true
			}
		}
	}
	return false
}

// IsLiteral reports whether the token is a numeric, string or template literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, StringLit, TemplateLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsPunct() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
