package token_test

import (
	"testing"

	"tsiface/internal/source"
	"tsiface/internal/token"
)

func TestHasLeadingNewline(t *testing.T) {
	tests := []struct {
		name    string
		leading []token.Trivia
		want    bool
	}{
		{"none", nil, false},
		{"space", []token.Trivia{{Kind: token.TriviaSpace, Text: "  "}}, false},
		{"newline", []token.Trivia{{Kind: token.TriviaNewline, Text: "\n"}}, true},
		{"line comment then newline", []token.Trivia{
			{Kind: token.TriviaLineComment, Text: "// x"},
			{Kind: token.TriviaNewline, Text: "\n"},
		}, true},
		{"single-line block comment", []token.Trivia{{Kind: token.TriviaBlockComment, Text: "/* x */"}}, false},
		{"multi-line block comment", []token.Trivia{{Kind: token.TriviaBlockComment, Text: "/*\n*/"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := token.Token{Kind: token.Ident, Span: source.Span{Start: 10, End: 11}, Leading: tt.leading}
			if got := tok.HasLeadingNewline(); got != tt.want {
				t.Errorf("HasLeadingNewline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNamePrefersDecodedValue(t *testing.T) {
	tok := token.Token{Kind: token.Ident, Text: `\u0061b`, Value: "ab"}
	if tok.Name() != "ab" {
		t.Fatalf("Name() = %q, want ab", tok.Name())
	}
	plain := token.Token{Kind: token.Ident, Text: "cd"}
	if plain.Name() != "cd" {
		t.Fatalf("Name() = %q, want cd", plain.Name())
	}
}
