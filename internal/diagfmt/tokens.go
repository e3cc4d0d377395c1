package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tsiface/internal/source"
	"tsiface/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Class   string      `json:"class,omitempty"`
	Text    string      `json:"text,omitempty"`
	Value   string      `json:"value,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// tokenClass groups kinds for editors and scripts consuming the dump.
// EOF and invalid tokens have no class.
func tokenClass(tok token.Token) string {
	switch {
	case tok.IsIdent():
		return "identifier"
	case tok.IsKeyword():
		return "keyword"
	case tok.IsLiteral():
		return "literal"
	case tok.IsPunctOrOp():
		return "punctuation"
	}
	return ""
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	out := make([]string, len(tok.Leading))
	for i, tv := range tok.Leading {
		out[i] = tv.Kind.String()
	}
	return out
}

// FormatTokensPretty prints one numbered line per token, stopping after EOF.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if tok.Value != "" {
			fmt.Fprintf(w, " (value %q)", tok.Value)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Class:   tokenClass(tok),
			Text:    tok.Text,
			Value:   tok.Value,
			Span:    tok.Span,
			Leading: leadingKinds(tok),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
