package diagfmt

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"tsiface/internal/lexer"
	"tsiface/internal/source"
	"tsiface/internal/token"
)

func lexAll(t *testing.T, src string) (*source.FileSet, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return fs, toks
		}
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs, toks := lexAll(t, "a /*c*/ b\n")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  1: Ident") || !strings.Contains(lines[0], `"a" at 1:1-1:2`) {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "BlockComment") {
		t.Errorf("expected leading trivia on second token, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "EOF") {
		t.Errorf("expected EOF last, got %q", lines[2])
	}
}

func TestFormatTokensJSONStopsAtEOF(t *testing.T) {
	_, toks := lexAll(t, "interface I {}")
	toks = append(toks, token.Token{Kind: token.Ident, Text: "after"})

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	kinds := make([]string, len(out))
	for i, o := range out {
		kinds[i] = o.Kind
	}
	want := []string{"interface", "Ident", "{", "}", "EOF"}
	if !slices.Equal(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
	classes := make([]string, len(out))
	for i, o := range out {
		classes[i] = o.Class
	}
	if want := []string{"keyword", "identifier", "punctuation", "punctuation", ""}; !slices.Equal(classes, want) {
		t.Errorf("classes = %v, want %v", classes, want)
	}
	if out[0].Leading != nil {
		t.Errorf("first token has no trivia, got %v", out[0].Leading)
	}
	if !slices.Equal(out[1].Leading, []string{"Space"}) {
		t.Errorf("unexpected trivia %v", out[1].Leading)
	}
}
