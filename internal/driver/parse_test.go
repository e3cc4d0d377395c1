package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tsiface/internal/diag"
	"tsiface/internal/visit"
)

const (
	cleanSource  = "interface I { a: T; }\n"
	brokenSource = "interface I { a: T b: U }\n"
)

func eventSummary(events []visit.Event) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseSource(t *testing.T) {
	res, err := ParseSource("test.ts", []byte(cleanSource), ParseOptions{TypeScript: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	want := "decl(I:interface), enter_interface, type_use(T), prop(a), exit_interface, eom"
	if got := eventSummary(res.Events); got != want {
		t.Errorf("events:\n got %s\nwant %s", got, want)
	}
	if len(res.Timing.Phases) != 1 || res.Timing.Phases[0].Name != "parse" {
		t.Errorf("unexpected timings %+v", res.Timing)
	}
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.ts", brokenSource)

	res, err := ParseFile(path, ParseOptions{TypeScript: true})
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SynMissingSemicolonAfterField {
		t.Fatalf("unexpected diagnostics %+v", items)
	}
	if got := res.FileSet.Text(items[0].Primary); got != "" {
		t.Errorf("missing semicolon span should be empty, got %q", got)
	}
	if len(res.Timing.Phases) != 2 || res.Timing.Phases[0].Name != "load" {
		t.Errorf("unexpected timings %+v", res.Timing)
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.ts"), ParseOptions{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLanguageModeByExtension(t *testing.T) {
	tests := []struct {
		name     string
		ts       bool
		wantLang bool
	}{
		{"a.ts", true, false},
		{"a.d.ts", true, false},
		{"a.js", true, true},
		{"a.MJS", true, true},
		{"a.ts", false, true},
	}
	for _, tt := range tests {
		res, err := ParseSource(tt.name, []byte("interface I {}"), ParseOptions{TypeScript: tt.ts})
		if err != nil {
			t.Fatal(err)
		}
		got := res.Bag.Len() == 1 && res.Bag.Items()[0].Code == diag.LngInterfaceNotAllowedInJavaScript
		if got != tt.wantLang {
			t.Errorf("%s (ts=%t): language diagnostic = %t, want %t", tt.name, tt.ts, got, tt.wantLang)
		}
	}
}

func TestParseMaxDiagnostics(t *testing.T) {
	src := "interface I { static a; static b; static c; }"
	res, err := ParseSource("test.ts", []byte(src), ParseOptions{TypeScript: true, MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 2 {
		t.Errorf("got %d diagnostics, want 2", res.Bag.Len())
	}
}

func TestParseReportsEachProblemOnce(t *testing.T) {
	inputs := []string{
		"interface I { static static a: T b }",
		"interface I { @ # a: T; ] }",
		"interface I { get a() { } => ; [k: string](x); }",
		"interface I { async *m() => x; function 123 }",
		"interface I extends A, { new: T",
	}
	type key struct {
		code       diag.Code
		start, end uint32
	}
	for _, src := range inputs {
		res, err := ParseSource("test.ts", []byte(src), ParseOptions{TypeScript: true})
		if err != nil {
			t.Fatal(err)
		}
		if res.Bag.Len() == 0 {
			t.Errorf("%q: expected diagnostics", src)
		}
		seen := make(map[key]bool)
		for _, d := range res.Bag.Items() {
			k := key{d.Code, d.Primary.Start, d.Primary.End}
			if seen[k] {
				t.Errorf("%q: %s reported twice at %d..%d", src, d.Code.ID(), k.start, k.end)
			}
			seen[k] = true
		}
	}
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.ts", "interface I {}")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 5 {
		t.Errorf("got %d tokens, want 5", len(res.Tokens))
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics %+v", res.Bag.Items())
	}
}
