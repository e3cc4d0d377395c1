package testkit

import (
	"strings"
	"testing"

	"tsiface/internal/diag"
	"tsiface/internal/lexer"
	"tsiface/internal/parser"
	"tsiface/internal/source"
	"tsiface/internal/visit"
)

func parseEvents(t *testing.T, src string) (*source.File, []visit.Event) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte(src)))
	reporter := &diag.BagReporter{Bag: diag.NewBag(64)}
	rec := visit.NewRecorder()
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parser.ParseFile(fs, lx, rec, parser.Options{TypeScript: true, Reporter: reporter})
	return file, rec.Events
}

func TestParsedInputsSatisfyInvariants(t *testing.T) {
	inputs := []string{
		"",
		"interface I { a: T; m(x): void }",
		"interface I { a: T b: U",
		"interface { ; ; }",
		"function f(a) { return (b) => a + b }",
	}
	for _, src := range inputs {
		file, events := parseEvents(t, src)
		if err := CheckEventInvariants(file, events, true); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckEventInvariantsRejects(t *testing.T) {
	file, _ := parseEvents(t, "interface I {}")
	eom := visit.Event{Kind: visit.EvEndOfModule}
	enter := visit.Event{Kind: visit.EvEnterInterfaceScope}
	exit := visit.Event{Kind: visit.EvExitInterfaceScope}
	tests := []struct {
		name    string
		events  []visit.Event
		wantEOM bool
		want    string
	}{
		{"missing eom", []visit.Event{enter, exit}, true, "expected one end_of_module"},
		{"early eom", []visit.Event{enter, exit, eom, enter, exit}, true, "before the last event"},
		{"unexpected eom", []visit.Event{eom}, false, "unexpected end_of_module"},
		{"inverted span", []visit.Event{{Kind: visit.EvVariableUse, Name: "x", HasName: true, Span: source.Span{Start: 3, End: 1}}, eom}, true, "inverted span"},
		{"past end", []visit.Event{{Kind: visit.EvVariableUse, Name: "x", HasName: true, Span: source.Span{Start: 1, End: 99}}, eom}, true, "beyond content end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEventInvariants(file, tt.events, tt.wantEOM)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}
