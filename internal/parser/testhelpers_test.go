package parser

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"tsiface/internal/diag"
	"tsiface/internal/lexer"
	"tsiface/internal/source"
	"tsiface/internal/token"
	"tsiface/internal/visit"
)

type parsed struct {
	src    string
	rec    *visit.Recorder
	bag    *diag.Bag
	parser *Parser
}

// events returns the compact event strings without the trailing
// end-of-module marker.
func (r parsed) events() []string {
	out := r.rec.Strings()
	if n := len(out); n > 0 && out[n-1] == "eom" {
		out = out[:n-1]
	}
	return out
}

func (r parsed) props() []string {
	var out []string
	for _, e := range r.rec.Events {
		if e.Kind == visit.EvPropertyDeclaration {
			out = append(out, e.String())
		}
	}
	return out
}

func newInput(src string) (*source.FileSet, *lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte(src)))
	bag := diag.NewBag(256)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return fs, lx, bag
}

func parseWith(t *testing.T, src string, typescript bool) parsed {
	t.Helper()
	fs, lx, bag := newInput(src)
	reporter := &diag.BagReporter{Bag: bag}
	rec := visit.NewRecorder()
	p := New(fs, lx, rec, Options{TypeScript: typescript, Reporter: reporter})
	p.ParseModule()
	if err := visit.CheckBalance(rec.Events); err != nil {
		t.Fatalf("unbalanced events for %q: %v\n%s", src, err, rec.Summary())
	}
	return parsed{src: src, rec: rec, bag: bag, parser: p}
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	return parseWith(t, src, true)
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s %d-%d] %s", d.Code.ID(), d.Primary.Start, d.Primary.End, d.Message)
	}
	return strings.Join(lines, "; ")
}

// wantDiag matches a diagnostic by code and, when checked, by span.
type wantDiag struct {
	code    diag.Code
	checked bool
	start   int
	end     int
}

func (w wantDiag) String() string {
	if !w.checked {
		return w.code.ID()
	}
	return fmt.Sprintf("%s %d-%d", w.code.ID(), w.start, w.end)
}

// diagAt expects code at the first byte after prefix, spanning text.
func diagAt(code diag.Code, prefix, text string) wantDiag {
	return wantDiag{code: code, checked: true, start: len(prefix), end: len(prefix) + len(text)}
}

func diagCode(code diag.Code) wantDiag {
	return wantDiag{code: code}
}

// expectDiags compares the bag with want as an unordered multiset.
func expectDiags(t *testing.T, r parsed, want ...wantDiag) {
	t.Helper()
	got := r.bag.Items()
	used := make([]bool, len(got))
	var missing []string
	for _, w := range want {
		found := false
		for i, d := range got {
			if used[i] || d.Code != w.code {
				continue
			}
			if w.checked && (int(d.Primary.Start) != w.start || int(d.Primary.End) != w.end) {
				continue
			}
			used[i] = true
			found = true
			break
		}
		if !found {
			missing = append(missing, w.String())
		}
	}
	var extra []string
	for i, d := range got {
		if !used[i] {
			extra = append(extra, fmt.Sprintf("%s %d-%d", d.Code.ID(), d.Primary.Start, d.Primary.End))
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		t.Errorf("%q diagnostics: missing %v, unexpected %v\n got %s", r.src, missing, extra, diagnosticsSummary(r.bag))
	}
}

func expectEvents(t *testing.T, r parsed, want ...string) {
	t.Helper()
	got := r.events()
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		t.Errorf("%q events:\n got %s\nwant %s", r.src, strings.Join(got, ", "), strings.Join(want, ", "))
	}
}

func expectProps(t *testing.T, r parsed, want ...string) {
	t.Helper()
	got := r.props()
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		t.Errorf("%q properties: got [%s], want [%s]", r.src, strings.Join(got, ", "), strings.Join(want, ", "))
	}
}

// keywords lists every keyword the lexer knows.
func keywords() []string {
	var out []string
	for k := token.Kind(0); k < token.Kind(255); k++ {
		if k.IsKeyword() {
			out = append(out, k.String())
		}
	}
	return out
}
