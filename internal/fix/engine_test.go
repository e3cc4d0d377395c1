package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tsiface/internal/diag"
	"tsiface/internal/source"
)

func loadFile(t *testing.T, content string) (*source.FileSet, source.FileID, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.ts")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs, id, path
}

func span(id source.FileID, start, end uint32) source.Span {
	return source.Span{File: id, Start: start, End: end}
}

func TestApplyAllWritesFile(t *testing.T) {
	// interface I { static a: T b: U }
	fs, id, path := loadFile(t, "interface I { static a: T b: U }")
	diagnostics := []diag.Diagnostic{
		{
			Code:    diag.SynMissingSemicolonAfterField,
			Primary: span(id, 25, 25),
			Fixes:   []diag.Fix{diag.InsertFix("insert ';'", span(id, 25, 25), ";")},
		},
		{
			Code:    diag.ModStaticNotAllowed,
			Primary: span(id, 14, 20),
			Fixes:   []diag.Fix{diag.DeleteFix("remove 'static'", span(id, 14, 21))},
		},
	}

	res, err := Apply(fs, diagnostics, Options{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("expected two applied fixes, got %+v", res.Applied)
	}
	if res.Applied[0].Code != diag.ModStaticNotAllowed {
		t.Errorf("fixes should be applied in position order, got %+v", res.Applied)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "interface I { a: T; b: U }"; string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 2 {
		t.Errorf("FileChanges = %+v", res.FileChanges)
	}
}

func TestApplyOnceDryRun(t *testing.T) {
	fs, id, path := loadFile(t, "ab")
	diagnostics := []diag.Diagnostic{
		{Primary: span(id, 1, 1), Fixes: []diag.Fix{diag.InsertFix("x", span(id, 1, 1), "X")}},
		{Primary: span(id, 2, 2), Fixes: []diag.Fix{diag.InsertFix("y", span(id, 2, 2), "Y")}},
	}
	res, err := Apply(fs, diagnostics, Options{Mode: ApplyModeOnce, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Title != "x" {
		t.Fatalf("Applied = %+v", res.Applied)
	}
	if got := string(res.FileChanges[0].Content); got != "aXb" {
		t.Errorf("Content = %q, want aXb", got)
	}
	if disk, _ := os.ReadFile(path); string(disk) != "ab" {
		t.Errorf("dry run wrote the file: %q", disk)
	}
}

func TestApplyByID(t *testing.T) {
	fs, id, _ := loadFile(t, "abc")
	d := diag.Diagnostic{
		Code:    diag.SynUnexpectedToken,
		Primary: span(id, 1, 2),
		Fixes: []diag.Fix{
			diag.DeleteFix("delete", span(id, 1, 2)),
			{Title: "replace", Edits: []diag.FixEdit{{Span: span(id, 1, 2), NewText: "Z"}}},
		},
	}
	res, err := Apply(fs, []diag.Diagnostic{d}, Options{Mode: ApplyModeID, TargetID: FixID(d, 1), DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := string(res.FileChanges[0].Content); got != "aZc" {
		t.Errorf("Content = %q, want aZc", got)
	}

	_, err = Apply(fs, []diag.Diagnostic{d}, Options{Mode: ApplyModeID, TargetID: "nope", DryRun: true})
	if !errors.Is(err, ErrNoFixes) {
		t.Errorf("unknown id: err = %v, want ErrNoFixes", err)
	}
}

func TestApplySkipsConflictsAndVirtualFiles(t *testing.T) {
	fs, id, _ := loadFile(t, "abcdef")
	virtual := fs.AddVirtual("v.ts", []byte("xyz"))
	diagnostics := []diag.Diagnostic{
		{Primary: span(id, 0, 3), Fixes: []diag.Fix{diag.DeleteFix("first", span(id, 0, 3))}},
		{Primary: span(id, 2, 4), Fixes: []diag.Fix{diag.DeleteFix("overlap", span(id, 2, 4))}},
		{Primary: span(virtual, 0, 1), Fixes: []diag.Fix{diag.DeleteFix("virtual", span(virtual, 0, 1))}},
		{Primary: span(id, 5, 5), Fixes: []diag.Fix{{Title: "empty"}}},
	}
	res, err := Apply(fs, diagnostics, Options{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Title != "first" {
		t.Fatalf("Applied = %+v", res.Applied)
	}
	reasons := map[string]string{}
	for _, s := range res.Skipped {
		reasons[s.Title] = s.Reason
	}
	want := map[string]string{
		"overlap": "conflicts with a previously selected fix",
		"virtual": "target file is virtual",
		"empty":   "fix has no edits",
	}
	for title, reason := range want {
		if reasons[title] != reason {
			t.Errorf("skip %q: reason %q, want %q", title, reasons[title], reason)
		}
	}
	if got := string(res.FileChanges[0].Content); got != "def" {
		t.Errorf("Content = %q, want def", got)
	}
}

func TestApplyEditsReplacementBeforeInsertion(t *testing.T) {
	edits := []orderedEdit{
		{FixEdit: diag.FixEdit{Span: source.Span{Start: 1, End: 1}, NewText: "+"}, seq: 1},
		{FixEdit: diag.FixEdit{Span: source.Span{Start: 1, End: 3}, NewText: ""}, seq: 0},
		{FixEdit: diag.FixEdit{Span: source.Span{Start: 1, End: 1}, NewText: "!"}, seq: 2},
	}
	if got := string(applyEdits([]byte("abcd"), edits)); got != "a+!d" {
		t.Errorf("applyEdits = %q, want a+!d", got)
	}
}

func TestSpansConflict(t *testing.T) {
	tests := []struct {
		a, b source.Span
		want bool
	}{
		{source.Span{Start: 1, End: 1}, source.Span{Start: 1, End: 1}, false},
		{source.Span{Start: 2, End: 2}, source.Span{Start: 1, End: 3}, true},
		{source.Span{Start: 1, End: 1}, source.Span{Start: 1, End: 3}, false},
		{source.Span{Start: 3, End: 3}, source.Span{Start: 1, End: 3}, false},
		{source.Span{Start: 0, End: 2}, source.Span{Start: 1, End: 3}, true},
		{source.Span{Start: 0, End: 1}, source.Span{Start: 1, End: 3}, false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("spansConflict(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
