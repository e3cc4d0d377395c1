package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"tsiface/internal/diag"
	"tsiface/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte(fieldSource))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename}
	if err := JSON(&buf, missingSemicolonBag(fileID), fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", output)
	}

	got := output.Diagnostics[0]
	want := DiagnosticJSON{
		Severity: "ERROR",
		Code:     "SYN2004",
		Message:  "Missing semicolon after field",
		Location: LocationJSON{File: "test.ts", StartByte: 19, EndByte: 25, StartLine: 2, StartCol: 6, EndLine: 2, EndCol: 12},
	}
	if got.Severity != want.Severity || got.Code != want.Code || got.Message != want.Message || got.Location != want.Location {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte(fieldSource))

	out := BuildDiagnosticsOutput(missingSemicolonBag(fileID), fs, JSONOpts{PathMode: PathModeBasename})
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Errorf("expected no line/col, got %+v", loc)
	}
	if loc.StartByte != 19 || loc.EndByte != 25 {
		t.Errorf("unexpected byte range %+v", loc)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte(fieldSource))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{File: fileID, Start: i, End: i + 1}, "unexpected"))
	}

	tests := []struct {
		max  int
		want int
	}{
		{0, 5},
		{3, 3},
		{10, 5},
	}
	for _, tt := range tests {
		out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: tt.max})
		if out.Count != tt.want || len(out.Diagnostics) != tt.want {
			t.Errorf("Max=%d: got count %d (%d items), want %d", tt.max, out.Count, len(out.Diagnostics), tt.want)
		}
	}
	if bag.Len() != 5 {
		t.Errorf("Max must not truncate the bag, got %d", bag.Len())
	}
}

func TestJSONNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ts", []byte(fieldSource))

	primary := stringSpan(fileID)
	d := diag.NewError(diag.SynMissingSemicolonAfterField, primary, "Missing semicolon after field").
		WithNote(source.Span{File: fileID, Start: 28, End: 29}, "next member").
		WithFix("insert semicolon", diag.FixEdit{Span: primary.AtEnd(), NewText: ";"})
	d.Fixes = append(d.Fixes, diag.DeleteFix("remove type", primary))
	bag := diag.NewBag(2)
	bag.Add(d)

	t.Run("excluded", func(t *testing.T) {
		out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
		if dj := out.Diagnostics[0]; dj.Notes != nil || dj.Fixes != nil {
			t.Errorf("expected notes and fixes omitted, got %+v", dj)
		}
	})

	t.Run("included", func(t *testing.T) {
		out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true, IncludeFixes: true, IncludePreviews: true})
		dj := out.Diagnostics[0]
		if len(dj.Notes) != 1 || dj.Notes[0].Message != "next member" {
			t.Fatalf("unexpected notes %+v", dj.Notes)
		}
		if len(dj.Fixes) != 2 {
			t.Fatalf("expected two fixes, got %+v", dj.Fixes)
		}

		insert := dj.Fixes[0].Edits[0]
		if insert.NewText != ";" || insert.OldText != "" {
			t.Errorf("unexpected insert edit %+v", insert)
		}
		if len(insert.AfterLines) != 1 || insert.AfterLines[0] != "  a: string;" {
			t.Errorf("unexpected preview %q", insert.AfterLines)
		}

		del := dj.Fixes[1].Edits[0]
		if del.OldText != "string" || del.NewText != "" {
			t.Errorf("unexpected delete edit %+v", del)
		}
		if len(del.AfterLines) != 1 || del.AfterLines[0] != "  a: " {
			t.Errorf("unexpected preview %q", del.AfterLines)
		}
	})
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(1), source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\n  \"diagnostics\": [],\n  \"count\": 0\n}\n" {
		t.Errorf("unexpected output %q", got)
	}
}
