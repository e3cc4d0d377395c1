package fuzztests

import (
	"testing"
	"time"

	"tsiface/internal/diag"
	"tsiface/internal/lexer"
	"tsiface/internal/parser"
	"tsiface/internal/source"
	"tsiface/internal/testkit"
	"tsiface/internal/visit"
)

// parseTimeout bounds a single parse; exceeding it means recovery looped.
const parseTimeout = 5 * time.Second

func parseRecorded(input []byte, typescript bool) (*source.File, []visit.Event) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.ts", input))
	reporter := &diag.BagReporter{Bag: diag.NewBag(128)}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	rec := visit.NewRecorder()
	parser.ParseFile(fs, lx, rec, parser.Options{TypeScript: typescript, MaxErrors: 128, Reporter: reporter})
	return file, rec.Events
}

func FuzzParserInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		for _, ts := range []bool{true, false} {
			file, events := parseRecorded(input, ts)
			if err := testkit.CheckEventInvariants(file, events, true); err != nil {
				t.Fatalf("typescript=%v: %v\ninput: %q", ts, err, truncateForLog(input, 200))
			}
		}
	})
}

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("interface I { a: T\nb: U\nc(: V }"))
	f.Add([]byte("interface I { [ [ [ [ }"))
	f.Add([]byte("interface I extends extends extends {"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			parseRecorded(input, true)
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
