package driver

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"

	"tsiface/internal/diag"
	"tsiface/internal/lexer"
	"tsiface/internal/observ"
	"tsiface/internal/parser"
	"tsiface/internal/source"
	"tsiface/internal/visit"
)

// ParseOptions configures a single-file parse.
type ParseOptions struct {
	// TypeScript enables TypeScript mode for files that are not plain
	// JavaScript by extension. .js, .mjs, .cjs and .jsx files are always
	// parsed in JavaScript mode.
	TypeScript     bool
	MaxDiagnostics int
}

// fingerprint identifies the options that change parse output.
func (o ParseOptions) fingerprint() string {
	return fmt.Sprintf("ts=%t;max=%d", o.TypeScript, o.MaxDiagnostics)
}

type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Events  []visit.Event
	Timing  observ.Report
}

var javaScriptExts = []string{".js", ".mjs", ".cjs", ".jsx"}

// IsJavaScriptPath reports whether path names a plain JavaScript file.
func IsJavaScriptPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, js := range javaScriptExts {
		if ext == js {
			return true
		}
	}
	return false
}

// ParseFile loads path and parses it as a module.
func ParseFile(path string, opts ParseOptions) (*Result, error) {
	fs := source.NewFileSet()
	timer := observ.NewTimer()

	load := timer.Begin("load")
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	timer.End(load, "")

	return parseLoaded(fs, fs.Get(fileID), opts, timer)
}

// ParseSource parses in-memory content registered as a virtual file.
func ParseSource(name string, content []byte, opts ParseOptions) (*Result, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(fs, fs.Get(fileID), opts, observ.NewTimer())
}

func parseLoaded(fs *source.FileSet, file *source.File, opts ParseOptions, timer *observ.Timer) (*Result, error) {
	bag, events, err := parseInto(fs, file, opts, timer)
	if err != nil {
		return nil, err
	}
	return &Result{
		FileSet: fs,
		File:    file,
		Bag:     bag,
		Events:  events,
		Timing:  timer.Report(),
	}, nil
}

// parseInto runs the lexer and parser over file with a fresh bag and
// recorder. It only reads fs, so workers may share one set.
func parseInto(fs *source.FileSet, file *source.File, opts ParseOptions, timer *observ.Timer) (*diag.Bag, []visit.Event, error) {
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return nil, nil, fmt.Errorf("max diagnostics: %w", err)
	}
	limit := opts.MaxDiagnostics
	if limit <= 0 {
		limit = defaultBagSize
	}

	phase := timer.Begin("parse")
	bag := diag.NewBag(limit)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	rec := visit.NewRecorder()
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parser.ParseFile(fs, lx, rec, parser.Options{
		TypeScript: opts.TypeScript && !IsJavaScriptPath(file.Path),
		MaxErrors:  maxErrors,
		Reporter:   reporter,
	})
	if n := reporter.Suppressed(); n > 0 {
		log.Debugf("%s: dropped %d duplicate diagnostics", file.Path, n)
	}
	bag.Sort()
	timer.End(phase, fmt.Sprintf("%d events", len(rec.Events)))

	return bag, rec.Events, nil
}

// defaultBagSize bounds the bag when no diagnostic limit is configured.
const defaultBagSize = 1 << 12
