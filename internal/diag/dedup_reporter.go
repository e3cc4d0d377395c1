package diag

import "tsiface/internal/source"

type reportKey struct {
	code Code
	span source.Span
}

// DedupReporter forwards the first diagnostic reported for each code and
// primary span and drops the rest. The lexer and the parser share one, so
// a token that both recovery paths trip over is reported once.
type DedupReporter struct {
	next       Reporter
	seen       map[reportKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	key := reportKey{code: code, span: primary}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed returns how many reports were dropped as duplicates.
func (r *DedupReporter) Suppressed() int { return r.suppressed }
