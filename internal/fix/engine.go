// Package fix applies the fixes attached to diagnostics to the files on disk.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"tsiface/internal/diag"
	"tsiface/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines which fixes are selected.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in position order.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies the first fix of every diagnostic that does not
	// conflict with one already chosen.
	ApplyModeAll
	// ApplyModeID applies the fix with Options.TargetID.
	ApplyModeID
)

// Options configures Apply.
type Options struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes FileChange.Content without writing files.
	DryRun bool
}

// AppliedFix records a fix that was applied.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix records a fix that was not applied and why.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises the edits made to one file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte
}

type Result struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	index int // position among the diagnostic's fixes
	order int
}

// FixID names the idx-th fix of d. IDs are stable for a given file content.
func FixID(d diag.Diagnostic, idx int) string {
	return fmt.Sprintf("%s-%d-%d", d.Code.ID(), d.Primary.Start, idx)
}

// Apply selects fixes from diagnostics according to opts and applies them.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts Options) (*Result, error) {
	result := &Result{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, skipped := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, skipped...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	selected, skipped := selectCandidates(fs, candidates, opts)
	result.Skipped = append(result.Skipped, skipped...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	changes, err := writeChanges(fs, selected, opts.DryRun)
	result.FileChanges = changes
	if err != nil {
		return result, err
	}
	for _, c := range selected {
		result.Applied = append(result.Applied, AppliedFix{
			ID:          c.id,
			Title:       c.fix.Title,
			Code:        c.diag.Code,
			Message:     c.diag.Message,
			PrimaryPath: fs.Get(c.diag.Primary.File).FormatPath("auto", fs.BaseDir()),
			EditCount:   len(c.fix.Edits),
		})
	}
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var cands []candidate
	var skips []SkippedFix
	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := FixID(d, idx)
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, id: id, index: idx, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders by file, primary span, then original order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag.Primary, candidates[j].diag.Primary
		if di.File != dj.File {
			return di.File < dj.File
		}
		if di.Start != dj.Start {
			return di.Start < dj.Start
		}
		if di.End != dj.End {
			return di.End < dj.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func selectCandidates(fs *source.FileSet, candidates []candidate, opts Options) ([]candidate, []SkippedFix) {
	var selected []candidate
	var skipped []SkippedFix
	accepted := make(map[source.FileID][]diag.FixEdit)

	accept := func(c candidate) bool {
		if reason := checkCandidate(fs, c, accepted); reason != "" {
			skipped = append(skipped, SkippedFix{ID: c.id, Title: c.fix.Title, Reason: reason})
			return false
		}
		for _, e := range c.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		selected = append(selected, c)
		return true
	}

	switch opts.Mode {
	case ApplyModeID:
		for _, c := range candidates {
			if c.id == opts.TargetID {
				accept(c)
				return selected, skipped
			}
		}
		return nil, []SkippedFix{{ID: opts.TargetID, Reason: "fix id not found"}}
	case ApplyModeAll:
		for _, c := range candidates {
			if c.index > 0 {
				continue
			}
			accept(c)
		}
	case ApplyModeOnce:
		for _, c := range candidates {
			if accept(c) {
				break
			}
		}
	}
	return selected, skipped
}

// checkCandidate returns why c cannot be applied, or "".
func checkCandidate(fs *source.FileSet, c candidate, accepted map[source.FileID][]diag.FixEdit) string {
	for i, e := range c.fix.Edits {
		if int(e.Span.File) >= fs.Len() {
			return "edit targets an unknown file"
		}
		file := fs.Get(e.Span.File)
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with a previously selected fix"
			}
		}
		for _, other := range c.fix.Edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other.Span, e.Span) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// spansConflict reports whether two half-open spans overlap. Two insertions
// never conflict; an insertion conflicts with a span strictly containing it.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.Start == a.End && b.Start == b.End:
		return false
	case a.Start == a.End:
		return b.Start < a.Start && a.Start < b.End
	case b.Start == b.End:
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

type orderedEdit struct {
	diag.FixEdit
	seq int
}

func writeChanges(fs *source.FileSet, selected []candidate, dryRun bool) ([]FileChange, error) {
	byFile := make(map[source.FileID][]orderedEdit)
	seq := 0
	for _, c := range selected {
		for _, e := range c.fix.Edits {
			byFile[e.Span.File] = append(byFile[e.Span.File], orderedEdit{FixEdit: e, seq: seq})
			seq++
		}
	}

	ids := make([]source.FileID, 0, len(byFile))
	for id := range byFile {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return fs.Get(ids[i]).Path < fs.Get(ids[j]).Path })

	changes := make([]FileChange, 0, len(ids))
	for _, id := range ids {
		file := fs.Get(id)
		content := applyEdits(file.Content, byFile[id])
		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, content, mode); err != nil {
				return changes, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		changes = append(changes, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			EditCount: len(byFile[id]),
			Content:   content,
		})
	}
	return changes, nil
}

// applyEdits splices non-overlapping edits into a copy of content.
// Edits run back to front so earlier offsets stay valid. At one offset a
// replacement runs before insertions, which keep their selection order.
func applyEdits(content []byte, edits []orderedEdit) []byte {
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i].Span, edits[j].Span
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return edits[i].seq > edits[j].seq
	})
	out := append([]byte(nil), content...)
	for _, e := range edits {
		suffix := append([]byte(nil), out[e.Span.End:]...)
		out = append(append(out[:e.Span.Start], e.NewText...), suffix...)
	}
	return out
}
