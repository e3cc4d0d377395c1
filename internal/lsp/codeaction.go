package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsiface/internal/diag"
)

// codeActions turns the fixes of diagnostics overlapping rng into quick fixes.
func codeActions(doc *document, rng protocol.Range) []protocol.CodeAction {
	if doc == nil || doc.result == nil {
		return nil
	}
	file := doc.result.File
	kind := protocol.CodeActionKind(protocol.CodeActionKindQuickFix)
	items := doc.items()

	var actions []protocol.CodeAction
	for i := range items {
		d := &items[i]
		if len(d.Fixes) == 0 || !rangesOverlap(rangeForSpan(file, d.Primary), rng) {
			continue
		}
		pd := toDiagnostic(doc, d)
		for j, fx := range d.Fixes {
			edits := textEdits(doc, fx)
			if len(edits) == 0 {
				continue
			}
			preferred := j == 0
			actions = append(actions, protocol.CodeAction{
				Title:       fx.Title,
				Kind:        &kind,
				Diagnostics: []protocol.Diagnostic{pd},
				IsPreferred: &preferred,
				Edit: &protocol.WorkspaceEdit{
					Changes: map[protocol.DocumentUri][]protocol.TextEdit{doc.uri: edits},
				},
			})
		}
	}
	return actions
}

func textEdits(doc *document, fx diag.Fix) []protocol.TextEdit {
	file := doc.result.File
	edits := make([]protocol.TextEdit, 0, len(fx.Edits))
	for _, e := range fx.Edits {
		if e.Span.File != file.ID {
			continue
		}
		edits = append(edits, protocol.TextEdit{Range: rangeForSpan(file, e.Span), NewText: e.NewText})
	}
	return edits
}
