package lsp

import (
	"fortio.org/safecast"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsiface/internal/diag"
)

const diagnosticSource = "tsiface"

func toSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func toDiagnostic(doc *document, d *diag.Diagnostic) protocol.Diagnostic {
	file := doc.result.File
	severity := toSeverity(d.Severity)
	src := diagnosticSource
	out := protocol.Diagnostic{
		Range:    rangeForSpan(file, d.Primary),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: d.Code.ID()},
		Source:   &src,
		Message:  d.Message,
	}
	for _, n := range d.Notes {
		if n.Span.File != file.ID {
			continue
		}
		out.RelatedInformation = append(out.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: doc.uri, Range: rangeForSpan(file, n.Span)},
			Message:  n.Msg,
		})
	}
	return out
}

func buildDiagnostics(doc *document) []protocol.Diagnostic {
	items := doc.items()
	out := make([]protocol.Diagnostic, 0, len(items))
	for i := range items {
		out = append(out, toDiagnostic(doc, &items[i]))
	}
	return out
}

func publishDiagnostics(ctx *glsp.Context, uri string, version *protocol.UInteger, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: diagnostics,
	})
}

func documentVersion(doc *document) *protocol.UInteger {
	v, err := safecast.Conv[protocol.UInteger](doc.version)
	if err != nil {
		return nil
	}
	return &v
}
