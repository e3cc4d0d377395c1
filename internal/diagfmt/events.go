package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tsiface/internal/source"
	"tsiface/internal/visit"
)

// EventOutput is one visitor event in JSON output.
type EventOutput struct {
	Kind    string `json:"kind"`
	Name    string `json:"name,omitempty"`
	VarKind string `json:"var_kind,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

func hasFile(fs *source.FileSet, id source.FileID) bool {
	return fs != nil && int(id) < fs.Len()
}

func isScopeExit(k visit.EventKind) bool {
	switch k {
	case visit.EvExitInterfaceScope, visit.EvExitFunctionScope,
		visit.EvExitIndexSignatureScope, visit.EvExitBlockScope:
		return true
	}
	return false
}

func isScopeEnter(k visit.EventKind) bool {
	switch k {
	case visit.EvEnterInterfaceScope, visit.EvEnterFunctionScope,
		visit.EvEnterIndexSignatureScope, visit.EvEnterBlockScope:
		return true
	}
	return false
}

// FormatEventsPretty prints events indented by scope depth. Named events
// carry their source position.
func FormatEventsPretty(w io.Writer, events []visit.Event, fs *source.FileSet) error {
	depth := 0
	for _, e := range events {
		if isScopeExit(e.Kind) && depth > 0 {
			depth--
		}
		line := strings.Repeat("  ", depth) + e.String()
		if e.HasName && hasFile(fs, e.Span.File) {
			pos, _ := fs.Resolve(e.Span)
			line = fmt.Sprintf("%-40s %d:%d", line, pos.Line, pos.Col)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if isScopeEnter(e.Kind) {
			depth++
		}
	}
	return nil
}

// FormatEventsJSON writes events as an indented JSON array.
func FormatEventsJSON(w io.Writer, events []visit.Event, fs *source.FileSet) error {
	output := make([]EventOutput, 0, len(events))
	for _, e := range events {
		out := EventOutput{Kind: e.Kind.String()}
		if e.HasName {
			out.Name = e.Name
			if hasFile(fs, e.Span.File) {
				pos, _ := fs.Resolve(e.Span)
				out.Line, out.Col = pos.Line, pos.Col
			}
		}
		if e.Kind == visit.EvVariableDeclaration {
			out.VarKind = e.VarKind.String()
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
