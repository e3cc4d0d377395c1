package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// applyChanges applies didChange content changes in order. glsp decodes
// each change as either a ranged edit or a whole-document replacement.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start := offsetInText(text, c.Range.Start)
			end := max(offsetInText(text, c.Range.End), start)
			text = text[:start] + c.Text + text[end:]
		}
	}
	return text
}

// offsetInText is offsetForPosition for unindexed text.
func offsetInText(text string, pos protocol.Position) int {
	var line uint32
	i := 0
	for i < len(text) && line < pos.Line {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	if line < pos.Line {
		return len(text)
	}
	var units uint32
	for i < len(text) && text[i] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[i:])
		if units+utf16Len(r) > pos.Character {
			break
		}
		units += utf16Len(r)
		i += size
	}
	return i
}
