package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsiface/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// utf16Len is the number of UTF-16 code units r occupies.
func utf16Len(r rune) uint32 {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// offsetForPosition maps an LSP position (0-based line, UTF-16 column) to
// a byte offset in file. Positions past the end clamp; a column inside a
// surrogate pair rounds down.
func offsetForPosition(file *source.File, pos protocol.Position) uint32 {
	if file == nil || len(file.Content) == 0 {
		return 0
	}
	contentLen := safeUint32(len(file.Content))
	line := int(pos.Line)
	if line > len(file.LineIdx) {
		return contentLen
	}
	var lineStart uint32
	if line > 0 {
		lineStart = file.LineIdx[line-1] + 1
	}
	lineEnd := contentLen
	if line < len(file.LineIdx) {
		lineEnd = file.LineIdx[line]
	}

	var units uint32
	off := lineStart
	for off < lineEnd && units < pos.Character {
		r, size := utf8.DecodeRune(file.Content[off:lineEnd])
		if units+utf16Len(r) > pos.Character {
			break
		}
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return off
}

// positionForOffset maps a byte offset in file to an LSP position.
func positionForOffset(file *source.File, offset uint32) protocol.Position {
	if file == nil {
		return protocol.Position{}
	}
	offset = min(offset, safeUint32(len(file.Content)))
	lineIdx := file.LineIdx
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = lineIdx[line-1] + 1
	}

	var units uint32
	for off := lineStart; off < offset; {
		r, size := utf8.DecodeRune(file.Content[off:offset])
		units += utf16Len(r)
		off += safeUint32(size)
	}
	return protocol.Position{Line: safeUint32(line), Character: units}
}

func rangeForSpan(file *source.File, span source.Span) protocol.Range {
	return protocol.Range{
		Start: positionForOffset(file, span.Start),
		End:   positionForOffset(file, span.End),
	}
}

// rangesOverlap treats touching ranges as overlapping so that a cursor at
// an empty range still selects the diagnostic under it.
func rangesOverlap(a, b protocol.Range) bool {
	return !positionLess(a.End, b.Start) && !positionLess(b.End, a.Start)
}

func positionLess(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}
