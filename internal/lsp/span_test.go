package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"tsiface/internal/source"
)

func virtualFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.ts", []byte(content)))
}

func TestPositionOffsetRoundTrip(t *testing.T) {
	// "é" is two bytes and one UTF-16 unit; "😀" is four bytes and two units.
	file := virtualFile(t, "ab\né x\n😀y\n")
	tests := []struct {
		offset uint32
		pos    protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{2, protocol.Position{Line: 0, Character: 2}},
		{3, protocol.Position{Line: 1, Character: 0}},
		{5, protocol.Position{Line: 1, Character: 1}},
		{7, protocol.Position{Line: 1, Character: 3}},
		{12, protocol.Position{Line: 2, Character: 2}},
		{13, protocol.Position{Line: 2, Character: 3}},
	}
	for _, tt := range tests {
		if got := positionForOffset(file, tt.offset); got != tt.pos {
			t.Errorf("positionForOffset(%d) = %+v, want %+v", tt.offset, got, tt.pos)
		}
		if got := offsetForPosition(file, tt.pos); got != tt.offset {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", tt.pos, got, tt.offset)
		}
	}
}

func TestOffsetForPositionClamps(t *testing.T) {
	file := virtualFile(t, "ab\n😀\n")
	if got := offsetForPosition(file, protocol.Position{Line: 0, Character: 99}); got != 2 {
		t.Errorf("past end of line: got %d, want 2", got)
	}
	if got := offsetForPosition(file, protocol.Position{Line: 1, Character: 1}); got != 3 {
		t.Errorf("inside surrogate pair: got %d, want 3", got)
	}
	if got := offsetForPosition(file, protocol.Position{Line: 9}); got != 8 {
		t.Errorf("past last line: got %d, want 8", got)
	}
}

func TestRangesOverlap(t *testing.T) {
	r := func(l1, c1, l2, c2 uint32) protocol.Range {
		return protocol.Range{Start: protocol.Position{Line: l1, Character: c1}, End: protocol.Position{Line: l2, Character: c2}}
	}
	tests := []struct {
		a, b protocol.Range
		want bool
	}{
		{r(0, 0, 0, 5), r(0, 3, 0, 3), true},
		{r(0, 0, 0, 5), r(0, 5, 0, 5), true},
		{r(0, 0, 0, 5), r(0, 6, 0, 8), false},
		{r(1, 0, 1, 1), r(0, 0, 0, 9), false},
	}
	for _, tt := range tests {
		if got := rangesOverlap(tt.a, tt.b); got != tt.want {
			t.Errorf("rangesOverlap(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
