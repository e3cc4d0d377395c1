package lexer

import (
	"testing"

	"tsiface/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ts", []byte(content))
	return fs.Get(id)
}

func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("cursor must be exhausted at the end")
	}
}

func TestPeek2AndPeek3(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	if b0, b1, b2, ok := cursor.Peek3(); !ok || b0 != 'a' || b1 != 'b' || b2 != 'c' {
		t.Fatalf("Peek3() = %q %q %q %v", b0, b1, b2, ok)
	}
	cursor.Bump()
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Fatalf("Peek3() must fail with two bytes left")
	}
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'b' || b1 != 'c' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2() must fail with one byte left")
	}
	if cursor.PeekAt(0) != 'c' || cursor.PeekAt(1) != 0 {
		t.Fatalf("PeekAt mismatch")
	}
}

func TestMarkSpanReset(t *testing.T) {
	file := createFile("α\nβ")
	cursor := NewCursor(file)
	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(mark)
	if sp.Start != 0 || sp.End != 2 || sp.File != file.ID {
		t.Fatalf("SpanFrom() = %+v", sp)
	}
	cursor.Reset(mark)
	if cursor.Off != 0 {
		t.Fatalf("Reset() left Off = %d", cursor.Off)
	}
	if !cursor.Eat(0xCE) || cursor.Eat('x') {
		t.Fatalf("Eat() mismatch")
	}
}
