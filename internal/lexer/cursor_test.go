package lexer

import (
	"testing"

	"vareach/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF")
	}
	if cursor.Bump() != 0 || cursor.Peek() != 0 {
		t.Fatal("reading past EOF must yield 0")
	}
}

func TestCursorMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("hello world"))
	cursor.Advance(6)
	m := cursor.Mark()
	cursor.Advance(5)

	sp := cursor.SpanFrom(m)
	if sp.Start != 6 || sp.End != 11 {
		t.Fatalf("SpanFrom = %v, want 6..11", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'w' {
		t.Fatalf("after Reset Peek() = %q, want 'w'", cursor.Peek())
	}
}

func TestCursorLookahead(t *testing.T) {
	cursor := NewCursor(createFile(">>>="))
	if !cursor.HasPrefix(">>>=") {
		t.Fatal("HasPrefix(>>>=) = false")
	}
	if cursor.HasPrefix(">>>=>") {
		t.Fatal("HasPrefix past end must be false")
	}
	if cursor.PeekAt(3) != '=' || cursor.PeekAt(4) != 0 {
		t.Fatal("PeekAt mismatch")
	}
	if cursor.Eat('=') {
		t.Fatal("Eat must not consume a different byte")
	}
	if !cursor.Eat('>') || cursor.Off != 1 {
		t.Fatal("Eat('>') failed")
	}
}
