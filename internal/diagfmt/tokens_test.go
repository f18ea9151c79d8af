package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vareach/internal/lexer"
	"vareach/internal/source"
)

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSetWithBase("")
	id := fs.AddVirtual("t.js", []byte("var a;\n"))
	chain := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, chain.First(), fs); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var got []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []TokenOutput{
		{Kind: "Keyword", Text: "var", Start: 0, End: 3, Line: 1, Col: 1},
		{Kind: "Whitespace", Text: " ", Start: 3, End: 4, Line: 1, Col: 4},
		{Kind: "Ident", Text: "a", Start: 4, End: 5, Line: 1, Col: 5},
		{Kind: "Punct", Text: ";", Start: 5, End: 6, Line: 1, Col: 6},
		{Kind: "LineBreak", Text: "\n", Start: 6, End: 7, Line: 1, Col: 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSetWithBase("")
	id := fs.AddVirtual("t.js", []byte("let x"))
	chain := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, chain.First(), fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "   1: Keyword") || !strings.Contains(lines[0], "at 1:1-1:4") {
		t.Errorf("unexpected first line %q", lines[0])
	}
}
