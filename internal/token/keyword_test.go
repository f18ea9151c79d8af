package token

import (
	"testing"
)

func TestIsKeywordText(t *testing.T) {
	for _, kw := range []string{"var", "let", "const", "for", "while", "do", "function", "return"} {
		if !IsKeywordText(kw) {
			t.Fatalf("IsKeywordText(%q) = false, want true", kw)
		}
	}
	// регистр важен
	for _, s := range []string{"Var", "FOR", "foo", "undefined", "of"} {
		if IsKeywordText(s) {
			t.Fatalf("IsKeywordText(%q) = true, want false", s)
		}
	}
}

func TestIsDeclKeyword(t *testing.T) {
	for _, s := range []string{"var", "let", "const"} {
		if !IsDeclKeyword(s) {
			t.Fatalf("%q must introduce a declaration", s)
		}
	}
	if IsDeclKeyword("function") {
		t.Fatalf("function is not a variable declaration keyword")
	}
}
