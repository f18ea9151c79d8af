package token

import (
	"strconv"

	"vareach/internal/source"
)

// Owner is implemented by the program node that owns a chain.
type Owner interface {
	// ChainBounds returns the first and last token of the owned chain.
	ChainBounds() (first, last *Token)
}

// Token is one lexical unit linked into a chain.
type Token struct {
	Kind Kind
	Text string
	Span source.Span

	Prev *Token
	Next *Token

	// Root points at the program owning the chain. Lookup only.
	Root Owner
}

// Predicate selects tokens during scans.
type Predicate func(t *Token) bool

func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Kind.String() + "(" + strconv.Quote(t.Text) + ")"
}

// Is reports whether t is a punctuation or keyword token with the given text.
func (t *Token) Is(text string) bool {
	return t != nil && (t.Kind == Punct || t.Kind == Keyword) && t.Text == text
}

// IsSeparator reports whether t separates list elements (a comma).
func IsSeparator(t *Token) bool {
	return t != nil && t.Kind == Punct && t.Text == ","
}

// IsTerminator reports whether t explicitly ends a statement (a semicolon).
func IsTerminator(t *Token) bool {
	return t != nil && t.Kind == Punct && t.Text == ";"
}

// IsLineBreak reports whether t is a line terminator.
func IsLineBreak(t *Token) bool {
	return t != nil && t.Kind == LineBreak
}

// IsBlank reports whether t is horizontal whitespace (indentation, spacing).
func IsBlank(t *Token) bool {
	return t != nil && t.Kind == Whitespace
}

// IsComment reports whether t is a line or block comment.
func IsComment(t *Token) bool {
	return t != nil && (t.Kind == LineComment || t.Kind == BlockComment)
}

// IsTrivia reports whether t carries no syntax: whitespace, line breaks, comments.
func IsTrivia(t *Token) bool {
	return IsBlank(t) || IsLineBreak(t) || IsComment(t)
}

// IsSignificant is the negation of IsTrivia for non-nil tokens.
func IsSignificant(t *Token) bool {
	return t != nil && !IsTrivia(t)
}

// ContainsLineBreak reports whether a block comment spans several lines.
func ContainsLineBreak(t *Token) bool {
	if t == nil {
		return false
	}
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' || t.Text[i] == '\r' {
			return true
		}
	}
	return false
}

// Or combines predicates.
func Or(preds ...Predicate) Predicate {
	return func(t *Token) bool {
		for _, p := range preds {
			if p(t) {
				return true
			}
		}
		return false
	}
}
