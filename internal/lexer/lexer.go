package lexer

import (
	"vareach/internal/source"
	"vareach/internal/token"
)

// Lexer turns a source file into a lossless stream of tokens.
// Whitespace, line breaks and comments are emitted as tokens of their own so
// that concatenating every token text reproduces the input byte for byte.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	// last significant token, drives the regex/division decision
	prev *token.Token
	// hashbang is only valid at offset zero
	started bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token or nil at end of input.
func (lx *Lexer) Next() *token.Token {
	if lx.cursor.EOF() {
		return nil
	}
	first := !lx.started
	lx.started = true

	var tok *token.Token
	ch := lx.cursor.Peek()
	switch {
	case first && lx.cursor.HasPrefix("#!"):
		tok = lx.scanLineComment()
	case ch == '\n' || ch == '\r':
		tok = lx.scanLineBreak()
	case isBlankByte(ch):
		tok = lx.scanWhitespace()
	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		tok = lx.scanLineComment()
	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		tok = lx.scanBlockComment()
	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegex()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	case ch == '`':
		tok = lx.scanTemplate()
	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		tok = lx.scanNumber()
	case isIdentStartByte(ch) || (ch == '\\' && lx.cursor.PeekAt(1) == 'u') || (ch == '#' && isIdentStartByte(lx.cursor.PeekAt(1))):
		tok = lx.scanIdentOrKeyword()
	case ch >= 0x80:
		tok = lx.scanNonASCII()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if token.IsSignificant(tok) {
		lx.prev = tok
	}
	return tok
}

// Tokenize lexes the whole file into a linked chain.
func Tokenize(file *source.File, opts Options) *token.Chain {
	lx := New(file, opts)
	chain := &token.Chain{}
	for tok := lx.Next(); tok != nil; tok = lx.Next() {
		chain.Append(tok)
	}
	return chain
}

func (lx *Lexer) emit(kind token.Kind, m Mark) *token.Token {
	sp := lx.cursor.SpanFrom(m)
	return &token.Token{
		Kind: kind,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Span: sp,
		Root: lx.opts.Root,
	}
}

// regexAllowed decides whether a slash starts a regular expression literal.
// A slash after an operand is a division operator.
func (lx *Lexer) regexAllowed() bool {
	p := lx.prev
	if p == nil {
		return true
	}
	switch p.Kind {
	case token.Ident, token.Number, token.String, token.Template, token.Regex:
		return false
	case token.Keyword:
		switch p.Text {
		case "this", "super", "null", "true", "false":
			return false
		}
		return true
	case token.Punct:
		switch p.Text {
		case ")", "]", "++", "--":
			return false
		}
		return true
	}
	return true
}
