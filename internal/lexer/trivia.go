package lexer

import (
	"vareach/internal/diag"
	"vareach/internal/token"
)

// scanLineBreak emits exactly one line terminator: \n, \r\n or \r.
func (lx *Lexer) scanLineBreak() *token.Token {
	m := lx.cursor.Mark()
	if lx.cursor.Bump() == '\r' {
		lx.cursor.Eat('\n')
	}
	return lx.emit(token.LineBreak, m)
}

func (lx *Lexer) scanWhitespace() *token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && isBlankByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, m)
}

// scanLineComment reads up to, not including, the line terminator.
func (lx *Lexer) scanLineComment() *token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.LineComment, m)
}

func (lx *Lexer) scanBlockComment() *token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Advance(2)
	for !lx.cursor.EOF() {
		if lx.cursor.HasPrefix("*/") {
			lx.cursor.Advance(2)
			return lx.emit(token.BlockComment, m)
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.BlockComment, m)
	lx.errLex(diag.LexUnterminatedBlockComment, tok.Span, "unterminated block comment")
	return tok
}
