package lexer

import (
	"unicode"

	"vareach/internal/diag"
	"vareach/internal/token"
)

// scanIdentOrKeyword reads an identifier, a #private name or a keyword.
// Keywords used as property names after a dot are identifiers.
func (lx *Lexer) scanIdentOrKeyword() *token.Token {
	m := lx.cursor.Mark()
	private := lx.cursor.Eat('#')
	lx.scanIdentTail()
	tok := lx.emit(token.Ident, m)
	if !private && token.IsKeywordText(tok.Text) && !lx.afterMemberAccess() {
		tok.Kind = token.Keyword
	}
	return tok
}

func (lx *Lexer) scanIdentTail() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b):
			lx.cursor.Bump()
		case b == '\\' && lx.cursor.PeekAt(1) == 'u':
			lx.scanUnicodeEscape()
		case b >= 0x80:
			r, size := lx.peekRune()
			if !isIdentContinueRune(r) {
				return
			}
			lx.cursor.Advance(size)
		default:
			return
		}
	}
}

// scanUnicodeEscape consumes \uXXXX or \u{X...}.
func (lx *Lexer) scanUnicodeEscape() {
	lx.cursor.Advance(2)
	if lx.cursor.Eat('{') {
		for !lx.cursor.EOF() && isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		lx.cursor.Eat('}')
		return
	}
	for i := 0; i < 4 && isHex(lx.cursor.Peek()); i++ {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) afterMemberAccess() bool {
	return lx.prev != nil && lx.prev.Kind == token.Punct && (lx.prev.Text == "." || lx.prev.Text == "?.")
}

// scanNonASCII handles identifiers and whitespace outside ASCII.
func (lx *Lexer) scanNonASCII() *token.Token {
	r, size := lx.peekRune()
	switch {
	case isIdentStartRune(r):
		return lx.scanIdentOrKeyword()
	case unicode.IsSpace(r) || r == '\ufeff':
		m := lx.cursor.Mark()
		for !lx.cursor.EOF() {
			b := lx.cursor.Peek()
			if isBlankByte(b) {
				lx.cursor.Bump()
				continue
			}
			if b < 0x80 {
				break
			}
			r, size := lx.peekRune()
			if !unicode.IsSpace(r) && r != '\ufeff' {
				break
			}
			lx.cursor.Advance(size)
		}
		return lx.emit(token.Whitespace, m)
	}
	m := lx.cursor.Mark()
	if size == 0 {
		size = 1
	}
	lx.cursor.Advance(size)
	tok := lx.emit(token.Invalid, m)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.String())
	return tok
}
