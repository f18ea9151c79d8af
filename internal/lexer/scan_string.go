package lexer

import (
	"vareach/internal/diag"
	"vareach/internal/token"
)

// scanString reads a single or double quoted literal. An unescaped line
// terminator ends the literal with an error; the terminator stays outside.
func (lx *Lexer) scanString() *token.Token {
	m := lx.cursor.Mark()
	if !lx.skipQuoted() {
		tok := lx.emit(token.String, m)
		lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
		return tok
	}
	return lx.emit(token.String, m)
}

func (lx *Lexer) skipQuoted() bool {
	c := &lx.cursor
	quote := c.Bump()
	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == quote:
			c.Bump()
			return true
		case b == '\\':
			c.Bump()
			// escaped line terminator is a continuation
			if c.Bump() == '\r' {
				c.Eat('\n')
			}
		case b == '\n' || b == '\r':
			return false
		default:
			c.Bump()
		}
	}
	return false
}

// scanTemplate reads a whole template literal, substitutions included, as one token.
func (lx *Lexer) scanTemplate() *token.Token {
	m := lx.cursor.Mark()
	ok := lx.skipTemplate()
	tok := lx.emit(token.Template, m)
	if !ok {
		lx.errLex(diag.LexUnterminatedTemplate, tok.Span, "unterminated template literal")
	}
	return tok
}

func (lx *Lexer) skipTemplate() bool {
	c := &lx.cursor
	c.Bump()
	for !c.EOF() {
		switch {
		case c.Peek() == '\\':
			c.Advance(2)
		case c.Peek() == '`':
			c.Bump()
			return true
		case c.HasPrefix("${"):
			c.Advance(2)
			if !lx.skipSubstitution() {
				return false
			}
		default:
			c.Bump()
		}
	}
	return false
}

// skipSubstitution consumes the body of ${...} including the closing brace.
func (lx *Lexer) skipSubstitution() bool {
	c := &lx.cursor
	depth := 0
	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == '{':
			depth++
			c.Bump()
		case b == '}':
			c.Bump()
			if depth == 0 {
				return true
			}
			depth--
		case b == '"' || b == '\'':
			if !lx.skipQuoted() {
				return false
			}
		case b == '`':
			if !lx.skipTemplate() {
				return false
			}
		case c.HasPrefix("//"):
			for !c.EOF() && c.Peek() != '\n' && c.Peek() != '\r' {
				c.Bump()
			}
		case c.HasPrefix("/*"):
			c.Advance(2)
			for !c.EOF() && !c.HasPrefix("*/") {
				c.Bump()
			}
			c.Advance(2)
		default:
			c.Bump()
		}
	}
	return false
}

// scanRegex reads /body/flags. Character classes may contain unescaped slashes.
func (lx *Lexer) scanRegex() *token.Token {
	m := lx.cursor.Mark()
	c := &lx.cursor
	c.Bump()
	inClass := false
	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == '\n' || b == '\r':
			tok := lx.emit(token.Regex, m)
			lx.errLex(diag.LexUnterminatedRegex, tok.Span, "unterminated regular expression literal")
			return tok
		case b == '\\':
			c.Bump()
			if nb := c.Peek(); nb != '\n' && nb != '\r' {
				c.Bump()
			}
		case b == '[':
			inClass = true
			c.Bump()
		case b == ']':
			inClass = false
			c.Bump()
		case b == '/' && !inClass:
			c.Bump()
			for !c.EOF() && isIdentContinueByte(c.Peek()) {
				c.Bump()
			}
			return lx.emit(token.Regex, m)
		default:
			c.Bump()
		}
	}
	tok := lx.emit(token.Regex, m)
	lx.errLex(diag.LexUnterminatedRegex, tok.Span, "unterminated regular expression literal")
	return tok
}
