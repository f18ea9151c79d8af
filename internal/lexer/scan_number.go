package lexer

import "vareach/internal/token"

// scanNumber reads decimal, hex, octal and binary literals with optional
// separators, fractions, exponents and a BigInt suffix.
func (lx *Lexer) scanNumber() *token.Token {
	m := lx.cursor.Mark()
	c := &lx.cursor

	if c.Peek() == '0' {
		switch c.PeekAt(1) {
		case 'x', 'X':
			c.Advance(2)
			lx.scanDigits(isHex)
			c.Eat('n')
			return lx.emit(token.Number, m)
		case 'o', 'O':
			c.Advance(2)
			lx.scanDigits(isOct)
			c.Eat('n')
			return lx.emit(token.Number, m)
		case 'b', 'B':
			c.Advance(2)
			lx.scanDigits(isBin)
			c.Eat('n')
			return lx.emit(token.Number, m)
		}
	}

	lx.scanDigits(isDec)
	if c.Peek() == '.' {
		c.Bump()
		lx.scanDigits(isDec)
	}
	if b := c.Peek(); b == 'e' || b == 'E' {
		next := c.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(c.PeekAt(2))) {
			c.Advance(2)
			lx.scanDigits(isDec)
		}
	}
	c.Eat('n')
	return lx.emit(token.Number, m)
}

func (lx *Lexer) scanDigits(valid func(byte) bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if valid(b) || (b == '_' && valid(lx.cursor.PeekAt(1))) {
			lx.cursor.Bump()
			continue
		}
		return
	}
}
