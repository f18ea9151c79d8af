package lexer

import (
	"vareach/internal/diag"
	"vareach/internal/token"
)

// puncts is ordered longest first; the first prefix match wins.
var puncts = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
}

const singlePuncts = "{}()[];,<>+-*/%&|^!~?:=.@"

func (lx *Lexer) scanOperatorOrPunct() *token.Token {
	m := lx.cursor.Mark()
	for _, p := range puncts {
		if !lx.cursor.HasPrefix(p) {
			continue
		}
		// a?.5:1 is a conditional, not optional chaining
		if p == "?." && isDec(lx.cursor.PeekAt(2)) {
			continue
		}
		lx.cursor.Advance(len(p))
		return lx.emit(token.Punct, m)
	}

	b := lx.cursor.Bump()
	for i := 0; i < len(singlePuncts); i++ {
		if singlePuncts[i] == b {
			return lx.emit(token.Punct, m)
		}
	}
	tok := lx.emit(token.Invalid, m)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.String())
	return tok
}
