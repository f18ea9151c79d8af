package lexer

import (
	"vareach/internal/diag"
	"vareach/internal/source"
	"vareach/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
	// Root is stored in every produced token as the chain owner.
	Root token.Owner
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
