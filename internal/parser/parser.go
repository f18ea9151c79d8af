package parser

import (
	"vareach/internal/ast"
	"vareach/internal/diag"
	"vareach/internal/lexer"
	"vareach/internal/source"
	"vareach/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program *ast.Node
	Chain   *token.Chain
}

// Parser — состояние парсера на один файл.
// Работает поверх уже построенной цепочки токенов: tok всегда значимый токен
// (или nil в конце), trivia пропускаются, но остаются в цепочке.
type Parser struct {
	prog *ast.Node
	tok  *token.Token // current significant token
	last *token.Token // last consumed significant token
	opts Options
}

// ParseFile lexes and parses one file. Lexer and parser share the reporter.
func ParseFile(file *source.File, opts Options) Result {
	chain := lexer.Tokenize(file, lexer.Options{Reporter: opts.Reporter})
	return Result{
		Program: Parse(chain, opts),
		Chain:   chain,
	}
}

// Parse builds the statement tree over chain and makes the program the Root
// of every token.
func Parse(chain *token.Chain, opts Options) *ast.Node {
	prog := ast.NewProgram(chain.First(), chain.Last())
	for _, t := range token.Slice(chain.First(), nil) {
		t.Root = prog
	}
	p := Parser{
		prog: prog,
		tok:  token.FindForward(chain.First(), token.IsSignificant),
		opts: opts,
	}
	p.parseStatementList(prog, false)
	return prog
}

func (p *Parser) advance() *token.Token {
	t := p.tok
	if t == nil {
		return nil
	}
	p.last = t
	p.tok = token.NextSignificant(t)
	return t
}

func (p *Parser) at(text string) bool {
	return p.tok.Is(text)
}

// peek returns the significant token after the current one.
func (p *Parser) peek() *token.Token {
	return token.NextSignificant(p.tok)
}

// newlineBefore reports whether a line break separates last and tok.
// A multi-line block comment counts as a break.
func (p *Parser) newlineBefore() bool {
	if p.last == nil || p.tok == nil {
		return false
	}
	for t := p.last.Next; t != nil && t != p.tok; t = t.Next {
		if token.IsLineBreak(t) || (t.Kind == token.BlockComment && token.ContainsLineBreak(t)) {
			return true
		}
	}
	return false
}

func (p *Parser) diagSpan() source.Span {
	if p.tok != nil {
		return p.tok.Span
	}
	if p.last != nil {
		sp := p.last.Span
		return source.Span{File: sp.File, Start: sp.End, End: sp.End}
	}
	return source.Span{}
}

func (p *Parser) err(code diag.Code, msg string) {
	p.errAt(code, p.diagSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	p.opts.CurrentErrors++
	if p.opts.Enough() {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}
