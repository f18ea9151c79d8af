package parser

import (
	"vareach/internal/ast"
	"vareach/internal/diag"
	"vareach/internal/token"
)

type exprCtx struct {
	// noASI disables line-break termination (inside delimiters).
	noASI bool
	// declStmt ends the scan after the first top-level braced body.
	declStmt bool
	// restricted is a return/break/continue/throw keyword after which a
	// line break ends the statement.
	restricted *token.Token
}

// scanExpr consumes tokens at the current nesting level until stop holds, a
// closing delimiter of an enclosing construct is reached, or a line break
// terminates the statement. Nested groups are consumed whole; braces that open
// a statement body become Block children of owner.
func (p *Parser) scanExpr(owner *ast.Node, stop token.Predicate, ctx exprCtx) {
	for p.tok != nil {
		t := p.tok
		if stop != nil && stop(t) {
			return
		}
		if t.Is("}") || t.Is(")") || t.Is("]") {
			return
		}
		if !ctx.noASI && p.newlineBefore() && (p.last == ctx.restricted || !p.continues()) {
			return
		}
		switch {
		case t.Is("{") && p.opensBlock():
			p.parseBlock(owner)
			if ctx.declStmt {
				return
			}
		case t.Is("{") || t.Is("(") || t.Is("["):
			p.scanGroup(owner)
			if ctx.declStmt && t.Is("{") {
				return
			}
		default:
			p.advance()
		}
	}
}

var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// scanGroup consumes a delimited group starting at the current opener.
func (p *Parser) scanGroup(owner *ast.Node) {
	open := p.advance()
	p.scanExpr(owner, nil, exprCtx{noASI: true})
	if p.tok != nil && p.tok.Text == closers[open.Text] && p.tok.Kind == token.Punct {
		p.advance()
		return
	}
	p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed '"+open.Text+"'")
}

// opensBlock decides whether a '{' in expression position opens a statement
// body (function, arrow, method, catch, switch) rather than an object literal.
func (p *Parser) opensBlock() bool {
	l := p.last
	if l == nil {
		return true
	}
	switch l.Kind {
	case token.Punct:
		return l.Text == ")" || l.Text == "=>"
	case token.Keyword:
		switch l.Text {
		case "else", "try", "finally", "do", "static":
			return true
		}
	}
	return false
}

// continues reports whether the statement goes on across the line break
// between last and tok.
func (p *Parser) continues() bool {
	l, t := p.last, p.tok
	switch l.Kind {
	case token.Punct:
		switch l.Text {
		case ")", "]", "}", "++", "--":
		default:
			return true
		}
	case token.Keyword:
		switch l.Text {
		case "new", "typeof", "void", "delete", "in", "instanceof", "await", "extends":
			return true
		}
	}
	switch t.Kind {
	case token.Template:
		return true
	case token.Keyword:
		return t.Text == "in" || t.Text == "instanceof"
	case token.Punct:
		switch t.Text {
		case "++", "--", "!", "~", "{", "}", ";", "@", "...":
			return false
		}
		return true
	}
	return false
}
