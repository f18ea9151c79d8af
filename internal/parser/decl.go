package parser

import (
	"vareach/internal/ast"
	"vareach/internal/diag"
	"vareach/internal/token"
)

func declaratorStop(t *token.Token) bool {
	return token.IsSeparator(t) || token.IsTerminator(t)
}

// parseVarDecl parses `[export] var|let|const declarator (, declarator)* ;?`.
// In a loop header the terminator belongs to the loop and is not consumed.
func (p *Parser) parseVarDecl(owner *ast.Node, start *token.Token, header bool) *ast.Node {
	n := &ast.Node{Kind: ast.NodeVarDecl, Start: start, Header: header}
	owner.AppendChild(n)
	if p.at("export") {
		p.advance()
	}
	n.Keyword = p.advance().Text

	for {
		if !p.atBindingStart() {
			p.err(diag.SynExpectDeclarator, "expected a binding after '"+n.Keyword+"'")
			break
		}
		d := &ast.Declarator{Parent: n, Start: p.tok}
		if p.at("[") || p.at("{") {
			p.scanGroup(n)
		} else {
			p.advance()
		}
		d.Pattern = token.Render(d.Start, p.last)
		if p.at("=") {
			d.Init = true
			p.advance()
			p.scanExpr(n, declaratorStop, exprCtx{noASI: header})
		}
		d.End = p.last
		n.Declarators = append(n.Declarators, d)

		if !p.at(",") {
			break
		}
		p.advance()
	}

	if len(n.Declarators) == 0 {
		// keep the statement renderable; nothing to split
		n.Kind = ast.NodeStmt
		if !header {
			p.scanExpr(n, token.IsTerminator, exprCtx{})
		}
	}
	if !header && p.at(";") {
		p.advance()
	}
	n.End = p.last
	return n
}

func (p *Parser) atBindingStart() bool {
	t := p.tok
	if t == nil {
		return false
	}
	switch t.Kind {
	case token.Ident:
		return true
	case token.Keyword:
		// contextual names such as `yield`, `await`, `static` bind in sloppy code
		switch t.Text {
		case "yield", "await", "static", "let":
			return true
		}
		return false
	case token.Punct:
		return t.Text == "[" || t.Text == "{"
	}
	return false
}
