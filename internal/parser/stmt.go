package parser

import (
	"vareach/internal/ast"
	"vareach/internal/diag"
	"vareach/internal/token"
)

// parseStatementList parses statements into owner until EOF or, when inBlock,
// the closing brace (left unconsumed).
func (p *Parser) parseStatementList(owner *ast.Node, inBlock bool) {
	for p.tok != nil {
		if p.at("}") {
			if inBlock {
				return
			}
			p.err(diag.SynUnbalancedClose, "unexpected '}'")
			p.parseStray(owner)
			continue
		}
		before := p.tok
		p.parseStatement(owner)
		if p.tok == before {
			// nothing consumed; make progress
			p.parseStray(owner)
		}
	}
}

// parseStray wraps a single unexpected token as a statement.
func (p *Parser) parseStray(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeStmt, Start: p.tok, End: p.tok}
	owner.AppendChild(n)
	p.advance()
}

func (p *Parser) parseStatement(owner *ast.Node) {
	t := p.tok
	if t == nil {
		return
	}
	switch {
	case t.Is("{"):
		p.parseBlock(owner)
	case t.Is(";"):
		p.parseStray(owner)
	case t.Is(")") || t.Is("]"):
		p.err(diag.SynUnbalancedClose, "unexpected '"+t.Text+"'")
		p.parseStray(owner)
	case p.atVarDecl(t):
		p.parseVarDecl(owner, t, false)
	case t.Is("export") && p.atVarDecl(p.peek()):
		p.parseVarDecl(owner, t, false)
	case t.Is("for"):
		p.parseFor(owner)
	case t.Is("while"):
		p.parseWhile(owner)
	case t.Is("do"):
		p.parseDoWhile(owner)
	case t.Is("if"):
		p.parseIf(owner)
	case t.Is("with"):
		p.parseWith(owner)
	case t.Is("try"):
		p.parseTry(owner)
	case t.Is("case") || t.Is("default"):
		p.parseCaseLabel(owner)
	case t.Kind == token.Ident && p.peek().Is(":"):
		p.parseLabel(owner)
	default:
		p.parseGeneric(owner)
	}
}

// atVarDecl reports whether t starts a var/let/const declaration.
// `let` is only a declaration when a binding follows it.
func (p *Parser) atVarDecl(t *token.Token) bool {
	if t == nil || t.Kind != token.Keyword || !token.IsDeclKeyword(t.Text) {
		return false
	}
	if t.Text != "let" {
		return true
	}
	next := token.NextSignificant(t)
	switch {
	case next == nil:
		return false
	case next.Kind == token.Ident:
		return true
	case next.Is("[") || next.Is("{"):
		return true
	case next.Kind == token.Keyword:
		return next.Text != "in" && next.Text != "instanceof"
	}
	return false
}

func (p *Parser) parseBlock(owner *ast.Node) *ast.Node {
	open := p.tok
	n := &ast.Node{Kind: ast.NodeBlock, Start: open}
	owner.AppendChild(n)
	p.advance()
	p.parseStatementList(n, true)
	if p.at("}") {
		p.advance()
	} else {
		p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed '{'")
	}
	n.End = p.last
	return n
}

// parseGeneric consumes any other statement to its end, descending into
// nested blocks such as function bodies.
func (p *Parser) parseGeneric(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeStmt, Start: p.tok}
	if p.tok.Kind == token.Keyword {
		n.Keyword = p.tok.Text
	}
	owner.AppendChild(n)

	ctx := exprCtx{declStmt: p.atDeclarationForm()}
	switch n.Keyword {
	case "return", "break", "continue", "throw":
		ctx.restricted = p.tok
	}
	if p.at("(") || p.at("[") {
		p.scanGroup(n)
	} else {
		p.advance()
	}
	p.scanExpr(n, token.IsTerminator, ctx)
	if p.at(";") {
		p.advance()
	}
	n.End = p.last
}

// atDeclarationForm reports function and class declarations, which end at
// their closing brace rather than at a line break.
func (p *Parser) atDeclarationForm() bool {
	t := p.tok
	for i := 0; i < 3 && t != nil; i++ {
		switch {
		case t.Is("function") || t.Is("class"):
			return true
		case t.Is("export") || t.Is("default") || (t.Kind == token.Ident && t.Text == "async"):
			t = token.NextSignificant(t)
		default:
			return false
		}
	}
	return false
}

// parseCaseLabel consumes `case expr:` or `default:`.
func (p *Parser) parseCaseLabel(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeStmt, Keyword: p.tok.Text, Start: p.tok}
	owner.AppendChild(n)
	p.advance()
	p.scanExpr(n, func(t *token.Token) bool { return t.Is(":") }, exprCtx{noASI: true})
	if p.at(":") {
		p.advance()
	} else {
		p.err(diag.SynUnexpectedToken, "expected ':' after "+n.Keyword)
	}
	n.End = p.last
}
