package parser

import (
	"vareach/internal/ast"
	"vareach/internal/diag"
)

func (p *Parser) parseFor(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeLoop, Keyword: "for", Start: p.tok}
	owner.AppendChild(n)
	p.advance()
	if p.at("await") {
		p.advance()
	}
	if !p.at("(") {
		p.err(diag.SynForBadHeader, "expected '(' after 'for'")
		n.End = p.last
		return
	}
	open := p.advance()
	if p.atVarDecl(p.tok) {
		p.parseVarDecl(n, p.tok, true)
	}
	p.scanExpr(n, nil, exprCtx{noASI: true})
	if p.at(")") {
		p.advance()
	} else {
		p.errAt(diag.SynForBadHeader, open.Span, "unclosed loop header")
	}
	p.parseBody(n)
	n.End = p.last
}

func (p *Parser) parseWhile(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeLoop, Keyword: "while", Start: p.tok}
	owner.AppendChild(n)
	p.advance()
	p.parseCondition(n)
	p.parseBody(n)
	n.End = p.last
}

func (p *Parser) parseDoWhile(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeLoop, Keyword: "do", Start: p.tok}
	owner.AppendChild(n)
	p.advance()
	p.parseBody(n)
	if p.at("while") {
		p.advance()
		p.parseCondition(n)
		if p.at(";") {
			p.advance()
		}
	} else {
		p.err(diag.SynUnexpectedToken, "expected 'while' after do body")
	}
	n.End = p.last
}

func (p *Parser) parseIf(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeBranch, Keyword: "if", Start: p.tok}
	owner.AppendChild(n)
	p.advance()
	p.parseCondition(n)
	p.parseBody(n)
	if p.at("else") {
		e := &ast.Node{Kind: ast.NodeBranch, Keyword: "else", Start: p.tok}
		n.AppendChild(e)
		p.advance()
		p.parseBody(e)
		e.End = p.last
	}
	n.End = p.last
}

func (p *Parser) parseWith(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeBranch, Keyword: "with", Start: p.tok}
	owner.AppendChild(n)
	p.advance()
	p.parseCondition(n)
	p.parseBody(n)
	n.End = p.last
}

func (p *Parser) parseLabel(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeBranch, Keyword: "label", Start: p.tok}
	owner.AppendChild(n)
	p.advance() // name
	p.advance() // ':'
	p.parseBody(n)
	n.End = p.last
}

// parseTry keeps try/catch/finally blocks under one statement node.
func (p *Parser) parseTry(owner *ast.Node) {
	n := &ast.Node{Kind: ast.NodeStmt, Keyword: "try", Start: p.tok}
	owner.AppendChild(n)
	p.advance()
	p.expectBlock(n)
	if p.at("catch") {
		p.advance()
		if p.at("(") {
			p.scanGroup(n)
		}
		p.expectBlock(n)
	}
	if p.at("finally") {
		p.advance()
		p.expectBlock(n)
	}
	n.End = p.last
}

func (p *Parser) expectBlock(n *ast.Node) {
	if !p.at("{") {
		p.err(diag.SynUnexpectedToken, "expected '{'")
		return
	}
	p.parseBlock(n)
}

func (p *Parser) parseCondition(n *ast.Node) {
	if !p.at("(") {
		p.err(diag.SynUnexpectedToken, "expected '(' after '"+n.Keyword+"'")
		return
	}
	p.scanGroup(n)
}

// parseBody parses exactly one statement, braced or not, under n.
func (p *Parser) parseBody(n *ast.Node) {
	if p.tok == nil || p.at("}") {
		p.err(diag.SynUnexpectedToken, "expected a statement")
		return
	}
	if p.at(";") {
		e := &ast.Node{Kind: ast.NodeStmt, Start: p.tok, End: p.tok}
		n.AppendChild(e)
		p.advance()
		return
	}
	p.parseStatement(n)
}
