package split

import (
	"fmt"

	"vareach/internal/ast"
	"vareach/internal/diag"
	"vareach/internal/source"
	"vareach/internal/token"
)

// Splitter rewrites declarations one at a time. It is not safe for concurrent use.
type Splitter struct {
	opts  Options
	rep   diag.Reporter
	count int
}

// New creates a Splitter. A nil reporter drops diagnostics.
func New(opts Options, rep diag.Reporter) *Splitter {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	return &Splitter{opts: opts, rep: rep}
}

// Count returns how many declarations have been split so far.
func (s *Splitter) Count() int { return s.count }

// Split replaces decl with one declaration per declarator and returns the new
// nodes in source order. When decl is left alone the result is []*ast.Node{decl}.
func (s *Splitter) Split(decl *ast.Node) ([]*ast.Node, error) {
	if decl == nil || decl.Kind != ast.NodeVarDecl || len(decl.Declarators) <= 1 {
		return []*ast.Node{decl}, nil
	}
	parent := decl.Parent
	switch {
	case parent == nil:
		return []*ast.Node{decl}, nil
	case parent.Kind == ast.NodeLoop && decl.Header:
		diag.ReportInfo(s.rep, diag.VarSkippedLoopHeader, declSpan(decl),
			"declaration in a loop header is left as is").Emit()
		return []*ast.Node{decl}, nil
	case !parent.Kind.IsStatementList():
		diag.ReportWarning(s.rep, diag.VarSkippedUnbracedBody, declSpan(decl),
			"declaration is the body of '"+parent.Keyword+"' without braces; left as is").Emit()
		return []*ast.Node{decl}, nil
	}

	p, err := s.plan(decl)
	if err != nil {
		return nil, err
	}
	sp := declSpan(decl)
	nodes, err := s.apply(p)
	if err != nil {
		return nil, err
	}
	s.count++
	diag.ReportInfo(s.rep, diag.VarSplit, sp,
		fmt.Sprintf("split '%s' declaration into %d statements", decl.Keyword, len(nodes))).Emit()
	return nodes, nil
}

func (s *Splitter) apply(p *plan) ([]*ast.Node, error) {
	decl := p.decl
	root := decl.Start.Root
	n := len(p.decls)

	nodes := make([]*ast.Node, n)
	var sepLast *token.Token
	for i, d := range p.decls {
		prefix := p.prefix
		if i > 0 {
			prefix = token.CloneChain(p.prefix)
			token.Link(sepLast, prefix[0])
		}
		token.Link(prefix[len(prefix)-1], d.Start)

		node := &ast.Node{
			Kind:        ast.NodeVarDecl,
			Keyword:     decl.Keyword,
			Start:       prefix[0],
			Declarators: []*ast.Declarator{d},
		}
		d.Parent = node

		if i < n-1 {
			g := p.gaps[i]
			for _, t := range g.dropped {
				t.Prev, t.Next = nil, nil
			}
			sep := s.separator(p, g, root)
			token.Link(d.End, sep[0])
			sepLast = sep[len(sep)-1]
			if p.term != nil {
				node.End = sep[0]
			} else {
				node.End = d.End
			}
		} else {
			node.End = decl.End
		}
		nodes[i] = node
	}

	children := decl.Children
	decl.Children = nil
	for i, c := range children {
		nodes[p.owner[i]].AppendChild(c)
	}

	if prog := decl.Root(); prog != nil && prog.Kind == ast.NodeProgram {
		if prog.Start == decl.Start {
			prog.Start = nodes[0].Start
		}
		if prog.End == decl.End {
			prog.End = nodes[n-1].End
		}
	}

	if err := p.parent.ReplaceChild(decl, nodes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	decl.Declarators = nil
	return nodes, nil
}

// separator builds the run placed between two output statements:
// terminator, trailing comments, line break, leading comment lines, indentation.
func (s *Splitter) separator(p *plan, g gap, root token.Owner) []*token.Token {
	var run []*token.Token
	if p.term != nil {
		run = append(run, token.Clone(p.term))
	}
	for _, c := range g.trailing {
		run = append(run, synth(token.Whitespace, " ", root), c)
		s.relocated(c, "comment between declarators now trails the previous declaration")
	}
	brk := g.brk
	if brk == nil {
		brk = synth(token.LineBreak, s.opts.lineBreak(), root)
	}
	run = append(run, brk)
	for _, c := range g.leading {
		run = append(run, token.CloneChain(p.indent)...)
		run = append(run, c, token.Clone(brk))
		s.relocated(c, "comment between declarators now leads the next declaration")
	}
	run = append(run, token.CloneChain(p.indent)...)
	token.LinkRun(run)
	return run
}

func (s *Splitter) relocated(c *token.Token, msg string) {
	diag.ReportWarning(s.rep, diag.VarCommentRelocated, c.Span, msg).Emit()
}

func synth(kind token.Kind, text string, root token.Owner) *token.Token {
	return &token.Token{Kind: kind, Text: text, Root: root}
}

func declSpan(decl *ast.Node) source.Span {
	if decl.Start == nil {
		return source.Span{}
	}
	if decl.End == nil {
		return decl.Start.Span
	}
	return decl.Start.Span.Cover(decl.End.Span)
}

// Visitor adapts a Splitter to ast.Walk: declarations are split and the
// first resulting statement is returned; other nodes pass through.
func Visitor(s *Splitter) ast.VisitFunc {
	return func(n *ast.Node) (*ast.Node, error) {
		if n.Kind != ast.NodeVarDecl {
			return n, nil
		}
		out, err := s.Split(n)
		if err != nil {
			return nil, err
		}
		return out[0], nil
	}
}
