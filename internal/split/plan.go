package split

import (
	"errors"
	"fmt"

	"vareach/internal/ast"
	"vareach/internal/token"
)

// ErrInvariantViolation reports malformed input from the parser. The
// declaration is left untouched when it is returned.
var ErrInvariantViolation = errors.New("split: invariant violation")

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariantViolation}, args...)...)
}

// gap classifies the tokens between two adjacent declarators.
type gap struct {
	trailing []*token.Token // comments before the first line break
	brk      *token.Token   // first line break, reused as the statement separator
	leading  []*token.Token // comments after the break
	dropped  []*token.Token // comma, blanks, extra breaks
}

// plan holds every splice point of one declaration.
type plan struct {
	decl   *ast.Node
	parent *ast.Node
	decls  []*ast.Declarator

	prefix []*token.Token // keyword run before the first declarator
	term   *token.Token   // explicit terminator, nil under automatic termination
	indent []*token.Token // blank run opening the declaration's line
	gaps   []gap

	// owner maps each child of decl to the declarator containing it
	owner []int
}

func (s *Splitter) plan(decl *ast.Node) (*plan, error) {
	if decl.Start == nil || decl.End == nil {
		return nil, violation("declaration has no token span")
	}
	span, err := token.CollectBetween(decl.Start, decl.End)
	if err != nil {
		return nil, fmt.Errorf("%w: declaration span: %w", ErrInvariantViolation, err)
	}
	pos := make(map[*token.Token]int, len(span))
	for i, t := range span {
		pos[t] = i
	}

	p := &plan{decl: decl, parent: decl.Parent, decls: decl.Declarators}
	if p.parent.IndexOf(decl) < 0 {
		return nil, violation("declaration is not a child of its parent")
	}

	prevEnd := -1
	for i, d := range p.decls {
		if d == nil || d.Start == nil || d.End == nil {
			return nil, violation("declarator %d has no token span", i)
		}
		si, okStart := pos[d.Start]
		ei, okEnd := pos[d.End]
		if !okStart || !okEnd || si > ei || si <= prevEnd {
			return nil, violation("declarator %d (%q) lies outside the declaration span", i, d.Pattern)
		}
		prevEnd = ei
	}

	first := pos[p.decls[0].Start]
	if first == 0 {
		return nil, violation("first declarator starts at the declaration keyword")
	}
	p.prefix = span[:first]

	for i := 0; i+1 < len(p.decls); i++ {
		g, err := classifyGap(span[pos[p.decls[i].End]+1 : pos[p.decls[i+1].Start]])
		if err != nil {
			return nil, fmt.Errorf("between declarators %d and %d: %w", i, i+1, err)
		}
		p.gaps = append(p.gaps, g)
	}

	last := p.decls[len(p.decls)-1]
	p.term = terminator(span[pos[last.End]+1:])
	p.indent = lineIndent(decl.Start)

	for _, c := range decl.Children {
		ci, ok := pos[c.Start]
		owner := -1
		for i, d := range p.decls {
			if ok && pos[d.Start] <= ci && ci <= pos[d.End] {
				owner = i
				break
			}
		}
		if owner < 0 {
			return nil, violation("nested %s node is not inside any declarator", c.Kind)
		}
		p.owner = append(p.owner, owner)
	}
	return p, nil
}

func classifyGap(toks []*token.Token) (gap, error) {
	var g gap
	seenSep := false
	for _, t := range toks {
		switch {
		case token.IsSeparator(t):
			if seenSep {
				return g, violation("repeated separator %s", t)
			}
			seenSep = true
			g.dropped = append(g.dropped, t)
		case token.IsLineBreak(t):
			if g.brk == nil {
				g.brk = t
			} else {
				g.dropped = append(g.dropped, t)
			}
		case token.IsComment(t):
			if g.brk == nil {
				g.trailing = append(g.trailing, t)
			} else {
				g.leading = append(g.leading, t)
			}
		case token.IsBlank(t):
			g.dropped = append(g.dropped, t)
		default:
			return g, violation("unexpected %s between declarators", t)
		}
	}
	if !seenSep {
		return g, violation("missing separator between declarators")
	}
	return g, nil
}

// terminator returns the explicit ';' that ends the declaration, or nil when
// a line break comes first and the statement relies on automatic termination.
// A ';' parked on the next line (`var a, b\n;[x].forEach(f)`) guards the
// following statement and does not count.
func terminator(tail []*token.Token) *token.Token {
	for _, t := range tail {
		switch {
		case token.IsTerminator(t):
			return t
		case token.IsSeparator(t), token.IsLineBreak(t):
			return nil
		}
	}
	return nil
}

// lineIndent returns the blank run at the start of the line holding t.
func lineIndent(t *token.Token) []*token.Token {
	start := t
	for steps := 0; start.Prev != nil && !token.IsLineBreak(start.Prev) && steps < token.MaxScan; steps++ {
		start = start.Prev
	}
	var out []*token.Token
	for u := start; u != t && token.IsBlank(u); u = u.Next {
		out = append(out, u)
	}
	return out
}
