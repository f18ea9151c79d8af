package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"vareach/internal/ast"
	"vareach/internal/source"
	"vareach/internal/token"
)

// CheckSpanInvariants verifies a freshly lexed chain against its file:
// 1) token spans are contiguous and start at offset zero
// 2) every token text equals the file bytes under its span
// 3) the last span ends at the end of the content
func CheckSpanInvariants(first *token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var off uint32
	for _, t := range token.Slice(first, nil) {
		sp := t.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %s span file mismatch: got=%d want=%d", t, sp.File, sf.ID)
		}
		if sp.Start != off {
			return fmt.Errorf("token %s starts at %d, want %d", t, sp.Start, off)
		}
		if sp.End <= sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %s has bad span %v", t, sp)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != t.Text {
			return fmt.Errorf("token text %q differs from source %q", t.Text, got)
		}
		off = sp.End
	}
	if off != lenContent {
		return fmt.Errorf("tokens cover %d of %d bytes", off, lenContent)
	}
	return nil
}

// CheckChain verifies the token chain and the node tree after any rewrite:
// 1) the chain is bidirectionally consistent and runs from prog.Start to prog.End
// 2) every node span is reachable inside the chain and every token has prog as Root
// 3) children agree with their Parent and Prev/Next sibling links
// 4) declarator spans lie inside their declaration and point back at it
func CheckChain(prog *ast.Node) error {
	if prog == nil || prog.Kind != ast.NodeProgram {
		return fmt.Errorf("not a program node")
	}
	if prog.Start == nil {
		if prog.End != nil || len(prog.Children) > 0 {
			return fmt.Errorf("empty program with end or children")
		}
		return nil
	}
	tail, err := token.Validate(prog.Start)
	if err != nil {
		return err
	}
	if tail != prog.End {
		return fmt.Errorf("chain tail %s is not program end %s", tail, prog.End)
	}
	for _, t := range token.Slice(prog.Start, nil) {
		if t.Root != token.Owner(prog) {
			return fmt.Errorf("token %s has foreign root", t)
		}
	}
	return checkNode(prog)
}

func checkNode(n *ast.Node) error {
	if n.Kind != ast.NodeProgram {
		if n.Start == nil || n.End == nil {
			return fmt.Errorf("%s node has nil bounds", n.Kind)
		}
		if !token.Reachable(n.Start, n.End) {
			return fmt.Errorf("%s node %s..%s: end not reachable", n.Kind, n.Start, n.End)
		}
	}
	for i, d := range n.Declarators {
		if d.Parent != n {
			return fmt.Errorf("declarator %q has wrong parent", d.Pattern)
		}
		if !token.Reachable(n.Start, d.Start) || !token.Reachable(d.Start, d.End) || !token.Reachable(d.End, n.End) {
			return fmt.Errorf("declarator %d (%q) lies outside %s", i, d.Pattern, n.Text())
		}
	}
	for i, c := range n.Children {
		if c.Parent != n {
			return fmt.Errorf("child %d of %s has wrong parent", i, n.Kind)
		}
		var wantPrev, wantNext *ast.Node
		if i > 0 {
			wantPrev = n.Children[i-1]
		}
		if i+1 < len(n.Children) {
			wantNext = n.Children[i+1]
		}
		if c.Prev != wantPrev || c.Next != wantNext {
			return fmt.Errorf("child %d of %s has inconsistent sibling links", i, n.Kind)
		}
		if err := checkNode(c); err != nil {
			return err
		}
	}
	return nil
}
