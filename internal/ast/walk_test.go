package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vareach/internal/ast"
)

func named(kind ast.NodeKind, kw string, children ...*ast.Node) *ast.Node {
	n := &ast.Node{Kind: kind, Keyword: kw}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func TestWalkIsPostOrder(t *testing.T) {
	root := named(ast.NodeProgram, "",
		named(ast.NodeVarDecl, "var"),
		named(ast.NodeStmt, "function",
			named(ast.NodeBlock, "",
				named(ast.NodeVarDecl, "let"),
			),
		),
		named(ast.NodeLoop, "for", named(ast.NodeVarDecl, "const")),
	)

	var order []string
	_, err := ast.Walk(root, func(n *ast.Node) (*ast.Node, error) {
		order = append(order, n.Kind.String()+":"+n.Keyword)
		return n, nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{
		"VarDecl:var",
		"VarDecl:let", "Block:", "Stmt:function",
		"VarDecl:const", "Loop:for",
		"Program:",
	}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("visit order (-want +got):\n%s", diff)
	}
}

func TestWalkToleratesSplicesOfCurrentParent(t *testing.T) {
	a := named(ast.NodeVarDecl, "a")
	b := named(ast.NodeVarDecl, "b")
	c := named(ast.NodeVarDecl, "c")
	root := named(ast.NodeProgram, "", a, b, c)

	visits := map[string]int{}
	_, err := ast.Walk(root, func(n *ast.Node) (*ast.Node, error) {
		visits[n.Keyword]++
		if n == b {
			b1, b2 := named(ast.NodeVarDecl, "b1"), named(ast.NodeVarDecl, "b2")
			if err := n.Parent.ReplaceChild(n, []*ast.Node{b1, b2}); err != nil {
				return nil, err
			}
			return b1, nil
		}
		return n, nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for _, kw := range []string{"a", "b", "c", ""} {
		if visits[kw] != 1 {
			t.Fatalf("node %q visited %d times", kw, visits[kw])
		}
	}
	if visits["b1"] != 0 || visits["b2"] != 0 {
		t.Fatal("replacement nodes must not be revisited")
	}
	var kws []string
	for _, n := range root.Children {
		kws = append(kws, n.Keyword)
	}
	if diff := cmp.Diff([]string{"a", "b1", "b2", "c"}, kws); diff != "" {
		t.Fatalf("children (-want +got):\n%s", diff)
	}
}

func TestWalkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	root := named(ast.NodeProgram, "", named(ast.NodeStmt, ""), named(ast.NodeStmt, ""))
	calls := 0
	_, err := ast.Walk(root, func(n *ast.Node) (*ast.Node, error) {
		calls++
		return nil, boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("Walk err=%v calls=%d, want boom after 1 call", err, calls)
	}
}

func TestWalkReplacesReturnedNode(t *testing.T) {
	old := named(ast.NodeStmt, "old")
	root := named(ast.NodeProgram, "", named(ast.NodeStmt, "x"), old)
	repl := named(ast.NodeStmt, "new")
	_, err := ast.Walk(root, func(n *ast.Node) (*ast.Node, error) {
		if n == old {
			return repl, nil
		}
		return n, nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if root.Children[1] != repl || repl.Parent != root || root.Children[0].Next != repl {
		t.Fatal("returned node was not put in place")
	}
}

func TestReplaceChildLinksSiblings(t *testing.T) {
	a, b, c := named(ast.NodeStmt, "a"), named(ast.NodeStmt, "b"), named(ast.NodeStmt, "c")
	root := named(ast.NodeBlock, "", a, b, c)
	x, y := named(ast.NodeStmt, "x"), named(ast.NodeStmt, "y")

	if err := root.ReplaceChild(b, []*ast.Node{x, y}); err != nil {
		t.Fatalf("ReplaceChild: %v", err)
	}
	if a.Next != x || x.Prev != a || x.Next != y || y.Prev != x || y.Next != c || c.Prev != y {
		t.Fatal("sibling links are inconsistent")
	}
	if x.Parent != root || y.Parent != root {
		t.Fatal("parent not assigned")
	}
	if b.Parent != nil || b.Prev != nil || b.Next != nil {
		t.Fatal("replaced node must be detached")
	}
	if err := root.ReplaceChild(b, nil); !errors.Is(err, ast.ErrNotChild) {
		t.Fatalf("ReplaceChild(detached) err = %v, want ErrNotChild", err)
	}
}

func TestDump(t *testing.T) {
	decl := named(ast.NodeVarDecl, "var")
	decl.Declarators = []*ast.Declarator{{Pattern: "a", Init: true}, {Pattern: "b"}}
	root := named(ast.NodeProgram, "", decl, named(ast.NodeLoop, "while"))

	var sb strings.Builder
	if err := ast.Dump(&sb, root); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	want := "Program\n  VarDecl var \"a\"= \"b\"\n  Loop while\n"
	if sb.String() != want {
		t.Fatalf("Dump = %q, want %q", sb.String(), want)
	}
}

func TestNodeKindStatementList(t *testing.T) {
	for k, want := range map[ast.NodeKind]bool{
		ast.NodeProgram: true, ast.NodeBlock: true,
		ast.NodeLoop: false, ast.NodeBranch: false, ast.NodeStmt: false, ast.NodeVarDecl: false,
	} {
		if k.IsStatementList() != want {
			t.Errorf("%s.IsStatementList() = %v", k, !want)
		}
	}
}
