package split_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"vareach/internal/ast"
	"vareach/internal/diag"
	"vareach/internal/parser"
	"vareach/internal/source"
	"vareach/internal/split"
	"vareach/internal/testkit"
	"vareach/internal/token"
)

func parse(t *testing.T, src string, bag *diag.Bag) parser.Result {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	res := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return res
}

func format(t *testing.T, src string, opts split.Options) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(100)
	res := parse(t, src, bag)
	s := split.New(opts, diag.BagReporter{Bag: bag})
	if _, err := ast.Walk(res.Program, split.Visitor(s)); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if err := testkit.CheckChain(res.Program); err != nil {
		t.Fatalf("CheckChain: %v", err)
	}
	return token.Render(res.Program.Start, res.Program.End), bag
}

func TestSplitOutput(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"explicit terminator",
			"var a = 'hello', b = 'world';",
			"var a = 'hello';\nvar b = 'world';"},
		{"automatic termination",
			"var a = 1, b = 2\nfoo()\n",
			"var a = 1\nvar b = 2\nfoo()\n"},
		{"indented in function",
			"function f() {\n  var a = 1, b = 2;\n  return a + b;\n}\n",
			"function f() {\n  var a = 1;\n  var b = 2;\n  return a + b;\n}\n"},
		{"hoisted with tabs",
			"function f() {\n\tvar a, b, c;\n\ta = 1;\n}\n",
			"function f() {\n\tvar a;\n\tvar b;\n\tvar c;\n\ta = 1;\n}\n"},
		{"comma last reuses break",
			"var a = 1,\n    b = 2;\n",
			"var a = 1;\nvar b = 2;\n"},
		{"comma first",
			"var a = 1\n  , b = 2\n  , c = 3;\n",
			"var a = 1;\nvar b = 2;\nvar c = 3;\n"},
		{"comma first automatic",
			"var x = 1\n  , y = 2\nfoo()\n",
			"var x = 1\nvar y = 2\nfoo()\n"},
		{"blank line between declarators",
			"var a,\n\n  b;\n",
			"var a;\nvar b;\n"},
		{"semicolon on the next line",
			"var a, b\n;[1, 2].forEach(f)\n",
			"var a\nvar b\n;[1, 2].forEach(f)\n"},
		{"terminator after trailing comment",
			"var a, b /* x */;\n",
			"var a;\nvar b /* x */;\n"},
		{"program without trailing break",
			"var a, b",
			"var a\nvar b"},
		{"export prefix",
			"export let a = 1, b;\n",
			"export let a = 1;\nexport let b;\n"},
		{"destructuring",
			"const {a, b} = o, [c] = arr;\n",
			"const {a, b} = o;\nconst [c] = arr;\n"},
		{"multi-line declarators",
			"var a = {\n  x: 1\n}, b = [\n  2\n];\n",
			"var a = {\n  x: 1\n};\nvar b = [\n  2\n];\n"},
		{"nested declaration inside initializer",
			"const f = () => {\n  let p = 1, q = 2\n  return p + q\n}, g = 1;\n",
			"const f = () => {\n  let p = 1\n  let q = 2\n  return p + q\n};\nconst g = 1;\n"},
		{"surrounding code untouched",
			"foo();  // keep\nvar a, b;\n/* tail */ bar()\n",
			"foo();  // keep\nvar a;\nvar b;\n/* tail */ bar()\n"},
		{"same line as other statement",
			"  x(); var a, b;\n",
			"  x(); var a;\n  var b;\n"},
		{"already split",
			"var a = 1;\nvar b = 2;\n",
			"var a = 1;\nvar b = 2;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := format(t, tt.src, split.Options{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitLineBreakOption(t *testing.T) {
	got, _ := format(t, "var a, b;\r\nvar c = 1,\r\n  d;\r\n", split.Options{LineBreak: "\r\n"})
	want := "var a;\r\nvar b;\r\nvar c = 1;\r\nvar d;\r\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output (-want +got):\n%s", diff)
	}
}

func TestSplitSkipsLoopHeaders(t *testing.T) {
	src := "for (var i = 0, j = 1; i < j; i++) {}\nfor (let k = 0, m; ;) {}\n"
	got, bag := format(t, src, split.Options{})
	if got != src {
		t.Fatalf("loop header rewritten:\n%s", got)
	}
	if bag.Count(diag.VarSkippedLoopHeader) != 2 || bag.Count(diag.VarSplit) != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestSplitSkipsUnbracedBody(t *testing.T) {
	src := "if (x) var a, b;\nelse { var c, d; }\n"
	got, bag := format(t, src, split.Options{})
	want := "if (x) var a, b;\nelse { var c;\nvar d; }\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output (-want +got):\n%s", diff)
	}
	if bag.Count(diag.VarSkippedUnbracedBody) != 1 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestSplitSkipsUnbracedLoopBody(t *testing.T) {
	src := "do var a, b; while (0)\nfor (;;) var c, d;\nwhile (x) { var e, f; }\n"
	got, bag := format(t, src, split.Options{})
	want := "do var a, b; while (0)\nfor (;;) var c, d;\nwhile (x) { var e;\nvar f; }\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output (-want +got):\n%s", diff)
	}
	if bag.Count(diag.VarSkippedUnbracedBody) != 2 || bag.Count(diag.VarSkippedLoopHeader) != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
}

func TestSplitRelocatesComments(t *testing.T) {
	tests := []struct {
		src      string
		want     string
		warnings int
	}{
		{"var a = 1, // one\n    // two\n    b = 2;\n",
			"var a = 1; // one\n// two\nvar b = 2;\n", 2},
		{"  var a, /* x */ b;\n",
			"  var a; /* x */\n  var b;\n", 1},
		{"var a /* x */, b\n",
			"var a /* x */\nvar b\n", 1},
		{"function f() {\n    var a\n      // lead\n      , b;\n}\n",
			"function f() {\n    var a;\n    // lead\n    var b;\n}\n", 1},
	}
	for _, tt := range tests {
		got, bag := format(t, tt.src, split.Options{})
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q (-want +got):\n%s", tt.src, diff)
		}
		if n := bag.Count(diag.VarCommentRelocated); n != tt.warnings {
			t.Errorf("%q: %d relocation warnings, want %d", tt.src, n, tt.warnings)
		}
	}
}

func TestSplitReturnsNodesInPlace(t *testing.T) {
	bag := diag.NewBag(100)
	res := parse(t, "foo();\nvar a = 1, b, c = 3;\nbar();\n", bag)
	decl := res.Program.Children[1]
	prev, next := decl.Prev, decl.Next

	s := split.New(split.Options{}, nil)
	out, err := s.Split(decl)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(out) != 3 || s.Count() != 1 {
		t.Fatalf("got %d nodes, count %d", len(out), s.Count())
	}
	for i, n := range out {
		if n.Kind != ast.NodeVarDecl || n.Keyword != "var" || len(n.Declarators) != 1 {
			t.Fatalf("node %d malformed: %+v", i, n)
		}
		if n.Declarators[0].Parent != n || n.Parent != res.Program {
			t.Fatalf("node %d has stale parent links", i)
		}
	}
	if prev.Next != out[0] || out[0].Prev != prev || out[2].Next != next || next.Prev != out[2] {
		t.Fatal("outer sibling links not rewired")
	}
	want := []*ast.Node{prev, out[0], out[1], out[2], next}
	if len(res.Program.Children) != len(want) {
		t.Fatalf("program has %d children, want %d", len(res.Program.Children), len(want))
	}
	for i, n := range want {
		if res.Program.Children[i] != n {
			t.Fatalf("child %d is not the expected node", i)
		}
	}
	if err := testkit.CheckChain(res.Program); err != nil {
		t.Fatalf("CheckChain: %v", err)
	}
	texts := []string{out[0].Text(), out[1].Text(), out[2].Text()}
	if diff := cmp.Diff([]string{"var a = 1;", "var b;", "var c = 3;"}, texts); diff != "" {
		t.Fatalf("node texts (-want +got):\n%s", diff)
	}
}

func TestSplitIdentity(t *testing.T) {
	bag := diag.NewBag(100)
	res := parse(t, "var a = 1;\n", bag)
	decl := res.Program.Children[0]
	before := token.Render(res.Program.Start, res.Program.End)

	out, err := split.New(split.Options{}, nil).Split(decl)
	if err != nil || len(out) != 1 || out[0] != decl {
		t.Fatalf("Split of a single declarator = %v, %v", out, err)
	}
	if token.Render(res.Program.Start, res.Program.End) != before || res.Program.Children[0] != decl {
		t.Fatal("identity split mutated the tree")
	}
}

func TestSplitRepointsProgramEnds(t *testing.T) {
	bag := diag.NewBag(100)
	res := parse(t, "let a, b", bag)
	out, err := split.New(split.Options{}, nil).Split(res.Program.Children[0])
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if res.Program.Start != out[0].Start || res.Program.End != out[1].End {
		t.Fatal("program bounds not repointed")
	}
	if res.Program.End.Text != "b" {
		t.Fatalf("program end = %s", res.Program.End)
	}
}

func TestSplitRejectsMalformedDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(decl *ast.Node)
	}{
		{"declarator outside span", func(decl *ast.Node) {
			decl.Declarators[1].Start = &token.Token{Kind: token.Ident, Text: "z"}
		}},
		{"nil end", func(decl *ast.Node) {
			decl.Declarators[0].End = nil
		}},
		{"overlapping declarators", func(decl *ast.Node) {
			decl.Declarators[1].Start = decl.Declarators[0].Start
		}},
		{"missing separator", func(decl *ast.Node) {
			decl.Declarators[0].End = decl.Declarators[1].Start.Prev.Prev
		}},
		{"declaration end unreachable", func(decl *ast.Node) {
			decl.End = &token.Token{Kind: token.Punct, Text: ";"}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(100)
			src := "var a = 1, b = 2;\n"
			res := parse(t, src, bag)
			decl := res.Program.Children[0]
			tt.tamper(decl)

			_, err := split.New(split.Options{}, nil).Split(decl)
			if !errors.Is(err, split.ErrInvariantViolation) {
				t.Fatalf("err = %v, want ErrInvariantViolation", err)
			}
			if got := token.Render(res.Chain.First(), nil); got != src {
				t.Fatalf("chain mutated on failure: %q", got)
			}
			if len(res.Program.Children) != 1 || res.Program.Children[0] != decl {
				t.Fatal("tree mutated on failure")
			}
		})
	}
}

func TestVisitorPassesOtherNodesThrough(t *testing.T) {
	visit := split.Visitor(split.New(split.Options{}, nil))
	n := &ast.Node{Kind: ast.NodeStmt}
	got, err := visit(n)
	if err != nil || got != n {
		t.Fatalf("visit(Stmt) = %v, %v", got, err)
	}
}

func TestSplitReportsEachSplit(t *testing.T) {
	_, bag := format(t, "var a, b;\nlet c, d, e;\nconst f = 1;\n", split.Options{})
	if bag.Count(diag.VarSplit) != 2 {
		t.Fatalf("VarSplit count = %d, want 2", bag.Count(diag.VarSplit))
	}
}
