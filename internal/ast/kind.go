package ast

// NodeKind is the closed set of node categories. Switches over it are exhaustive.
type NodeKind uint8

const (
	// NodeProgram is the root. Its Start/End are the ends of the whole chain.
	NodeProgram NodeKind = iota
	// NodeBlock is a braced statement list.
	NodeBlock
	// NodeVarDecl is a var/let/const declaration with one or more declarators.
	NodeVarDecl
	// NodeLoop is for/for-in/for-of/while/do-while. Header declarations are its children.
	NodeLoop
	// NodeBranch is if/else/with/labelled statement owning an unbraced or braced body.
	NodeBranch
	// NodeStmt is any other statement; nested blocks (function bodies) are its children.
	NodeStmt
)

var nodeKindNames = [...]string{
	NodeProgram: "Program",
	NodeBlock:   "Block",
	NodeVarDecl: "VarDecl",
	NodeLoop:    "Loop",
	NodeBranch:  "Branch",
	NodeStmt:    "Stmt",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// IsStatementList reports whether nodes of this kind own an ordered statement list
// that declarations can be split into.
func (k NodeKind) IsStatementList() bool {
	switch k {
	case NodeProgram, NodeBlock:
		return true
	case NodeVarDecl, NodeLoop, NodeBranch, NodeStmt:
		return false
	}
	return false
}
