package ast

import (
	"errors"
	"fmt"

	"vareach/internal/token"
)

// ErrNotChild is returned when a node is not among its parent's children.
var ErrNotChild = errors.New("ast: node is not a child of parent")

// Declarator is one `pattern (= init)?` unit of a declaration.
type Declarator struct {
	Pattern string
	Init    bool
	Start   *token.Token
	End     *token.Token
	Parent  *Node
}

// Node is a statement-level syntax node referencing a span of the token chain.
// Prev/Next link siblings inside Parent.Children. Parent is a lookup only.
type Node struct {
	Kind    NodeKind
	Keyword string // var/let/const for declarations, for/while/do/if/... for control nodes
	Header  bool   // declaration inside a for-loop header

	Start *token.Token
	End   *token.Token

	Prev   *Node
	Next   *Node
	Parent *Node

	Children    []*Node
	Declarators []*Declarator
}

// NewProgram creates a root node over the chain first..last.
func NewProgram(first, last *token.Token) *Node {
	return &Node{Kind: NodeProgram, Start: first, End: last}
}

// ChainBounds implements token.Owner for program nodes.
func (n *Node) ChainBounds() (first, last *token.Token) {
	return n.Start, n.End
}

// Root climbs Parent links up to the outermost node.
func (n *Node) Root() *Node {
	r := n
	for r != nil && r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Text renders the node's span.
func (n *Node) Text() string {
	if n == nil || n.Start == nil {
		return ""
	}
	return token.Render(n.Start, n.End)
}

// AppendChild adds c as the last child and links siblings.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	c.Next = nil
	c.Prev = nil
	if k := len(n.Children); k > 0 {
		last := n.Children[k-1]
		last.Next = c
		c.Prev = last
	}
	n.Children = append(n.Children, c)
}

// IndexOf returns the position of child in n.Children or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// ReplaceChild replaces old with repl at old's index in one splice.
// Sibling links are rewired across the boundary and inside repl; every node in
// repl gets n as parent. old is detached.
func (n *Node) ReplaceChild(old *Node, repl []*Node) error {
	idx := n.IndexOf(old)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotChild, old.Kind)
	}

	children := make([]*Node, 0, len(n.Children)-1+len(repl))
	children = append(children, n.Children[:idx]...)
	children = append(children, repl...)
	children = append(children, n.Children[idx+1:]...)

	prev, next := old.Prev, old.Next
	for i, r := range repl {
		r.Parent = n
		if i == 0 {
			r.Prev = prev
		} else {
			r.Prev = repl[i-1]
		}
		if i == len(repl)-1 {
			r.Next = next
		} else {
			r.Next = repl[i+1]
		}
	}
	if len(repl) > 0 {
		if prev != nil {
			prev.Next = repl[0]
		}
		if next != nil {
			next.Prev = repl[len(repl)-1]
		}
	} else {
		if prev != nil {
			prev.Next = next
		}
		if next != nil {
			next.Prev = prev
		}
	}

	n.Children = children
	old.Parent, old.Prev, old.Next = nil, nil, nil
	return nil
}

// CountKind counts nodes of kind k in the subtree rooted at n.
func (n *Node) CountKind(k NodeKind) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Kind == k {
		count++
	}
	for _, c := range n.Children {
		count += c.CountKind(k)
	}
	return count
}
