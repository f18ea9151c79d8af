package ast

// VisitFunc is invoked once per node. It returns the node that now stands at
// the visited position: n itself, or a replacement.
type VisitFunc func(n *Node) (*Node, error)

// Walk visits the tree rooted at root in post-order: children before their
// container. Each child list is snapshotted before descending, so a visit may
// splice the current parent's children without disturbing the traversal.
//
// If fn returns a different node and n is still attached to its parent, Walk
// puts the returned node in n's place.
func Walk(root *Node, fn VisitFunc) (*Node, error) {
	if root == nil {
		return nil, nil
	}
	snapshot := make([]*Node, len(root.Children))
	copy(snapshot, root.Children)
	for _, c := range snapshot {
		if _, err := Walk(c, fn); err != nil {
			return nil, err
		}
	}

	parent := root.Parent
	repl, err := fn(root)
	if err != nil {
		return nil, err
	}
	if repl != nil && repl != root && parent != nil && parent.IndexOf(root) >= 0 {
		if err := parent.ReplaceChild(root, []*Node{repl}); err != nil {
			return nil, err
		}
	}
	return repl, nil
}

// Inspect is a read-only pre-order traversal. Returning false skips children.
func Inspect(root *Node, fn func(*Node) bool) {
	if root == nil || !fn(root) {
		return
	}
	for _, c := range root.Children {
		Inspect(c, fn)
	}
}
