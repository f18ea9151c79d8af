package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented outline of the tree, one node per line.
func Dump(w io.Writer, root *Node) error {
	var err error
	var rec func(n *Node, depth int)
	rec = func(n *Node, depth int) {
		if err != nil {
			return
		}
		line := strings.Repeat("  ", depth) + n.Kind.String()
		if n.Keyword != "" {
			line += " " + n.Keyword
		}
		if n.Start != nil && n.Kind != NodeProgram {
			line += fmt.Sprintf(" [%d:%d]", n.Start.Span.Start, spanEnd(n))
		}
		for _, d := range n.Declarators {
			line += " " + strconv.Quote(d.Pattern)
			if d.Init {
				line += "="
			}
		}
		if _, err = fmt.Fprintln(w, line); err != nil {
			return
		}
		for _, c := range n.Children {
			rec(c, depth+1)
		}
	}
	rec(root, 0)
	return err
}

func spanEnd(n *Node) uint32 {
	if n.End == nil {
		return n.Start.Span.End
	}
	return n.End.Span.End
}
