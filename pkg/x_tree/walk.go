// file:hier/pkg/x_tree/walk.go
package x_tree

import (
	"fmt"
	"io"
	"strings"
)

//---------------------
// Walk
//---------------------

// Walk visits n and its descendants in pre-order, slot order.
// Returning false from fn skips the children of that node.
func Walk(n Node, fn func(n Node, depth int) bool) {
	if isNil(n) || fn == nil {
		return
	}
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	cn, ok := n.(*Composite)
	if !ok {
		return
	}
	for _, c := range cn.child {
		if c != nil {
			walk(c, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n Node) int {
	var total int
	Walk(n, func(Node, int) bool {
		total++
		return true
	})
	return total
}

// Depth returns the height of the subtree rooted at n; a lone node is 1.
func Depth(n Node) int {
	var h int
	Walk(n, func(_ Node, d int) bool {
		h = max(h, d+1)
		return true
	})
	return h
}

//---------------------
// Tree Dump (Debug)
//---------------------

// Dump writes an indented rendering of the subtree rooted at n.
func Dump(w io.Writer, n Node) {
	if isNil(n) {
		fmt.Fprintln(w, "EMPTY")
		return
	}
	Walk(n, func(c Node, depth int) bool {
		line := dumpPre(depth) + c.base().label()
		if cn, ok := c.(*Composite); ok {
			line += fmt.Sprintf(" [%d/%d]", cn.Len(), Capacity)
		}
		if c.Released() {
			line += " (released)"
		}
		fmt.Fprintln(w, line)
		return true
	})
}

func dumpPre(depth int) string {
	if depth == 0 {
		return "-- "
	}
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString("|__ ")
	return b.String()
}
