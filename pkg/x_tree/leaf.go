// file:hier/pkg/x_tree/leaf.go
package x_tree

import "fmt"

var _ Node = (*Leaf)(nil)

//---------------------
// Leaf Node
//---------------------

// Leaf is a terminal node. It has no child slots.
type Leaf struct {
	meta
}

func (n *Leaf) Len() int { return 0 }

// Release marks the leaf released and detaches it from its parent.
func (n *Leaf) Release() []DisplayEvent {
	if n.released {
		return nil
	}
	detach(n)
	n.released = true
	return []DisplayEvent{n.event(OpRelease, "%s: release", n.label())}
}

//---------------------
// Unsupported Operations
//---------------------

func (n *Leaf) OperationAll() ([]DisplayEvent, error) {
	ev, err := n.unsupported(OpOperationAll)
	return []DisplayEvent{ev}, err
}

func (n *Leaf) Add(child Node) (DisplayEvent, error) {
	return n.unsupported(OpAdd)
}

func (n *Leaf) Remove(child Node) (DisplayEvent, error) {
	return n.unsupported(OpRemove)
}

func (n *Leaf) Child(index int) (Node, DisplayEvent, error) {
	ev, err := n.unsupported(OpGetChild)
	return nil, ev, err
}

func (n *Leaf) unsupported(op Op) (DisplayEvent, error) {
	err := fmt.Errorf("%w: %s on %s", ErrUnsupported, op, n.label())
	return n.event(op, "%s: %s not supported", n.label(), op).withErr(err), err
}
