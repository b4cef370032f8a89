// file:hier/pkg/x_tree/composite.go
package x_tree

import "fmt"

var _ Node = (*Composite)(nil)

//---------------------
// Composite Node
//---------------------

// Composite owns up to Capacity children in fixed slots.
// Removal clears a slot in place; Add reuses the first empty slot.
type Composite struct {
	child [Capacity]Node
	meta
	size int
}

func (n *Composite) Len() int     { return n.size }
func (n *Composite) IsFull() bool { return n.size >= Capacity }

// Slots returns a copy of the slot array; empty slots are nil.
func (n *Composite) Slots() []Node {
	out := make([]Node, Capacity)
	copy(out, n.child[:])
	return out
}

//---------------------
// Child Management
//---------------------

// Add attaches child to the first empty slot and takes ownership of it.
// On any error the child stays with the caller.
func (n *Composite) Add(child Node) (DisplayEvent, error) {
	if n.released {
		return n.fail(OpAdd, ErrReleased, "%s: add on released node", n.label())
	}
	if isNil(child) {
		return n.fail(OpAdd, ErrNilNode, "%s: add nil node", n.label())
	}

	cl := child.base().label()
	switch {
	case child.Released():
		ev, err := n.fail(OpAdd, ErrReleased, "%s: cannot add released %s", n.label(), cl)
		return ev.withTarget(child), err
	case child.Parent() != nil:
		ev, err := n.fail(OpAdd, ErrAlreadyAttached, "%s: cannot add %s: already attached to %s",
			n.label(), cl, child.Parent().base().label())
		return ev.withTarget(child), err
	case n.selfOrAncestor(child):
		ev, err := n.fail(OpAdd, ErrCycle, "%s: cannot add %s: cycle", n.label(), cl)
		return ev.withTarget(child), err
	}

	for k := range n.child {
		if n.child[k] != nil {
			continue
		}
		n.child[k] = child
		n.size++
		child.base().setParent(n)

		ev := n.event(OpAdd, "%s: add %s", n.label(), cl).withTarget(child)
		ev.Index = k
		return ev, nil
	}

	ev, err := n.fail(OpAdd, ErrCapacityExceeded, "%s: cannot add %s: all %d slots occupied",
		n.label(), cl, Capacity)
	return ev.withTarget(child), err
}

// Remove clears the slot holding a child with the same identity.
// Ownership goes back to the caller; the child is not released.
func (n *Composite) Remove(child Node) (DisplayEvent, error) {
	if n.released {
		return n.fail(OpRemove, ErrReleased, "%s: remove on released node", n.label())
	}
	if isNil(child) {
		return n.fail(OpRemove, ErrNilNode, "%s: remove nil node", n.label())
	}

	for k, c := range n.child {
		if c == nil || c.ID() != child.ID() {
			continue
		}
		n.child[k] = nil
		n.size--
		c.base().setParent(nil)

		ev := n.event(OpRemove, "%s: remove %s", n.label(), c.base().label()).withTarget(c)
		ev.Index = k
		return ev, nil
	}

	ev, err := n.fail(OpRemove, ErrNotFound, "%s: no child %s to remove", n.label(), child.base().label())
	return ev.withTarget(child), err
}

// Child returns a borrowed reference to the child at index.
func (n *Composite) Child(index int) (Node, DisplayEvent, error) {
	if n.released {
		ev, err := n.fail(OpGetChild, ErrReleased, "%s: get child on released node", n.label())
		return nil, ev, err
	}
	if index < 0 || index >= Capacity {
		ev, err := n.fail(OpGetChild, ErrIndexOutOfRange, "%s: index %d out of range [0, %d)",
			n.label(), index, Capacity)
		ev.Index = index
		return nil, ev, err
	}

	c := n.child[index]
	if c == nil {
		ev, err := n.fail(OpGetChild, ErrSlotEmpty, "%s: no child at index %d", n.label(), index)
		ev.Index = index
		return nil, ev, err
	}

	ev := n.event(OpGetChild, "%s: get child at index %d (id = %d)", n.label(), index, c.ID()).withTarget(c)
	ev.Index = index
	return c, ev, nil
}

//---------------------
// Aggregate Operations
//---------------------

// OperationAll walks the subtree in pre-order. Every composite announces
// itself, then each occupied slot reports its operation; nested composites
// recurse right after their own operation event.
func (n *Composite) OperationAll() ([]DisplayEvent, error) {
	if n.released {
		ev, err := n.fail(OpOperationAll, ErrReleased, "%s: operationAll on released node", n.label())
		return []DisplayEvent{ev}, err
	}
	return n.operationAll(nil), nil
}

func (n *Composite) operationAll(out []DisplayEvent) []DisplayEvent {
	out = append(out, n.event(OpOperationAll, "%s: operationAll", n.label()))
	for _, c := range n.child {
		if c == nil {
			continue
		}
		out = append(out, c.Operation())
		if cn, ok := c.(*Composite); ok {
			out = cn.operationAll(out)
		}
	}
	return out
}

// Release detaches the composite from its parent and releases every
// child it still owns, deepest first.
func (n *Composite) Release() []DisplayEvent {
	if n.released {
		return nil
	}
	detach(n)

	var out []DisplayEvent
	for k, c := range n.child {
		if c == nil {
			continue
		}
		n.child[k] = nil
		c.base().setParent(nil)
		out = append(out, c.Release()...)
	}
	n.size = 0
	n.released = true
	return append(out, n.event(OpRelease, "%s: release", n.label()))
}

//---------------------
// Helpers
//---------------------

func (n *Composite) fail(op Op, sentinel error, format string, args ...any) (DisplayEvent, error) {
	err := fmt.Errorf("%w: %s", sentinel, n.label())
	return n.event(op, format, args...).withErr(err), err
}

// selfOrAncestor reports whether c is n or sits above n.
func (n *Composite) selfOrAncestor(c Node) bool {
	for p := Node(n); !isNil(p); p = p.Parent() {
		if p == c {
			return true
		}
	}
	return false
}

// detachChild clears the slot holding exactly c.
func (n *Composite) detachChild(c Node) {
	for k := range n.child {
		if n.child[k] == c {
			n.child[k] = nil
			n.size--
			c.base().setParent(nil)
			return
		}
	}
}

// detach drops n from its parent's slots, if any.
func detach(n Node) {
	if p, ok := n.Parent().(*Composite); ok && p != nil {
		p.detachChild(n)
	}
}
