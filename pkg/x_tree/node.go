// file:hier/pkg/x_tree/node.go

// Package x_tree implements a bounded composite: leaves and fixed-capacity
// composites addressed through one Node interface.
package x_tree

import "fmt"

// Capacity is the fixed number of child slots of a composite.
const Capacity = 10

//---------------------
// Identity & Kind
//---------------------

// ID is a process-unique node identity handed out by an IDGen.
type ID uint64

// Kind tells a leaf from a composite. It never changes after construction.
type Kind uint8

const (
	KindLeaf Kind = iota + 1
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindComposite:
		return "composite"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

//---------------------
// Node Interface
//---------------------

// Node is the uniform surface shared by leaves and composites.
// Child-management calls on a leaf fail with ErrUnsupported.
type Node interface {
	ID() ID
	Kind() Kind
	Parent() Node
	Released() bool

	Operation() DisplayEvent
	OperationAll() ([]DisplayEvent, error)
	Add(child Node) (DisplayEvent, error)
	Remove(child Node) (DisplayEvent, error)
	Child(index int) (Node, DisplayEvent, error)
	Len() int
	Release() []DisplayEvent

	base() *meta
}

//---------------------
// Node Metadata (Shared)
//---------------------

type meta struct {
	id       ID
	kind     Kind
	parent   Node
	released bool
}

func (m *meta) ID() ID           { return m.id }
func (m *meta) Kind() Kind       { return m.kind }
func (m *meta) Parent() Node     { return m.parent }
func (m *meta) Released() bool   { return m.released }
func (m *meta) base() *meta      { return m }
func (m *meta) label() string    { return fmt.Sprintf("%s %d", m.kind, m.id) }
func (m *meta) setParent(p Node) { m.parent = p }

// Operation reports this node's kind and identity.
func (m *meta) Operation() DisplayEvent {
	return m.event(OpOperation, "%s: operation", m.label())
}

func (m *meta) event(op Op, format string, args ...any) DisplayEvent {
	return DisplayEvent{
		Node:  m.id,
		Kind:  m.kind,
		Op:    op,
		Index: -1,
		Text:  fmt.Sprintf(format, args...),
	}
}

// isNil catches typed nil pointers hidden in a Node interface.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Leaf:
		return v == nil
	case *Composite:
		return v == nil
	}
	return false
}
