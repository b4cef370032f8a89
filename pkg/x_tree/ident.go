// file:hier/pkg/x_tree/ident.go
package x_tree

import "sync/atomic"

//---------------------
// Identity Generator
//---------------------

// IDGen hands out node identities. Identities start at the generator's
// base value, grow by one per node and are never reused.
// Safe for concurrent use.
type IDGen struct {
	next atomic.Uint64
}

// NewIDGen creates a generator whose first identity is 0.
func NewIDGen() *IDGen {
	return &IDGen{}
}

// NewIDGenFrom creates a generator whose first identity is start.
func NewIDGenFrom(start ID) *IDGen {
	g := &IDGen{}
	g.next.Store(uint64(start))
	return g
}

// Next reserves and returns the next identity.
func (g *IDGen) Next() ID {
	return ID(g.next.Add(1) - 1)
}

// Peek returns the identity the next node will receive.
func (g *IDGen) Peek() ID {
	return ID(g.next.Load())
}

// NewLeaf creates a leaf with a fresh identity.
func (g *IDGen) NewLeaf() *Leaf {
	return &Leaf{meta: meta{id: g.Next(), kind: KindLeaf}}
}

// NewComposite creates an empty composite with a fresh identity.
func (g *IDGen) NewComposite() *Composite {
	return &Composite{meta: meta{id: g.Next(), kind: KindComposite}}
}

//---------------------
// Default Generator
//---------------------

// Default backs the package-level constructors.
var Default = NewIDGen()

// NewLeaf creates a leaf from the Default generator.
func NewLeaf() *Leaf { return Default.NewLeaf() }

// NewComposite creates a composite from the Default generator.
func NewComposite() *Composite { return Default.NewComposite() }
