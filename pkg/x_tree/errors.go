// file:hier/pkg/x_tree/errors.go
package x_tree

import "errors"

// ----------------------------------------------------
// Node errors
// ----------------------------------------------------

var (
	ErrUnsupported      = errors.New("operation not supported on leaf")
	ErrCapacityExceeded = errors.New("composite capacity exceeded")
	ErrNotFound         = errors.New("child not found")
	ErrIndexOutOfRange  = errors.New("child index out of range")
	ErrSlotEmpty        = errors.New("child slot is empty")

	ErrNilNode         = errors.New("nil node")
	ErrAlreadyAttached = errors.New("node already has a parent")
	ErrCycle           = errors.New("node would become its own descendant")
	ErrReleased        = errors.New("node has been released")
)
