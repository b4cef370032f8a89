// file:hier/pkg/x_tree/event.go
package x_tree

// Op names the operation that produced a DisplayEvent.
type Op string

const (
	OpOperation    Op = "operation"
	OpOperationAll Op = "operationAll"
	OpAdd          Op = "add"
	OpRemove       Op = "remove"
	OpGetChild     Op = "getChild"
	OpRelease      Op = "release"
)

// DisplayEvent describes the effect of one operation.
// Presentation is left to whoever consumes it.
type DisplayEvent struct {
	Node       ID     `json:"node"`
	Kind       Kind   `json:"kind"`
	Op         Op     `json:"op"`
	Target     ID     `json:"target"`
	TargetKind Kind   `json:"target_kind,omitempty"`
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Err        error  `json:"-"`
}

func (e DisplayEvent) String() string { return e.Text }

// Failed reports whether the event describes a rejected operation.
func (e DisplayEvent) Failed() bool { return e.Err != nil }

// HasTarget reports whether the event names a second node.
func (e DisplayEvent) HasTarget() bool { return e.TargetKind != 0 }

func (e DisplayEvent) withTarget(n Node) DisplayEvent {
	e.Target = n.ID()
	e.TargetKind = n.Kind()
	return e
}

func (e DisplayEvent) withErr(err error) DisplayEvent {
	e.Err = err
	return e
}
