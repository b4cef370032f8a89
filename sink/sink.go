// Package sink delivers x_tree display events to consoles, loggers and
// message buses. The tree itself never performs I/O.
package sink

import (
	"github.com/rskv-p/hier/pkg/x_tree"
)

// Sink consumes display events.
type Sink interface {
	Emit(ev x_tree.DisplayEvent) error
	Close() error
}

// Func adapts a plain function to Sink. Close is a no-op.
type Func func(ev x_tree.DisplayEvent) error

func (f Func) Emit(ev x_tree.DisplayEvent) error { return f(ev) }
func (f Func) Close() error                      { return nil }

// EmitAll sends evs to s in order and stops at the first error.
func EmitAll(s Sink, evs ...x_tree.DisplayEvent) error {
	for _, ev := range evs {
		if err := s.Emit(ev); err != nil {
			return err
		}
	}
	return nil
}

// Discard drops every event.
var Discard Sink = Func(func(x_tree.DisplayEvent) error { return nil })
