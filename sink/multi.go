package sink

import (
	"errors"

	"github.com/rskv-p/hier/pkg/x_tree"
	"github.com/rskv-p/hier/recover"
)

// Multi fans an event out to every sink. A failing or panicking sink does
// not stop delivery to the others.
type Multi []Sink

func NewMulti(sinks ...Sink) Multi {
	out := make(Multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (m Multi) Emit(ev x_tree.DisplayEvent) error {
	var errs []error
	for _, s := range m {
		err := recover.Call("sink", "emit", func() error { return s.Emit(ev) })
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := recover.Call("sink", "close", s.Close); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
