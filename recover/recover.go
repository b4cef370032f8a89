// file: hier/recover/recover.go
package recover

import (
	"fmt"
	"runtime/debug"

	"github.com/rskv-p/hier/pkg/x_log"
)

const (
	tagComponent = "component"
	tagFunction  = "function"
)

// ----------------------------------------------------
// Global panic hook (optional)
// ----------------------------------------------------

var OnPanic func(component, function string, recovered any)

// ----------------------------------------------------
// Panic recovery
// ----------------------------------------------------

// Call runs fn and turns a panic into an error.
// The panic is logged through the root logger current at the time of the panic.
func Call(component, function string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			report(component, function, r)
			err = fmt.Errorf("panic recovered in %s.%s: %v", component, function, r)
		}
	}()
	return fn()
}

func report(component, function string, recovered any) {
	log := x_log.New("recover")
	log.Error().Str(tagComponent, component).Str(tagFunction, function).Msgf("panic: %v", recovered)
	log.Debug().Msgf("stacktrace:\n%s", debug.Stack())

	if OnPanic != nil {
		OnPanic(component, function, recovered)
	}
}
