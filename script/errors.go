package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rskv-p/hier/pkg/x_tree"
)

var (
	ErrSyntax        = errors.New("syntax error")
	ErrUnknownNode   = errors.New("unknown node")
	ErrDuplicateName = errors.New("duplicate node name")
	ErrExpectation   = errors.New("expectation failed")
)

// StepError ties a failure to the script line that caused it.
type StepError struct {
	Line int
	Cmd  string
	Err  error
}

func (e *StepError) Error() string {
	if e.Cmd == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Cmd, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// anyError matches every failure in expect-error.
const anyError = "any"

var errorNames = map[string]error{
	"unsupported":      x_tree.ErrUnsupported,
	"capacityexceeded": x_tree.ErrCapacityExceeded,
	"notfound":         x_tree.ErrNotFound,
	"indexoutofrange":  x_tree.ErrIndexOutOfRange,
	"slotempty":        x_tree.ErrSlotEmpty,
	"nilnode":          x_tree.ErrNilNode,
	"alreadyattached":  x_tree.ErrAlreadyAttached,
	"cycle":            x_tree.ErrCycle,
	"released":         x_tree.ErrReleased,
	"syntax":           ErrSyntax,
	"unknownnode":      ErrUnknownNode,
	"duplicatename":    ErrDuplicateName,
	"expectation":      ErrExpectation,
}

// LookupError resolves an error name as written in expect-error.
// "capacity-exceeded", "capacity_exceeded" and "ErrCapacityExceeded" are
// all accepted.
func LookupError(name string) (error, bool) {
	key := strings.ToLower(name)
	key = strings.TrimPrefix(key, "err")
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	err, ok := errorNames[key]
	return err, ok
}
