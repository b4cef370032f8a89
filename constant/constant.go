// file: hier/constant/constant.go
package constant

import "errors"

// ----------------------------------------------------
// Standard errors
// ----------------------------------------------------

var (
	ErrStepsFailed   = errors.New("one or more steps failed")
	ErrInvalidConfig = errors.New("invalid config")
	ErrSinkClosed    = errors.New("sink is closed")
)

// ----------------------------------------------------
// Config paths & keys
// ----------------------------------------------------

const (
	AppName            = "hier"
	DefaultServiceName = "hier"
	DefaultConfigFile  = "hier.json"
	EnvPrefix          = "HIER_"
	EnvConfigPath      = "HIER_CONFIG"
	EnvNestSeparator   = "__"
	EnvNoColor         = "NO_COLOR"
)

// ----------------------------------------------------
// Event sinks
// ----------------------------------------------------

const (
	DefaultNATSURL      = "nats://127.0.0.1:4222"
	DefaultEventSubject = "hier.events"
	DefaultSinkTimeout  = "2s"
)

// ----------------------------------------------------
// Log field keys
// ----------------------------------------------------

const (
	KeyNode   = "node"
	KeyKind   = "kind"
	KeyOp     = "op"
	KeyTarget = "target"
	KeyIndex  = "index"
	KeyRun    = "run"
	KeyLine   = "line"
	KeyError  = "error"
)

// ----------------------------------------------------
// Process exit codes
// ----------------------------------------------------

const (
	ExitOK      = 0
	ExitFailure = 1
)
