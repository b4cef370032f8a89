package sink

import (
	"github.com/rs/zerolog"
	"github.com/rskv-p/hier/constant"
	"github.com/rskv-p/hier/pkg/x_tree"
)

// Log writes each event as a structured log line.
// Successful events go out at debug, rejected ones at warn.
type Log struct {
	log zerolog.Logger
}

// NewLog wraps l. A run id, when given, is attached to every line.
func NewLog(l zerolog.Logger, runID string) *Log {
	if runID != "" {
		l = l.With().Str(constant.KeyRun, runID).Logger()
	}
	return &Log{log: l}
}

func (s *Log) Emit(ev x_tree.DisplayEvent) error {
	e := s.log.Debug()
	if ev.Failed() {
		e = s.log.Warn().AnErr(constant.KeyError, ev.Err)
	}
	e = e.Uint64(constant.KeyNode, uint64(ev.Node)).
		Stringer(constant.KeyKind, ev.Kind).
		Str(constant.KeyOp, string(ev.Op))
	if ev.HasTarget() {
		e = e.Uint64(constant.KeyTarget, uint64(ev.Target))
	}
	if ev.Index >= 0 {
		e = e.Int(constant.KeyIndex, ev.Index)
	}
	e.Msg(ev.Text)
	return nil
}

func (s *Log) Close() error { return nil }
