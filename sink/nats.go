package sink

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rskv-p/hier/constant"
	"github.com/rskv-p/hier/pkg/x_tree"
)

// NATS publishes every event as JSON on <prefix>.<kind>.<op>.
type NATS struct {
	mu      sync.Mutex
	nc      *nats.Conn
	owned   bool
	closed  bool
	prefix  string
	runID   string
	timeout time.Duration
}

// Payload is the JSON body published for each event.
// Target is present exactly when the event names a second node.
type Payload struct {
	x_tree.DisplayEvent
	Target *x_tree.ID `json:"target,omitempty"`
	Run    string     `json:"run,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// NewPayload builds the published body for ev.
func NewPayload(ev x_tree.DisplayEvent, runID string) Payload {
	p := Payload{DisplayEvent: ev, Run: runID}
	if ev.HasTarget() {
		id := ev.Target
		p.Target = &id
	}
	if ev.Err != nil {
		p.Error = ev.Err.Error()
	}
	return p
}

// NATSOption configures a NATS sink.
type NATSOption func(*NATS)

// WithSubject sets the subject prefix. Empty keeps the default.
func WithSubject(prefix string) NATSOption {
	return func(s *NATS) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRunID tags every payload with id.
func WithRunID(id string) NATSOption {
	return func(s *NATS) { s.runID = id }
}

// WithTimeout bounds connect and the final flush.
func WithTimeout(d time.Duration) NATSOption {
	return func(s *NATS) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func newNATS(opts []NATSOption) *NATS {
	s := &NATS{
		prefix:  constant.DefaultEventSubject,
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewNATS dials url and returns a sink that owns the connection.
func NewNATS(url string, opts ...NATSOption) (*NATS, error) {
	s := newNATS(opts)
	nc, err := nats.Connect(url,
		nats.Name(constant.AppName),
		nats.Timeout(s.timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	s.nc = nc
	s.owned = true
	return s, nil
}

// NewNATSConn publishes on an existing connection. Close flushes but
// leaves nc open.
func NewNATSConn(nc *nats.Conn, opts ...NATSOption) *NATS {
	s := newNATS(opts)
	s.nc = nc
	return s
}

// Subject returns the subject ev is published on.
func (s *NATS) Subject(ev x_tree.DisplayEvent) string {
	return fmt.Sprintf("%s.%s.%s", s.prefix, ev.Kind, ev.Op)
}

func (s *NATS) Emit(ev x_tree.DisplayEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return constant.ErrSinkClosed
	}

	data, err := json.Marshal(NewPayload(ev, s.runID))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := s.nc.Publish(s.Subject(ev), data); err != nil {
		return fmt.Errorf("publish %s: %w", s.Subject(ev), err)
	}
	return nil
}

func (s *NATS) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	err := s.nc.FlushTimeout(s.timeout)
	if s.owned {
		s.nc.Close()
	}
	if err != nil {
		return fmt.Errorf("flush nats: %w", err)
	}
	return nil
}
