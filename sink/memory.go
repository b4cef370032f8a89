package sink

import (
	"sync"

	"github.com/rskv-p/hier/pkg/x_tree"
)

// Memory keeps every event it receives. Used by tests and the script runner.
type Memory struct {
	mu     sync.Mutex
	events []x_tree.DisplayEvent
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Emit(ev x_tree.DisplayEvent) error {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }

// Events returns a copy of the collected events.
func (m *Memory) Events() []x_tree.DisplayEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]x_tree.DisplayEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Texts returns the collected event texts in order.
func (m *Memory) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, ev := range m.events {
		out = append(out, ev.Text)
	}
	return out
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func (m *Memory) Reset() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
