package sink

import (
	"sort"
	"strings"
	"sync"

	"github.com/rskv-p/hier/pkg/x_tree"
)

// Stats counts events by "<kind>.<op>" and keeps a failure total.
type Stats struct {
	mu      sync.RWMutex
	metrics map[string]int64
}

const (
	MetricTotal  = "events.total"
	MetricFailed = "events.failed"
)

func NewStats() *Stats {
	return &Stats{metrics: make(map[string]int64)}
}

func (s *Stats) Emit(ev x_tree.DisplayEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics[MetricTotal]++
	if ev.Failed() {
		s.metrics[MetricFailed]++
	}
	s.metrics[ev.Kind.String()+"."+string(ev.Op)]++
	return nil
}

func (s *Stats) Close() error { return nil }

// Get returns one counter, zero when never touched.
func (s *Stats) Get(name string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics[name]
}

// Metrics returns a snapshot of all counters.
func (s *Stats) Metrics() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int64, len(s.metrics))
	for k, v := range s.metrics {
		out[k] = v
	}
	return out
}

// WithPrefix returns the counters whose name starts with prefix.
func (s *Stats) WithPrefix(prefix string) map[string]int64 {
	prefix = strings.TrimSuffix(prefix, ".") + "."
	out := make(map[string]int64)
	for k, v := range s.Metrics() {
		if strings.HasPrefix(k, prefix) {
			out[strings.TrimPrefix(k, prefix)] = v
		}
	}
	return out
}

// Names returns the counter names, sorted.
func (s *Stats) Names() []string {
	m := s.Metrics()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = make(map[string]int64)
}
