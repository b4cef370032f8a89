package sink_test

import (
	"testing"

	"github.com/rskv-p/hier/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	ok, failed := sampleEvents(t)
	s := sink.NewStats()
	require.NoError(t, sink.EmitAll(s, ok, ok, failed))

	assert.EqualValues(t, 3, s.Get(sink.MetricTotal))
	assert.EqualValues(t, 1, s.Get(sink.MetricFailed))
	assert.EqualValues(t, 2, s.Get("composite.add"))
	assert.EqualValues(t, 1, s.Get("leaf.add"))
	assert.Zero(t, s.Get("leaf.remove"))

	assert.Equal(t, map[string]int64{"total": 3, "failed": 1}, s.WithPrefix("events"))
	assert.Equal(t, []string{"composite.add", "events.failed", "events.total", "leaf.add"}, s.Names())

	s.Reset()
	assert.Empty(t, s.Metrics())
}
