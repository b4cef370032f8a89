package sink_test

import (
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/rskv-p/hier/constant"
	"github.com/rskv-p/hier/pkg/x_tree"
	"github.com/rskv-p/hier/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runNATS(t *testing.T) string {
	t.Helper()
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)
	return s.ClientURL()
}

func TestNATS_Publish(t *testing.T) {
	url := runNATS(t)

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()
	msgs, err := sub.SubscribeSync("hier.events.>")
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	s, err := sink.NewNATS(url, sink.WithRunID("run-7"), sink.WithTimeout(time.Second))
	require.NoError(t, err)

	ok, failed := sampleEvents(t)
	assert.Equal(t, "hier.events.composite.add", s.Subject(ok))
	assert.Equal(t, "hier.events.leaf.add", s.Subject(failed))

	require.NoError(t, s.Emit(ok))
	require.NoError(t, s.Emit(failed))
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Emit(ok), constant.ErrSinkClosed)

	m, err := msgs.NextMsg(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "hier.events.composite.add", m.Subject)

	var body map[string]any
	require.NoError(t, json.Unmarshal(m.Data, &body))
	assert.Equal(t, "run-7", body["run"])
	assert.Equal(t, "composite", body["kind"])
	assert.Equal(t, "add", body["op"])
	assert.Equal(t, "composite 0: add leaf 1", body["text"])
	assert.EqualValues(t, 1, body["target"])
	assert.NotContains(t, body, "error")

	m, err = msgs.NextMsg(time.Second)
	require.NoError(t, err)
	body = map[string]any{}
	require.NoError(t, json.Unmarshal(m.Data, &body))
	assert.Contains(t, body["error"], "not supported")
	assert.NotContains(t, body, "target")
}

func TestPayload_TargetZero(t *testing.T) {
	gen := x_tree.NewIDGen()
	first := gen.NewComposite()
	parent := gen.NewComposite()

	ev, err := parent.Add(first)
	require.NoError(t, err)
	require.Equal(t, x_tree.ID(0), ev.Target)

	data, err := json.Marshal(sink.NewPayload(ev, ""))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.EqualValues(t, 0, body["target"])
	assert.Equal(t, "composite", body["target_kind"])
	assert.EqualValues(t, 1, body["node"])
}

func TestNATS_SharedConn(t *testing.T) {
	url := runNATS(t)
	nc, err := nats.Connect(url)
	require.NoError(t, err)
	defer nc.Close()

	s := sink.NewNATSConn(nc, sink.WithSubject("audit"))
	ok, _ := sampleEvents(t)
	assert.Equal(t, "audit.composite.add", s.Subject(ok))
	require.NoError(t, s.Emit(ok))
	require.NoError(t, s.Close())
	assert.False(t, nc.IsClosed())
}

func TestNATS_ConnectError(t *testing.T) {
	_, err := sink.NewNATS("nats://127.0.0.1:1", sink.WithTimeout(100*time.Millisecond))
	assert.Error(t, err)
}
