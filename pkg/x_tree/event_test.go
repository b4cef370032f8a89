package x_tree_test

import (
	"encoding/json"
	"testing"

	"github.com/rskv-p/hier/pkg/x_tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayEvent_JSONKeepsTargetZero(t *testing.T) {
	gen := x_tree.NewIDGen()
	l0 := gen.NewLeaf()
	c1 := gen.NewComposite()

	ev, err := c1.Add(l0)
	require.NoError(t, err)
	assert.True(t, ev.HasTarget())

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"target":0`)
	assert.Contains(t, string(data), `"target_kind":"leaf"`)
	assert.Contains(t, string(data), `"node":1`)
}
