package recover_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rskv-p/hier/pkg/x_log"
	recoverpkg "github.com/rskv-p/hier/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var panicHookTriggered bool
var panicCapturedComponent, panicCapturedFunc string
var panicCapturedValue any

func TestMain(m *testing.M) {
	recoverpkg.OnPanic = func(component, fn string, r any) {
		panicHookTriggered = true
		panicCapturedComponent = component
		panicCapturedFunc = fn
		panicCapturedValue = r
	}
	m.Run()
}

func TestCall(t *testing.T) {
	panicHookTriggered = false
	err := recoverpkg.Call("script", "step", func() error { return nil })
	assert.NoError(t, err)
	assert.False(t, panicHookTriggered)

	want := errors.New("plain")
	err = recoverpkg.Call("script", "step", func() error { return want })
	assert.ErrorIs(t, err, want)
	assert.False(t, panicHookTriggered)

	err = recoverpkg.Call("script", "step", func() error { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic recovered in script.step: boom")
	assert.True(t, panicHookTriggered)
	assert.Equal(t, "script", panicCapturedComponent)
	assert.Equal(t, "step", panicCapturedFunc)
	assert.Equal(t, "boom", panicCapturedValue)
}

func TestCall_LogsToCurrentRootLogger(t *testing.T) {
	var buf bytes.Buffer
	x_log.SetOutput(&buf)

	_ = recoverpkg.Call("sink", "emit", func() error { panic("boom") })

	out := buf.String()
	assert.Contains(t, out, "panic: boom")
	assert.Contains(t, out, `"component":"sink"`)
	assert.Contains(t, out, `"function":"emit"`)
	assert.Contains(t, out, `"module":"recover"`)
}
