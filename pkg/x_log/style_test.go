package x_log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestStylesCheck verifies both themes define a style per level.
func TestStylesCheck(t *testing.T) {
	for _, name := range []string{"dark", "light", "unknown"} {
		styles := DefaultStylesByName(name)
		for _, lvl := range []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel} {
			_, ok := styles.Levels[lvl]
			assert.True(t, ok, "%s theme misses %s", name, lvl)
		}
		_, ok := styles.Keys["node"]
		assert.True(t, ok)
	}
}

// TestConsoleWriterFields checks messages and fields survive the styled writer.
func TestConsoleWriterFields(t *testing.T) {
	var buf bytes.Buffer
	styles := DefaultStylesDark()
	styles.Out = &buf
	logger := zerolog.New(ConsoleWriterWithStyles(styles)).With().Timestamp().Logger()

	logger.Info().Uint64("node", 3).Str("op", "add").Msg("composite 0: add leaf 3")

	out := buf.String()
	assert.Contains(t, out, "composite 0: add leaf 3")
	assert.Contains(t, out, "node")
	assert.Contains(t, out, "add")
}
