package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rskv-p/hier/config"
	"github.com/rskv-p/hier/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hier.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv(constant.EnvNoColor, "")
	cfg, err := config.New()
	require.NoError(t, err)
	assert.Equal(t, constant.DefaultServiceName, cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Sink.Console)
	assert.Equal(t, constant.DefaultEventSubject, cfg.Sink.Subject)
	assert.Equal(t, 2*time.Second, cfg.Sink.Timeout)
	assert.False(t, cfg.NoColor)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_NoColorEnv(t *testing.T) {
	t.Setenv(constant.EnvNoColor, "1")
	assert.True(t, config.Default().NoColor)
}

func TestConfig_Load(t *testing.T) {
	t.Setenv("HIER_TEST_NATS", "nats://10.0.0.1:4222")
	path := writeConfig(t, `{
		"Service_Name": "demo",
		"log_level": "debug",
		"keep_going": true,
		"log": {"style": "light", "max_size": 3},
		"sink": {"console": false, "nats_url": "${HIER_TEST_NATS}", "timeout": "500ms"}
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.ServiceName)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.KeepGoing)
	assert.Equal(t, "light", cfg.Log.Style)
	assert.Equal(t, 3, cfg.Log.MaxSize)
	assert.False(t, cfg.Sink.Console)
	assert.Equal(t, "nats://10.0.0.1:4222", cfg.Sink.NATSURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Sink.Timeout)
	// untouched nested defaults survive
	assert.Equal(t, constant.DefaultEventSubject, cfg.Sink.Subject)

	v, ok := cfg.Get("sink.nats_url")
	assert.True(t, ok)
	assert.Equal(t, "nats://10.0.0.1:4222", v)
}

func TestConfig_EnvOverlay(t *testing.T) {
	path := writeConfig(t, `{"log_level": "debug", "sink": {"subject": "from.file"}}`)
	t.Setenv("HIER_LOG_LEVEL", "warn")
	t.Setenv("HIER_SINK__SUBJECT", "from.env")
	t.Setenv("HIER_SINK__LOG", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "from.env", cfg.Sink.Subject)
	assert.True(t, cfg.Sink.Log)
}

func TestConfig_LoadWithFallback(t *testing.T) {
	path := writeConfig(t, `{"service_name": "from-env-path"}`)
	t.Setenv(constant.EnvConfigPath, path)

	cfg, err := config.LoadWithFallback("")
	require.NoError(t, err)
	assert.Equal(t, "from-env-path", cfg.ServiceName)

	t.Setenv(constant.EnvConfigPath, "")
	cfg, err = config.LoadWithFallback("")
	require.NoError(t, err)
	assert.Equal(t, constant.DefaultServiceName, cfg.ServiceName)
}

func TestConfig_LoadWithFallback_WorkingDirFile(t *testing.T) {
	t.Setenv(constant.EnvConfigPath, "")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, constant.DefaultConfigFile),
		[]byte(`{"service_name": "from-cwd"}`), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := config.LoadWithFallback("")
	require.NoError(t, err)
	assert.Equal(t, "from-cwd", cfg.ServiceName)
}

func TestConfig_LoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "{bad json"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, `{"sink": {"timeout": "forever"}}`))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := config.New(config.WithDefaults(map[string]any{
		"service_name": "",
		"log_level":    "loud",
		"sink":         map[string]any{"nats_url": "nats://x", "subject": "", "timeout": "0s"},
	}))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, constant.ErrInvalidConfig)
	for _, field := range []string{"service_name", "log_level", "sink.subject", "sink.timeout"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestConfig_LogConfig(t *testing.T) {
	cfg, err := config.New(config.WithDefaults(map[string]any{
		"log_level": "error",
		"log":       map[string]any{"level": "debug"},
	}))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogConfig().Level)
}

func TestConfig_StringAndDump(t *testing.T) {
	cfg, _ := config.New()
	assert.Contains(t, cfg.String(), `"service_name": "hier"`)

	var buf bytes.Buffer
	cfg.Dump(&buf)
	assert.Contains(t, buf.String(), `"subject": "hier.events"`)
}
