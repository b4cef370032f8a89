// file: hier/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/rskv-p/hier/constant"
	"github.com/rskv-p/hier/pkg/x_log"
)

// Config holds runtime settings for the hier CLI.
type Config struct {
	ServiceName string       `json:"service_name" mapstructure:"service_name"`
	LogLevel    string       `json:"log_level" mapstructure:"log_level"`
	NoColor     bool         `json:"no_color" mapstructure:"no_color"`
	Color       bool         `json:"color" mapstructure:"color"`
	KeepGoing   bool         `json:"keep_going" mapstructure:"keep_going"`
	Log         x_log.Config `json:"log" mapstructure:"log"`
	Sink        SinkSettings `json:"sink" mapstructure:"sink"`

	values map[string]any
}

// SinkSettings selects where display events go.
type SinkSettings struct {
	Console bool          `json:"console" mapstructure:"console"`
	Log     bool          `json:"log" mapstructure:"log"`
	NATSURL string        `json:"nats_url" mapstructure:"nats_url"`
	Subject string        `json:"subject" mapstructure:"subject"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// Default returns a default config. NO_COLOR in the environment turns
// styling off.
func Default() *Config {
	timeout, _ := time.ParseDuration(constant.DefaultSinkTimeout)
	return &Config{
		ServiceName: constant.DefaultServiceName,
		LogLevel:    "info",
		NoColor:     GetEnvBool(constant.EnvNoColor, false),
		Log:         x_log.DefaultConfig(),
		Sink: SinkSettings{
			Console: true,
			Log:     false,
			Subject: constant.DefaultEventSubject,
			Timeout: timeout,
		},
		values: map[string]any{},
	}
}

// New applies opts in order and decodes the merged values over Default().
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.decode(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads config from a JSON file, then overlays HIER_* env vars.
func Load(path string) (*Config, error) {
	return New(FromJSON(path), FromEnv(constant.EnvPrefix))
}

// LoadFromEnv loads config from environment using prefix.
func LoadFromEnv(prefix string) (*Config, error) {
	return New(FromEnv(prefix))
}

// LoadWithFallback loads path, else HIER_CONFIG, else ./hier.json when
// present, else env vars only.
func LoadWithFallback(path string) (*Config, error) {
	if path == "" {
		path = GetEnvStr(constant.EnvConfigPath, "")
	}
	if path == "" {
		if _, err := os.Stat(constant.DefaultConfigFile); err == nil {
			path = constant.DefaultConfigFile
		}
	}
	if path == "" {
		return LoadFromEnv(constant.EnvPrefix)
	}
	return Load(path)
}

func (cfg *Config) decode() error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("build config decoder: %w", err)
	}
	if err := dec.Decode(cfg.values); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// LogConfig returns the logger settings with the top-level level applied.
func (cfg *Config) LogConfig() *x_log.Config {
	lc := cfg.Log
	if cfg.LogLevel != "" {
		lc.Level = cfg.LogLevel
	}
	x_log.ApplyDefaults(&lc)
	return &lc
}

// Validate checks config for required values.
func (cfg *Config) Validate() error {
	var bad []string
	if cfg.ServiceName == "" {
		bad = append(bad, "service_name")
	}
	if _, err := x_log.ParseLevel(cfg.LogLevel); err != nil {
		bad = append(bad, fmt.Sprintf("log_level(%q)", cfg.LogLevel))
	}
	if cfg.Sink.NATSURL != "" && cfg.Sink.Subject == "" {
		bad = append(bad, "sink.subject")
	}
	if cfg.Sink.Timeout <= 0 {
		bad = append(bad, fmt.Sprintf("sink.timeout(%s)", cfg.Sink.Timeout))
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", constant.ErrInvalidConfig, strings.Join(bad, ", "))
	}
	return nil
}

// Get returns a raw value by dotted key, e.g. "sink.nats_url".
func (cfg *Config) Get(key string) (any, bool) {
	var cur any = cfg.values
	for _, part := range strings.Split(strings.ToLower(key), ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func (cfg *Config) String() string {
	data, _ := json.MarshalIndent(cfg, "", "  ")
	return string(data)
}

func (cfg *Config) Dump(w io.Writer) {
	data, _ := json.MarshalIndent(cfg, "", "  ")
	_, _ = w.Write(data)
}
