// file: hier/config/option.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rskv-p/hier/constant"
)

// Option is a functional config initializer.
type Option func(*Config) error

// WithDefaults merges values under the ones already set.
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) error {
		merged := normalize(defaults)
		mergeValues(merged, c.values)
		c.values = merged
		return nil
	}
}

// FromJSON loads config from a JSON file. ${ENV_VAR} references are expanded.
func FromJSON(path string) Option {
	return func(c *Config) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		data = ReplaceEnvVars(data)

		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse config json: %w", err)
		}
		mergeValues(c.values, normalize(raw))
		return nil
	}
}

// FromEnv loads config values from environment variables with prefix.
// A double underscore nests: HIER_SINK__NATS_URL sets sink.nats_url.
func FromEnv(prefix string) Option {
	return func(c *Config) error {
		for _, e := range os.Environ() {
			if !strings.HasPrefix(e, prefix) {
				continue
			}
			kv := strings.SplitN(e, "=", 2)
			if len(kv) != 2 {
				continue
			}
			key := strings.ToLower(strings.TrimPrefix(kv[0], prefix))
			if key == "" || key == "config" {
				continue
			}
			setPath(c.values, strings.Split(key, constant.EnvNestSeparator), ParseEnvValue(kv[1]))
		}
		return nil
	}
}

// ParseEnvValue tries to interpret strings like "true", "123", etc.
func ParseEnvValue(v string) any {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "true") {
		return true
	}
	if strings.EqualFold(v, "false") {
		return false
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return v
}

// ReplaceEnvVars replaces ${ENV_VAR} in raw JSON string.
func ReplaceEnvVars(data []byte) []byte {
	return []byte(os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	}))
}

// ----------------------------------------------------
// Value map helpers
// ----------------------------------------------------

// normalize lower-cases keys at every level.
func normalize(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if m, ok := v.(map[string]any); ok {
			v = normalize(m)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// mergeValues copies src into dst, descending into nested maps.
func mergeValues(dst, src map[string]any) {
	for k, v := range src {
		sm, srcIsMap := v.(map[string]any)
		dm, dstIsMap := dst[k].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeValues(dm, sm)
			continue
		}
		dst[k] = v
	}
}

func setPath(m map[string]any, path []string, v any) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = v
}
