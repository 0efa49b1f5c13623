package drivers

import (
	"os"
	"strings"

	"github.com/spf13/cast"
)

// EnvDriverOptions configures the prefix EnvDriver filters environment
// variables by.
type EnvDriverOptions struct {
	Prefix string
}

// EnvDriver reads settings from FLUX_* environment variables, coercing
// values with spf13/cast.
type EnvDriver struct {
	prefix string
}

// NewEnvDriver creates an environment-variable driver.
func NewEnvDriver(options EnvDriverOptions) *EnvDriver {
	if options.Prefix == "" {
		options.Prefix = "FLUX_"
	}
	return &EnvDriver{prefix: options.Prefix}
}

// Load is a no-op: environment variables are already available without an
// I/O step.
func (e *EnvDriver) Load() error { return nil }

// GetAll scans os.Environ for e.prefix-prefixed variables, stripping the
// prefix and lower-casing the remainder into settings keys.
func (e *EnvDriver) GetAll() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	for _, entry := range os.Environ() {
		if !strings.HasPrefix(entry, e.prefix) {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(parts[0], e.prefix))
		out[key] = cast.ToString(parts[1])
	}
	return out, nil
}

// Watch is unsupported for the env driver: there is nothing to watch.
func (e *EnvDriver) Watch(callback func()) error { return nil }

// Unwatch is a no-op for the env driver.
func (e *EnvDriver) Unwatch() error { return nil }
