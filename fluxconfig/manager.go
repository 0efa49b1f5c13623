package fluxconfig

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/pixielity/flux/digest"
	"github.com/pixielity/flux/fluxconfig/drivers"
)

// Manager selects and caches a Driver by name. The driver set is small and
// fixed (file/env/memory), so dispatch is a plain switch rather than a
// reflection-based factory lookup — reflection earns its keep when the
// driver set is open-ended and user-extensible, which fluxconfig's three
// built-ins are not.
type Manager struct {
	driverName string
	driver     Driver
}

// NewManager creates a manager for the named driver ("file", "env",
// "memory"; default "file" if name is empty).
func NewManager(name string) (*Manager, error) {
	if name == "" {
		name = "file"
	}
	var d Driver
	switch name {
	case "file":
		d = drivers.NewFileDriver(drivers.FileDriverOptions{
			ConfigPaths: []string{".", "./config", "/etc/flux"},
			ConfigName:  "flux",
			ConfigType:  "yaml",
		})
	case "env":
		d = drivers.NewEnvDriver(drivers.EnvDriverOptions{Prefix: "FLUX_"})
	case "memory":
		d = drivers.NewMemoryDriver(nil)
	default:
		return nil, fmt.Errorf("fluxconfig: unknown driver %q", name)
	}
	return &Manager{driverName: name, driver: d}, nil
}

// Driver returns the manager's underlying driver.
func (m *Manager) Driver() Driver { return m.driver }

// Load loads Settings from the selected driver, decoding its raw output
// into Settings via mapstructure.
func (m *Manager) Load() (Settings, error) {
	settings := Default()
	if err := m.driver.Load(); err != nil {
		return settings, fmt.Errorf("fluxconfig: load %s driver: %w", m.driverName, err)
	}
	raw, err := m.driver.GetAll()
	if err != nil {
		return settings, fmt.Errorf("fluxconfig: read %s driver: %w", m.driverName, err)
	}
	if len(raw) == 0 {
		return settings, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &settings,
		WeaklyTypedInput: true,
		MatchName: func(mapKey, fieldName string) bool {
			return digest.CaseFoldKey(mapKey) == digest.CaseFoldKey(fieldName)
		},
	})
	if err != nil {
		return settings, fmt.Errorf("fluxconfig: build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return settings, fmt.Errorf("fluxconfig: decode %s driver output: %w", m.driverName, err)
	}
	return settings, nil
}

// Watch registers callback for live-reload notifications, when the
// selected driver supports them (the file driver does, via fsnotify).
func (m *Manager) Watch(callback func()) error {
	return m.driver.Watch(callback)
}
