// Package fluxconfig loads ambient engine settings from one of three
// drivers, selected via a Laravel-style Manager. It is deliberately
// separate from the core flux package: flux.Options is the engine's own
// minimal knob (ReferenceCheck);
// fluxconfig.Settings is the broader ambient configuration a process
// running flux wants (log level, default traversal order, notification
// fan-out mode), decoded from whichever driver is selected.
package fluxconfig

import "github.com/pixielity/flux"

// Settings is the decoded configuration a Manager produces, regardless of
// which driver supplied the raw values.
type Settings struct {
	ReferenceCheck     bool   `mapstructure:"reference_check"`
	LogLevel           string `mapstructure:"log_level"`
	DefaultDepthFirst  bool   `mapstructure:"default_depth_first"`
	NotifyConcurrently bool   `mapstructure:"notify_concurrently"`
}

// EngineOptions extracts the flux.Options subset of Settings.
func (s Settings) EngineOptions() flux.Options {
	return flux.Options{ReferenceCheck: s.ReferenceCheck}
}

// Default returns the built-in default settings, used by the memory driver
// and as the starting point for every other driver's decode.
func Default() Settings {
	return Settings{
		ReferenceCheck:     false,
		LogLevel:           "info",
		DefaultDepthFirst:  false,
		NotifyConcurrently: true,
	}
}

// Driver is the contract every fluxconfig driver implements — mirrors the
// teacher's config.Driver shape (Get/Set/Load/Watch/GetAll), trimmed to
// what Settings decoding actually needs.
type Driver interface {
	Load() error
	GetAll() (map[string]interface{}, error)
	Watch(callback func()) error
	Unwatch() error
}
