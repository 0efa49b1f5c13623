// Package drivers holds fluxconfig's three built-in settings sources: a
// file-backed driver (viper + fsnotify), an environment-variable driver
// (cast), and an in-process memory driver with no I/O at all.
package drivers

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// FileDriverOptions configures where and how FileDriver looks for its
// config file.
type FileDriverOptions struct {
	ConfigPaths []string
	ConfigName  string
	ConfigType  string
}

// FileDriver loads settings from a config file, with live-reload support
// via viper's fsnotify-backed watcher.
type FileDriver struct {
	mu        sync.RWMutex
	viper     *viper.Viper
	options   FileDriverOptions
	watchFunc func()
}

// NewFileDriver creates a file-backed driver over options.
func NewFileDriver(options FileDriverOptions) *FileDriver {
	if options.ConfigName == "" {
		options.ConfigName = "flux"
	}
	if options.ConfigType == "" {
		options.ConfigType = "yaml"
	}
	if len(options.ConfigPaths) == 0 {
		options.ConfigPaths = []string{"."}
	}

	v := viper.New()
	v.SetConfigName(options.ConfigName)
	v.SetConfigType(options.ConfigType)
	for _, p := range options.ConfigPaths {
		v.AddConfigPath(p)
	}

	return &FileDriver{viper: v, options: options}
}

// Load reads the config file, tolerating its absence (Manager.Load then
// returns the Default() settings).
func (f *FileDriver) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

// GetAll returns every setting viper has loaded.
func (f *FileDriver) GetAll() (map[string]interface{}, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.viper.AllSettings(), nil
}

// Watch starts watching the config file for changes, invoking callback on
// every write.
func (f *FileDriver) Watch(callback func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watchFunc != nil {
		return fmt.Errorf("already watching for config changes")
	}
	f.watchFunc = callback

	f.viper.WatchConfig()
	f.viper.OnConfigChange(func(e fsnotify.Event) {
		f.mu.RLock()
		cb := f.watchFunc
		f.mu.RUnlock()
		if cb != nil {
			cb()
		}
	})
	return nil
}

// Unwatch clears the registered watch callback.
func (f *FileDriver) Unwatch() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchFunc = nil
	return nil
}
