package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Watcher keeps the current configuration and reloads it when the backing
// config file changes. Subscribers receive every successfully validated
// reload; invalid edits are logged and the previous configuration is kept.
type Watcher struct {
	mu          sync.RWMutex
	v           *viper.Viper
	current     *Config
	subscribers []func(*Config)
	logger      *zap.Logger
}

// NewWatcher loads configuration the same way as LoadFile and returns a
// watcher over it. An empty path searches the default locations.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	cfg, v, err := load(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{v: v, current: cfg, logger: logger}, nil
}

// SetLogger replaces the watcher's logger. Call it before Start.
func (w *Watcher) SetLogger(logger *zap.Logger) {
	if logger != nil {
		w.logger = logger
	}
}

// Config returns the most recently loaded configuration
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Subscribe registers fn to be called after each successful reload
func (w *Watcher) Subscribe(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subscribers = append(w.subscribers, fn)
}

// Start begins watching the config file. It reports false when no config
// file was found, in which case there is nothing to watch.
func (w *Watcher) Start() bool {
	if w.v.ConfigFileUsed() == "" {
		return false
	}
	w.v.OnConfigChange(w.onChange)
	w.v.WatchConfig()
	w.logger.Info("Watching config file for changes", zap.String("file", w.v.ConfigFileUsed()))
	return true
}

func (w *Watcher) onChange(e fsnotify.Event) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	w.logger.Info("Config file changed", zap.String("file", e.Name))
	w.reload()
}

// reload rebuilds the configuration from viper's current state
func (w *Watcher) reload() {
	cfg, err := build(w.v)
	if err != nil {
		w.logger.Warn("Ignoring invalid configuration change", zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = cfg
	subscribers := make([]func(*Config), len(w.subscribers))
	copy(subscribers, w.subscribers)
	w.mu.Unlock()

	for _, fn := range subscribers {
		fn(cfg)
	}
}
