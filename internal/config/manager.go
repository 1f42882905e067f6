package config

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/leonardotrapani/voxlate/internal/logging"
)

// Manager holds the current config and reloads it when the file changes
type Manager struct {
	mu        sync.RWMutex
	path      string
	config    *Config
	listeners []func(*Config)
	watcher   *fsnotify.Watcher
	wg        sync.WaitGroup
	logger    *logrus.Logger
}

// NewManager loads and validates the config at path ("" = default path)
func NewManager(path string, logger *logrus.Logger) (*Manager, error) {
	logger = logging.OrDefault(logger)

	if path == "" {
		var err error
		if path, err = GetConfigPath(); err != nil {
			return nil, err
		}
	}

	config, err := LoadFrom(path)
	if err != nil {
		logger.WithError(err).Error("Failed to load initial configuration")
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Manager{
		path:   path,
		config: config,
		logger: logger,
	}, nil
}

// Path returns the watched config file
func (m *Manager) Path() string {
	return m.path
}

func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.config.Clone()
}

// OnReload registers fn to be called with every successfully reloaded config
func (m *Manager) OnReload(fn func(*Config)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Manager) StartWatching(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// watch the directory so editors that replace the file are still seen
	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		watcher.Close()
		return err
	}
	m.watcher = watcher

	m.wg.Add(1)
	go m.watchLoop(ctx)

	m.logger.WithField("path", m.path).Info("Watching config for changes")
	return nil
}

func (m *Manager) Stop() {
	if m.watcher != nil {
		m.watcher.Close()
	}
	m.wg.Wait()
}

func (m *Manager) watchLoop(ctx context.Context) {
	defer m.wg.Done()
	configFileName := filepath.Base(m.path)

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != configFileName {
				continue
			}

			// Only react to Write and Create events (ignore Chmod, Remove, etc.)
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				m.logger.WithField("event", event.Op.String()).Info("Config change detected, reloading")
				m.reload()
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.WithError(err).Warn("Config watcher error")

		case <-ctx.Done():
			return
		}
	}
}

// reload keeps the previous config when the new file is unreadable or invalid
func (m *Manager) reload() {
	newConfig, err := LoadFrom(m.path)
	if err != nil {
		m.logger.WithError(err).Error("Failed to reload config")
		return
	}
	if err := newConfig.Validate(); err != nil {
		m.logger.WithError(err).Error("Invalid config after reload, keeping previous")
		return
	}

	m.mu.Lock()
	m.config = newConfig
	listeners := make([]func(*Config), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(newConfig.Clone())
	}

	m.logger.Info("Configuration reloaded")
}
