package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager handles thread-safe configuration access and (re)loading, in the
// teacher's style (feng2208-adblocker config/manager.go).
type Manager struct {
	mu         sync.RWMutex
	current    *Config
	configPath string
	warnings   []string
}

// NewManager creates a Manager for the given YAML config path.
func NewManager(path string) *Manager {
	return &Manager{configPath: path, current: &Config{}}
}

// Load reads and validates the configuration file from disk.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	warnings, verr := Validate(&cfg)
	if verr != nil {
		return verr
	}

	m.mu.Lock()
	m.current = &cfg
	m.warnings = warnings
	m.mu.Unlock()
	return nil
}

// Warnings returns the non-fatal validation warnings from the last Load.
func (m *Manager) Warnings() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.warnings
}

// Get returns the current configuration safely.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
