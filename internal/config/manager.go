package config

import "sync"

// Manager owns the settings document for a session.
type Manager struct {
	mu       sync.RWMutex
	path     string
	settings Settings
}

// Open loads the settings at path. The returned Manager is always usable;
// a non-nil error means defaults are in effect and the caller should warn.
func Open(path string) (*Manager, error) {
	s, err := Load(path)
	return &Manager{path: path, settings: s}, err
}

// NewManager wraps already loaded settings.
func NewManager(path string, s Settings) *Manager {
	s.Normalize()
	return &Manager{path: path, settings: s}
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// Settings returns a snapshot of the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Replace validates next, writes it to disk and makes it current. The
// in-memory settings are unchanged if the write fails.
func (m *Manager) Replace(next Settings) error {
	next.Normalize()
	if err := Save(m.path, next); err != nil {
		return err
	}
	m.mu.Lock()
	m.settings = next
	m.mu.Unlock()
	return nil
}

// Set assigns a single key and persists the result.
func (m *Manager) Set(key, value string) error {
	next := m.Settings()
	if err := next.Set(key, value); err != nil {
		return err
	}
	return m.Replace(next)
}

// Save flushes the current settings.
func (m *Manager) Save() error {
	return Save(m.path, m.Settings())
}
