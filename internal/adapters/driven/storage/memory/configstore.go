package memory

import (
	"maps"
	"sync"

	"github.com/custodia-labs/ankify-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in process memory.
// Save and Load move values between a working set and a saved set, so
// callers that discard unsaved edits behave as they would with a file.
type ConfigStore struct {
	mu      sync.RWMutex
	working map[string]any
	saved   map[string]any
}

// NewConfigStore creates an empty store.
func NewConfigStore() *ConfigStore {
	return NewConfigStoreFrom(nil)
}

// NewConfigStoreFrom creates a store whose saved and working sets both
// start as a copy of values.
func NewConfigStoreFrom(values map[string]any) *ConfigStore {
	saved := make(map[string]any, len(values))
	maps.Copy(saved, values)
	return &ConfigStore{working: maps.Clone(saved), saved: saved}
}

// Get returns the working value for key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.working[key]
	return val, ok
}

// GetString returns key as a string, or "" for missing or non-string values.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt returns key as an int. Floats are truncated.
func (s *ConfigStore) GetInt(key string) int {
	n, _ := number(s.Get(key))
	return int(n)
}

// GetFloat returns key as a float64.
func (s *ConfigStore) GetFloat(key string) float64 {
	n, _ := number(s.Get(key))
	return n
}

// GetBool returns key as a bool, or false for missing or non-bool values.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Set changes the working value for key.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working[key] = value
	return nil
}

// Save copies the working set over the saved set.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = maps.Clone(s.working)
	return nil
}

// Load discards unsaved edits.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working = maps.Clone(s.saved)
	return nil
}

// Path returns ":memory:".
func (s *ConfigStore) Path() string {
	return ":memory:"
}

func number(val any, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
