package memory

import (
	"sync"

	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps settings in memory. It backs ephemeral decks and tests;
// nothing survives the process.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
	seed   map[string]any
}

// NewConfigStore creates a config store holding a copy of seed.
// Load resets the store to the seed.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	s := &ConfigStore{seed: make(map[string]any)}
	for _, m := range seed {
		for k, v := range m {
			s.seed[k] = v
		}
	}
	_ = s.Load()
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if str, ok := s.lookup(key).(string); ok {
		return str
	}
	return ""
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	switch v := s.lookup(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := s.lookup(key).(bool)
	return b
}

func (s *ConfigStore) lookup(key string) any {
	val, _ := s.Get(key)
	return val
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Load drops values set since creation and restores the seed.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]any, len(s.seed))
	for k, v := range s.seed {
		s.values[k] = v
	}
	return nil
}

// Path returns a placeholder path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
