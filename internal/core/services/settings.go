package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCloseButton     = "documents.close_button_enabled"
	keyDefaultTitle    = "documents.default_title"
	keyFallbackType    = "documents.fallback_content_type"
	keyDestroyOnClose  = "documents.destroy_on_close"
	keySessionRestore  = "session.restore"
	keyJournalLimit    = "session.journal_limit"
	keyShutdownTimeout = "shutdown.timeout_seconds"
)

type settingKind int

const (
	kindString settingKind = iota
	kindBool
	kindInt
)

var settingKinds = map[string]settingKind{
	keyCloseButton:     kindBool,
	keyDefaultTitle:    kindString,
	keyFallbackType:    kindString,
	keyDestroyOnClose:  kindBool,
	keySessionRestore:  kindBool,
	keyJournalLimit:    kindInt,
	keyShutdownTimeout: kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	timeout := s.getInt(keyShutdownTimeout, int(defaults.Shutdown.Timeout/time.Second))

	settings := &domain.AppSettings{
		Documents: domain.DocumentSettings{
			CloseButtonEnabled:  s.getBool(keyCloseButton, defaults.Documents.CloseButtonEnabled),
			DefaultTitle:        s.getString(keyDefaultTitle, defaults.Documents.DefaultTitle),
			FallbackContentType: s.configStore.GetString(keyFallbackType), // empty means no fallback
			DestroyOnClose:      s.getBool(keyDestroyOnClose, defaults.Documents.DestroyOnClose),
		},
		Session: domain.SessionSettings{
			Restore:      s.getBool(keySessionRestore, defaults.Session.Restore),
			JournalLimit: s.getInt(keyJournalLimit, defaults.Session.JournalLimit),
		},
		Shutdown: domain.ShutdownSettings{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyCloseButton, settings.Documents.CloseButtonEnabled},
		{keyDefaultTitle, settings.Documents.DefaultTitle},
		{keyFallbackType, settings.Documents.FallbackContentType},
		{keyDestroyOnClose, settings.Documents.DestroyOnClose},
		{keySessionRestore, settings.Session.Restore},
		{keyJournalLimit, settings.Session.JournalLimit},
		{keyShutdownTimeout, int(settings.Shutdown.Timeout / time.Second)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var parsed any
	switch kind {
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		parsed = b
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer", domain.ErrInvalidInput, key)
		}
		parsed = n
	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
