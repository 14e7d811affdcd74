package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("documents.close_button_enabled", false)
	_ = store.Set("documents.default_title", "Untitled")
	_ = store.Set("documents.fallback_content_type", "note")
	_ = store.Set("documents.destroy_on_close", false)
	_ = store.Set("session.restore", false)
	_ = store.Set("session.journal_limit", int64(0))
	_ = store.Set("shutdown.timeout_seconds", int64(3))

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.False(t, settings.Documents.CloseButtonEnabled)
	assert.Equal(t, "Untitled", settings.Documents.DefaultTitle)
	assert.Equal(t, "note", settings.Documents.FallbackContentType)
	assert.False(t, settings.Documents.DestroyOnClose)
	assert.False(t, settings.Session.Restore)
	assert.Equal(t, 0, settings.Session.JournalLimit)
	assert.Equal(t, 3*time.Second, settings.Shutdown.Timeout)
}

func TestSettingsService_Get_InvalidValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("session.journal_limit", -4)

	_, err := NewSettingsService(store).Get()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.DefaultAppSettings()
	want.Documents.DefaultTitle = "Draft"
	want.Documents.CloseButtonEnabled = false
	want.Session.JournalLimit = 50
	want.Shutdown.Timeout = 30 * time.Second

	require.NoError(t, service.Save(&want))
	got, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, 30, store.GetInt("shutdown.timeout_seconds"))
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	settings := domain.DefaultAppSettings()
	settings.Shutdown.Timeout = -time.Second

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		want    any
		wantErr bool
	}{
		{name: "bool", key: "session.restore", value: "false", want: false},
		{name: "int", key: "session.journal_limit", value: "20", want: 20},
		{name: "string", key: "documents.default_title", value: "Tab", want: "Tab"},
		{name: "bad bool", key: "documents.destroy_on_close", value: "maybe", wantErr: true},
		{name: "negative int", key: "shutdown.timeout_seconds", value: "-1", wantErr: true},
		{name: "unknown key", key: "documents.colour", value: "red", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			err := NewSettingsService(store).Set(tt.key, tt.value)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				_, exists := store.Get(tt.key)
				assert.False(t, exists)
				return
			}
			require.NoError(t, err)
			got, _ := store.Get(tt.key)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, 7)
	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "documents.fallback_content_type")
}
