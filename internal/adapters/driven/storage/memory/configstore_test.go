package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("documents.default_title", "Item"))
	require.NoError(t, store.Set("documents.default_title", "Untitled"))

	val, ok := store.Get("documents.default_title")
	assert.True(t, ok)
	assert.Equal(t, "Untitled", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("title", "Item")
	_ = store.Set("limit", 500)
	_ = store.Set("limit64", int64(20))
	_ = store.Set("limitFloat", 7.9)
	_ = store.Set("restore", true)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"string", store.GetString("title"), "Item"},
		{"string wrong type", store.GetString("limit"), ""},
		{"string missing", store.GetString("missing"), ""},
		{"int", store.GetInt("limit"), 500},
		{"int64", store.GetInt("limit64"), 20},
		{"float64", store.GetInt("limitFloat"), 7},
		{"int wrong type", store.GetInt("title"), 0},
		{"bool", store.GetBool("restore"), true},
		{"bool wrong type", store.GetBool("title"), false},
		{"bool missing", store.GetBool("missing"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfigStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:", NewConfigStore().Path())
}

func TestConfigStore_SeedAndLoad(t *testing.T) {
	seed := map[string]any{"session.restore": false, "session.journal_limit": 10}
	store := NewConfigStore(seed)

	assert.False(t, store.GetBool("session.restore"))
	_, exists := store.Get("session.restore")
	assert.True(t, exists)

	require.NoError(t, store.Set("session.journal_limit", 99))
	require.NoError(t, store.Set("documents.default_title", "Tab"))
	seed["session.journal_limit"] = 1

	require.NoError(t, store.Load())

	assert.Equal(t, 10, store.GetInt("session.journal_limit"))
	_, exists = store.Get("documents.default_title")
	assert.False(t, exists)
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("key.%d", i), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("key.%d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 49, store.GetInt("key.49"))
}
