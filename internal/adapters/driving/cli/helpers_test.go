package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/container/tabstrip"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/views"
	"github.com/custodia-labs/docdeck/internal/content"
	"github.com/custodia-labs/docdeck/internal/content/note"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/core/services"
)

type testDeck struct {
	*Deck
	manager *services.Manager
	config  *memory.ConfigStore
	store   *memory.SessionStore
}

// setupTestDeck wires a real deck over in-memory stores and installs it
// for the commands. The previous deck is restored on cleanup.
func setupTestDeck(t *testing.T) *testDeck {
	t.Helper()
	return setupTestDeckWithStore(t, memory.NewSessionStore())
}

// setupTestDeckWithStore is setupTestDeck over an existing session store,
// standing in for a later run of the program.
func setupTestDeckWithStore(t *testing.T, store *memory.SessionStore) *testDeck {
	t.Helper()

	resolver := views.NewResolver()
	require.NoError(t, note.Register(resolver))
	catalog := content.NewCatalog()
	catalog.Register(note.ContentType, note.Construct)

	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)

	strip := tabstrip.New()
	manager := services.NewManager(strip, resolver)
	session := services.NewSessionService(store, 0)
	release := session.Attach(manager)

	td := &testDeck{
		Deck: &Deck{
			Manager:  manager,
			Opener:   services.NewOpener(manager, nil),
			Tabs:     strip,
			Content:  catalog,
			Settings: settings,
			Session:  session,
		},
		manager: manager,
		config:  config,
		store:   store,
	}

	previous := deck
	SetDeck(td.Deck)
	t.Cleanup(func() {
		SetDeck(previous)
		release()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = manager.Shutdown(ctx)
	})
	return td
}

// openNote opens an in-memory note under id.
func (d *testDeck) openNote(t *testing.T, id, text string) driving.Document {
	t.Helper()
	model, err := d.Content.New(note.ContentType, "text:"+text)
	require.NoError(t, err)
	doc, err := d.Opener.Open(context.Background(), driving.OpenRequest{
		ID:          id,
		ContentType: note.ContentType,
		Title:       id,
		Model:       model,
	})
	require.NoError(t, err)
	return doc
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
