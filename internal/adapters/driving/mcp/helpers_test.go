package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/container/tabstrip"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/views"
	"github.com/custodia-labs/docdeck/internal/content"
	"github.com/custodia-labs/docdeck/internal/content/note"
	"github.com/custodia-labs/docdeck/internal/core/services"
)

type testDeck struct {
	server  *Server
	manager *services.Manager
	strip   *tabstrip.Strip
	session *services.SessionService
}

// newTestDeck wires a real manager over a tab strip with the note view.
func newTestDeck(t *testing.T, withSession bool) *testDeck {
	t.Helper()

	resolver := views.NewResolver()
	require.NoError(t, note.Register(resolver))
	catalog := content.NewCatalog()
	catalog.Register(note.ContentType, note.Construct)

	strip := tabstrip.New()
	manager := services.NewManager(strip, resolver)
	ports := &Ports{
		Manager: manager,
		Opener:  services.NewOpener(manager, nil),
		Content: catalog,
	}

	deck := &testDeck{manager: manager, strip: strip}
	if withSession {
		deck.session = services.NewSessionService(memory.NewSessionStore(), 0)
		release := deck.session.Attach(manager)
		t.Cleanup(release)
		ports.Session = deck.session
	}

	server, err := NewServer(ports)
	require.NoError(t, err)
	deck.server = server

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = manager.Shutdown(ctx)
	})
	return deck
}

func (d *testDeck) open(t *testing.T, id, text string) DocumentOutput {
	t.Helper()
	_, out, err := d.server.handleOpen(context.Background(), nil, OpenInput{
		ContentType: note.ContentType,
		Parameter:   "text:" + text,
		ID:          id,
	})
	require.NoError(t, err)
	return out
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
