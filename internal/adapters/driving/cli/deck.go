package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui"
	"github.com/custodia-labs/docdeck/internal/content"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driving"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// ErrDeckNotConfigured is returned by commands run before SetDeck.
var ErrDeckNotConfigured = errors.New("deck not configured")

// Deck holds the services the commands drive.
type Deck struct {
	Manager  driving.DocumentManager
	Opener   driving.DocumentOpener
	Tabs     tui.Tabs
	Content  *content.Catalog
	Settings driving.SettingsService

	// Session is optional. Without it history and restore are unavailable.
	Session driving.SessionService
}

// deck is the deck used by all commands.
var deck *Deck

// SetDeck sets the deck used by all commands.
func SetDeck(d *Deck) {
	deck = d
}

func requireDeck() (*Deck, error) {
	if deck == nil || deck.Manager == nil || deck.Opener == nil || deck.Content == nil {
		return nil, ErrDeckNotConfigured
	}
	return deck, nil
}

// settings returns the configured settings, or the defaults when no
// settings service is wired or the config is unreadable.
func (d *Deck) settings() domain.AppSettings {
	if d.Settings == nil {
		return domain.DefaultAppSettings()
	}
	s, err := d.Settings.Get()
	if err != nil {
		logger.Warn("using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *s
}

// restore reopens the saved session when restoring is enabled.
func (d *Deck) restore(ctx context.Context) (int, error) {
	if d.Session == nil || !d.settings().Session.Restore {
		return 0, nil
	}
	return d.Session.Restore(ctx, d.reopen)
}

func (d *Deck) reopen(ctx context.Context, entry domain.SessionEntry) error {
	model, err := d.Content.New(entry.ContentType, entry.Parameter)
	if err != nil {
		return err
	}
	_, err = d.Opener.Open(ctx, driving.OpenRequest{
		ID:          entry.DocumentID,
		ContentType: entry.ContentType,
		Title:       entry.Title,
		Model:       model,
		Parameter:   entry.Parameter,
	})
	return err
}

// shutdown saves the session and closes every document. Documents kept on
// close are switched to destroy so the drain can finish.
func (d *Deck) shutdown(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	if d.Session != nil {
		if err := d.Session.Snapshot(ctx, d.Manager); err != nil {
			errs = append(errs, err)
		}
	}
	for _, doc := range d.Manager.Documents() {
		doc.SetDestroyOnClose(true)
	}

	timeout := d.settings().Shutdown.Timeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := d.Manager.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown: %w", err))
	}
	return errors.Join(errs...)
}
