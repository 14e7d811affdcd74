// Command docdeck is a tabbed document deck for the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/custodia-labs/docdeck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/container/tabstrip"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docdeck/internal/adapters/driven/views"
	"github.com/custodia-labs/docdeck/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdeck/internal/content"
	"github.com/custodia-labs/docdeck/internal/content/note"
	"github.com/custodia-labs/docdeck/internal/core/domain"
	"github.com/custodia-labs/docdeck/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck/internal/core/services"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// version is set during the build process using ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// stores holds the persistence chosen for this run.
type stores struct {
	config  driven.ConfigStore
	session driven.SessionStore
	watch   *file.ConfigStore
	close   func() error
}

// openStores opens ~/.docdeck, or memory stores when DOCDECK_EPHEMERAL is
// set. DOCDECK_CONFIG_DIR and DOCDECK_DATA_DIR override the directories.
func openStores() (*stores, error) {
	if ephemeral, _ := strconv.ParseBool(os.Getenv("DOCDECK_EPHEMERAL")); ephemeral {
		logger.Debug("ephemeral deck: nothing is written to disk")
		return &stores{
			config:  memory.NewConfigStore(map[string]any{"session.restore": false}),
			session: memory.NewSessionStore(),
			close:   func() error { return nil },
		}, nil
	}

	configStore, err := file.NewConfigStore(os.Getenv("DOCDECK_CONFIG_DIR"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := sqlite.NewStore(os.Getenv("DOCDECK_DATA_DIR"))
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return &stores{
		config:  configStore,
		session: store.SessionStore(),
		watch:   configStore,
		close:   store.Close,
	}, nil
}

func run() error {
	st, err := openStores()
	if err != nil {
		return err
	}
	defer st.close()

	settingsService := services.NewSettingsService(st.config)

	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("using default settings: %v", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	resolver := views.NewResolver()
	if err := note.Register(resolver); err != nil {
		return err
	}
	catalog := content.NewCatalog()
	catalog.Register(note.ContentType, note.Construct)

	strip := tabstrip.New()
	manager := services.NewManager(strip, resolver, services.WithSettings(settings.Documents))
	opener := services.NewOpener(manager, func() bool {
		return manager.Settings().DestroyOnClose
	})

	session := services.NewSessionService(st.session, settings.Session.JournalLimit)
	release := session.Attach(manager)
	defer release()

	if st.watch != nil {
		watcher, err := file.NewWatcher(st.watch, file.DefaultDebounce, func() {
			updated, err := settingsService.Get()
			if err != nil {
				logger.Warn("ignoring config change: %v", err)
				return
			}
			manager.ApplySettings(updated.Documents)
			logger.Debug("settings reloaded from %s", st.watch.Path())
		})
		if err != nil {
			logger.Warn("config watcher disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	cli.SetVersion(version)
	cli.SetDeck(&cli.Deck{
		Manager:  manager,
		Opener:   opener,
		Tabs:     strip,
		Content:  catalog,
		Settings: settingsService,
		Session:  session,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
