package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docdeck/internal/adapters/driving/tui"
	"github.com/custodia-labs/docdeck/internal/logger"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("tui requires an interactive terminal")

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for docdeck.

The TUI shows open documents as tabs. The previous session is reopened
when session.restore is enabled.

Controls:
  n          - New note
  o          - Open a file
  tab/→, ←   - Next / previous tab
  1-9        - Go to tab
  s, x       - Show a hidden document / hide the active one
  w, W       - Close / force close
  ctrl+w     - Close the tab (its close button)
  r, a       - Rename tab / append a line
  ctrl+s     - Save
  ?          - Toggle help
  q          - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	d, err := requireDeck()
	if err != nil {
		return err
	}
	if d.Tabs == nil {
		return ErrDeckNotConfigured
	}
	if !isTerminal() {
		return ErrNotTerminal
	}

	if n, err := d.restore(cmd.Context()); err != nil {
		logger.Warn("restoring session: %v", err)
	} else if n > 0 {
		logger.Debug("restored %d documents", n)
	}

	ports := &tui.Ports{
		Manager: d.Manager,
		Opener:  d.Opener,
		Tabs:    d.Tabs,
		Content: d.Content,
		Session: d.Session,
	}

	app, err := tui.NewApp(ports,
		tui.WithVersion(version),
		tui.WithShutdownTimeout(d.settings().Shutdown.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return app.Err()
}
