// Package cli provides the docdeck command line interface.
// It is a driving adapter: every command works through the driving ports
// of the deck handed over by SetDeck.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/logger"
)

// version is set at build time.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docdeck",
	Short: "A tabbed document deck for the terminal",
	Long: `docdeck hosts documents in a tab strip and manages their lifecycle:
creation, showing and hiding, closing with veto, and shutdown.

Run "docdeck tui" for the interactive deck or "docdeck serve" to drive
the deck from an MCP client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command and the TUI.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Commands stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
