package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent document lifecycle events",
	Long: `Show the lifecycle journal: documents created, shown, hidden,
activated, closed and destroyed, newest first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the saved session",
	Long:  `Show the documents that will be reopened on the next start.`,
	Args:  cobra.NoArgs,
	RunE:  runSession,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of events")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if deck == nil || deck.Session == nil {
		return errors.New("session service not configured")
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	events, err := deck.Session.History(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		cmd.Println("No document events recorded.")
		return nil
	}

	for i := range events {
		ev := events[i]
		id := ev.DocumentID
		if id == "" {
			id = "-"
		}
		cmd.Printf("%s  %-9s  %s", ev.At.Local().Format(time.DateTime), ev.Kind, id)
		if ev.Title != "" {
			cmd.Printf("  %q", ev.Title)
		}
		cmd.Println()
	}
	cmd.Printf("\nTotal: %d events\n", len(events))
	return nil
}

func runSession(cmd *cobra.Command, _ []string) error {
	if deck == nil || deck.Session == nil {
		return errors.New("session service not configured")
	}

	entries, err := deck.Session.Saved(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No saved session.")
		return nil
	}

	cmd.Println("Saved session:")
	cmd.Println()
	for i := range entries {
		e := entries[i]
		marker := " "
		if e.Active {
			marker = "*"
		}
		cmd.Printf(" %s %d. %s\n", marker, e.Position+1, e.Title)
		cmd.Printf("      ID: %s\n", e.DocumentID)
		cmd.Printf("      Type: %s\n", e.ContentType)
	}
	cmd.Printf("\nTotal: %d documents\n", len(entries))
	return nil
}
