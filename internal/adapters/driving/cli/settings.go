package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in ~/.docdeck/config.toml.

A running deck picks up changes to the file without a restart.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting.

Keys:
  documents.close_button_enabled  true|false
  documents.default_title         text
  documents.fallback_content_type content type, empty for none
  documents.destroy_on_close      true|false
  session.restore                 true|false
  session.journal_limit           number of journal rows kept
  shutdown.timeout_seconds        seconds, 0 waits forever`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsList(cmd *cobra.Command, _ []string) error {
	if deck == nil || deck.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := deck.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	values := settingValues(settings)

	cmd.Println("Settings")
	cmd.Println("========")
	for _, key := range deck.Settings.Keys() {
		cmd.Printf("  %-32s %s\n", key, displayValue(values[key]))
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if deck == nil || deck.Settings == nil {
		return errors.New("settings service not configured")
	}

	settings, err := deck.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	value, ok := settingValues(settings)[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, args[0])
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if deck == nil || deck.Settings == nil {
		return errors.New("settings service not configured")
	}

	if err := deck.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	if _, err := deck.Settings.Get(); err != nil {
		return fmt.Errorf("settings invalid after update: %w", err)
	}
	cmd.Printf("Set %s = %s\n", args[0], displayValue(args[1]))
	return nil
}

// settingValues renders settings by config key.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"documents.close_button_enabled":  strconv.FormatBool(s.Documents.CloseButtonEnabled),
		"documents.default_title":         s.Documents.DefaultTitle,
		"documents.fallback_content_type": s.Documents.FallbackContentType,
		"documents.destroy_on_close":      strconv.FormatBool(s.Documents.DestroyOnClose),
		"session.restore":                 strconv.FormatBool(s.Session.Restore),
		"session.journal_limit":           strconv.Itoa(s.Session.JournalLimit),
		"shutdown.timeout_seconds":        strconv.Itoa(int(s.Shutdown.Timeout / time.Second)),
	}
}

func displayValue(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
