package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, image download and scraper settings.

Settings are stored in config.toml in the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting. List settings take a comma-separated value, for example:

  ordersnap settings set scraper.container_selectors ".order-card,.order-row"

Run 'ordersnap settings keys' for the accepted keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func settingsService() (driving.SettingsService, error) {
	svc, err := loadServices()
	if err != nil {
		return nil, err
	}
	if svc.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return svc.Settings, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	printSettings(cmd.OutOrStdout(), settings)
	return nil
}

func printSettings(w io.Writer, s *domain.Settings) {
	st := stylesFor(w)
	section := func(name string) {
		fmt.Fprintln(w, st.Title.Render("["+name+"]"))
	}
	value := func(label, v string) {
		if v == "" {
			v = st.Muted.Render("(not set)")
		}
		fmt.Fprintf(w, "  %s: %s\n", label, v)
	}

	section("Storage")
	value("Root", s.Storage.Root)
	value("Public prefix", s.Storage.PublicPrefix)
	fmt.Fprintln(w)

	section("Images")
	value("Archive directory", s.Images.MHTMLDir)
	value("Download directory", s.Images.DownloadDir)
	value("Download external images", yesNo(s.Images.Download))
	fmt.Fprintln(w)

	section("Fetch")
	value("Rate per second", fmt.Sprintf("%g", s.Fetch.RatePerSecond))
	value("User agent", s.Fetch.UserAgent)
	fmt.Fprintln(w)

	section("Scraper")
	value("Source name", s.Scraper.SourceName)
	value("Base URL", s.Scraper.BaseURL)
	value("CDN host", s.Scraper.CDNHost)
	value("Image size", s.Scraper.ImageSize)
	value("Container selectors", strings.Join(s.Scraper.ContainerSelectors, ", "))
	value("Item selectors", strings.Join(s.Scraper.ItemSelectors, ", "))
	fmt.Fprintln(w)

	section("Database")
	value("Directory", s.DatabaseDir)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	if err := svc.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}

	for _, key := range svc.Keys() {
		cmd.Println(key)
	}
	return nil
}
