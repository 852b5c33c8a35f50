package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
	"github.com/custodia-labs/ordersnap/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Options are the global flag values passed to the wiring function.
type Options struct {
	ConfigDir   string
	StorageRoot string
}

// Services bundles the driving ports the commands use.
type Services struct {
	// Import returns an import service; download selects whether external
	// images are fetched.
	Import func(download bool) driving.ImportService

	Ledger   driving.LedgerService
	Classify driving.ClassifyService
	Settings driving.SettingsService

	// DownloadImages is the configured default for import downloads.
	DownloadImages bool

	// Close releases resources held by the services. May be nil.
	Close func() error
}

// Wiring builds services from the global options.
type Wiring func(Options) (*Services, error)

var (
	wire     Wiring
	current  *Services
	options  Options

	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "ordersnap",
	Short: "Import purchase orders from saved order-history pages",
	Long: `ordersnap reads order-history pages saved from a marketplace, either as
MHTML web archives or plain HTML, and extracts the orders, their items,
prices, images and electronic component attributes.`,
	SilenceUsage:      true,
	PersistentPreRunE: configureLogging,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or off")
	flags.StringVar(&options.ConfigDir, "config-dir", "", "configuration directory (default ~/.ordersnap)")
	flags.StringVar(&options.StorageRoot, "storage-root", "", "directory images are stored under")
}

// Execute runs the root command, building services on first use with w.
func Execute(w Wiring) error {
	wire = w
	defer closeServices()
	return rootCmd.Execute()
}

// SetServices installs prebuilt services, bypassing the wiring function.
func SetServices(s *Services) {
	current = s
}

func configureLogging(_ *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if logLevel == "" {
		return nil
	}
	level, ok := logger.ParseLevel(logLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", logLevel)
	}
	logger.SetLevel(level)
	return nil
}

// loadServices returns the installed services, wiring them on first use.
func loadServices() (*Services, error) {
	if current != nil {
		return current, nil
	}
	if wire == nil {
		return nil, errors.New("services not configured")
	}
	s, err := wire(options)
	if err != nil {
		return nil, err
	}
	current = s
	return current, nil
}

func closeServices() {
	if current == nil || current.Close == nil {
		return
	}
	if err := current.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
}
