package main

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/ordersnap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ordersnap/internal/adapters/driven/fetch"
	"github.com/custodia-labs/ordersnap/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/ordersnap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ordersnap/internal/adapters/driving/cli"
	"github.com/custodia-labs/ordersnap/internal/classifier"
	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
	"github.com/custodia-labs/ordersnap/internal/core/services"
	"github.com/custodia-labs/ordersnap/internal/logger"
	"github.com/custodia-labs/ordersnap/internal/mhtml"
	"github.com/custodia-labs/ordersnap/internal/scraper"
)

// wire builds the CLI services from configuration, with flag overrides.
func wire(opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("locating config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	applyOverrides(settings, opts, configDir)
	logger.Debug("config %s, storage root %s", configStore.Path(), settings.Storage.Root)

	files, err := filesystem.NewFileStore(settings.Storage.Root)
	if err != nil {
		return nil, fmt.Errorf("opening storage root: %w", err)
	}

	store, err := sqlite.NewStore(settings.DatabaseDir)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	classify := classifier.New(settings.Scraper.SourceName)
	extractor := scraper.New(classify, scraperRules(settings.Scraper), scraperConfig(settings))
	decoder := mhtml.New()
	fetcher := fetch.New(settings.Fetch.RatePerSecond,
		fetch.WithUserAgent(settings.Fetch.UserAgent),
		fetch.WithReferer(settings.Scraper.BaseURL))

	withDownload := services.NewImportService(decoder, extractor, files, fetcher, settings.Storage, settings.Images)
	withoutDownload := services.NewImportService(decoder, extractor, files, nil, settings.Storage, settings.Images)

	return &cli.Services{
		Import: func(download bool) driving.ImportService {
			if download {
				return withDownload
			}
			return withoutDownload
		},
		Ledger:         services.NewLedgerService(store.OrderStore()),
		Classify:       services.NewClassifyService(classify),
		Settings:       settingsService,
		DownloadImages: settings.Images.Download,
		Close:          store.Close,
	}, nil
}

// applyOverrides fills directories that are unset and applies flag values.
func applyOverrides(s *domain.Settings, opts cli.Options, configDir string) {
	if opts.StorageRoot != "" {
		s.Storage.Root = opts.StorageRoot
	}
	if s.Storage.Root == "" {
		s.Storage.Root = filepath.Join(configDir, "uploads")
	}
	if s.DatabaseDir == "" {
		s.DatabaseDir = filepath.Join(configDir, "data")
	}
}

func scraperRules(s domain.ScraperSettings) scraper.Rules {
	return scraper.DefaultRules().
		WithContainerSelectors(s.ContainerSelectors...).
		WithItemSelectors(s.ItemSelectors...)
}

func scraperConfig(s *domain.Settings) scraper.Config {
	cfg := scraper.DefaultConfig()
	cfg.SourceName = s.Scraper.SourceName
	cfg.BaseURL = s.Scraper.BaseURL
	cfg.CDNHost = s.Scraper.CDNHost
	cfg.ImageSize = s.Scraper.ImageSize
	cfg.PublicPrefix = s.Storage.PublicPrefix
	return cfg
}
