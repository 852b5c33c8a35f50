package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageRoot        = "storage.root"
	keyPublicPrefix       = "storage.public_prefix"
	keyMHTMLDir           = "images.mhtml_dir"
	keyDownloadDir        = "images.download_dir"
	keyDownload           = "images.download"
	keyFetchRate          = "fetch.rate_per_second"
	keyFetchUserAgent     = "fetch.user_agent"
	keySourceName         = "scraper.source_name"
	keyBaseURL            = "scraper.base_url"
	keyCDNHost            = "scraper.cdn_host"
	keyImageSize          = "scraper.image_size"
	keyContainerSelectors = "scraper.container_selectors"
	keyItemSelectors      = "scraper.item_selectors"
	keyDatabaseDir        = "database.dir"
)

type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindFloat
	kindList
)

// settingKeys are the accepted keys in display order.
var settingKeys = []struct {
	key  string
	kind keyKind
}{
	{keyStorageRoot, kindString},
	{keyPublicPrefix, kindString},
	{keyMHTMLDir, kindString},
	{keyDownloadDir, kindString},
	{keyDownload, kindBool},
	{keyFetchRate, kindFloat},
	{keyFetchUserAgent, kindString},
	{keySourceName, kindString},
	{keyBaseURL, kindString},
	{keyCDNHost, kindString},
	{keyImageSize, kindString},
	{keyContainerSelectors, kindList},
	{keyItemSelectors, kindList},
	{keyDatabaseDir, kindString},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Storage: domain.StorageSettings{
			Root:         s.configStore.GetString(keyStorageRoot),
			PublicPrefix: s.getString(keyPublicPrefix, d.Storage.PublicPrefix),
		},
		Images: domain.ImageSettings{
			MHTMLDir:    s.getString(keyMHTMLDir, d.Images.MHTMLDir),
			DownloadDir: s.getString(keyDownloadDir, d.Images.DownloadDir),
			Download:    s.getBool(keyDownload, d.Images.Download),
		},
		Fetch: domain.FetchSettings{
			RatePerSecond: s.getFloat(keyFetchRate, d.Fetch.RatePerSecond),
			UserAgent:     s.getString(keyFetchUserAgent, d.Fetch.UserAgent),
		},
		Scraper: domain.ScraperSettings{
			SourceName:         s.getString(keySourceName, d.Scraper.SourceName),
			BaseURL:            s.getString(keyBaseURL, d.Scraper.BaseURL),
			CDNHost:            s.getString(keyCDNHost, d.Scraper.CDNHost),
			ImageSize:          s.getString(keyImageSize, d.Scraper.ImageSize),
			ContainerSelectors: s.configStore.GetStringSlice(keyContainerSelectors),
			ItemSelectors:      s.configStore.GetStringSlice(keyItemSelectors),
		},
		DatabaseDir: s.configStore.GetString(keyDatabaseDir),
	}

	return settings, nil
}

// Set stores one setting, converting value to the key's type.
// List values are comma-separated.
func (s *SettingsService) Set(key, value string) error {
	for _, k := range settingKeys {
		if k.key != key {
			continue
		}
		var stored any
		switch k.kind {
		case kindBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
			}
			stored = b
		case kindFloat:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("%w: %s expects a non-negative number", domain.ErrInvalidInput, key)
			}
			stored = f
		case kindList:
			stored = splitList(value)
		default:
			stored = value
		}
		if err := s.configStore.Set(key, stored); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys lists the known setting keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
