package driving

import "github.com/custodia-labs/ordersnap/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.Settings, error)

	// Set stores a single setting from its text form. Only known keys are accepted.
	Set(key, value string) error

	// Keys lists the known setting keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
