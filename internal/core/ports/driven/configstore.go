package driven

import "github.com/custodia-labs/catalog-cli/internal/core/domain"

// SettingsStore loads and saves pipeline settings.
type SettingsStore interface {
	// Load returns the stored settings, with defaults filled in for
	// missing values.
	Load() (domain.Settings, error)

	// Save persists the settings.
	Save(settings domain.Settings) error
}
