package driven

import "github.com/custodia-labs/typesense-mcp/internal/core/domain"

// SettingsStore reads optional startup settings.
// Implementations handle the file format; an unset value is the zero value.
type SettingsStore interface {
	// Load reads and decodes the settings.
	Load() (domain.Settings, error)

	// Path returns the settings file path.
	Path() string
}
