package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// Accepted spellings of each setting, flat or sectioned.
var settingKeys = map[string][]string{
	"host":      {"host", "typesense.host"},
	"port":      {"port", "typesense.port"},
	"protocol":  {"protocol", "typesense.protocol"},
	"log_file":  {"log_file", "log.file"},
	"log_level": {"log_level", "log.level"},
}

// Credential keys that are recognised only to be rejected.
var credentialKeys = []string{"api_key", "apikey", "typesense.api_key", "typesense.apikey"}

// SettingsStore reads settings from a file whose format is chosen by
// extension: .toml, .yaml/.yml or .json.
//
// Both flat keys (host = "...") and a sectioned layout ([typesense] host = "...",
// [log] level = "...") are accepted.
type SettingsStore struct {
	filePath string
}

// NewSettingsStore creates a store for the file at path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{filePath: path}
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// Load reads and decodes the settings file.
// Unknown keys are ignored. An API key in the file is ignored with a warning.
func (s *SettingsStore) Load() (domain.Settings, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings file: %w", err)
	}

	raw, err := decode(filepath.Ext(s.filePath), data)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidConfig, s.filePath, err)
	}
	values := flattenMap(raw, "")

	for _, k := range credentialKeys {
		if _, ok := values[k]; ok {
			logger.Warn("Ignoring %s in %s; the API key is only accepted via --api-key", k, s.filePath)
		}
	}

	var settings domain.Settings
	if settings.Host, err = lookupString(values, "host"); err != nil {
		return domain.Settings{}, err
	}
	if settings.Protocol, err = lookupString(values, "protocol"); err != nil {
		return domain.Settings{}, err
	}
	if settings.LogFile, err = lookupString(values, "log_file"); err != nil {
		return domain.Settings{}, err
	}
	if settings.LogLevel, err = lookupString(values, "log_level"); err != nil {
		return domain.Settings{}, err
	}
	if settings.Port, err = lookupInt(values, "port"); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// decode parses data according to the file extension.
func decode(ext string, data []byte) (map[string]any, error) {
	var out map[string]any
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported settings file extension %q", ext)
	}
	if out == nil {
		out = make(map[string]any)
	}
	return out, nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := strings.ToLower(key)
		if prefix != "" {
			fullKey = prefix + "." + fullKey
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

func lookup(values map[string]any, setting string) (any, bool) {
	for _, key := range settingKeys[setting] {
		if v, ok := values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

func lookupString(values map[string]any, setting string) (string, error) {
	v, ok := lookup(values, setting)
	if !ok {
		return "", nil
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", domain.ErrInvalidConfig, setting)
	}
	return str, nil
}

func lookupInt(values map[string]any, setting string) (int, error) {
	v, ok := lookup(values, setting)
	if !ok {
		return 0, nil
	}

	// TOML integers are int64, YAML integers are int, JSON uses json.Number.
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case uint64:
		return int(n), nil
	case json.Number:
		i, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidConfig, setting)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidConfig, setting)
	}
}
