// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - SettingsStore: startup settings from a TOML, YAML or JSON file
package file
