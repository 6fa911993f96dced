// Credential store: a single JSON file under the user config directory,
// hardened to owner-only permissions. Read failures are treated as "no
// stored key" so a missing or corrupt file never blocks an invocation that
// can authenticate another way.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const credentialsFile = "credentials.json"

// ConfigDir returns the shellsage configuration directory, creating it with
// owner-only permissions if needed. XDG_CONFIG_HOME is honored, with
// ~/.config as the fallback.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving config dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}

	dir := filepath.Join(base, "shellsage")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	// MkdirAll leaves the mode alone for a pre-existing directory.
	if err := os.Chmod(dir, 0o700); err != nil {
		return "", fmt.Errorf("securing config dir: %w", err)
	}
	return dir, nil
}

// credentialsPath returns the path to the credentials file.
func credentialsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credentialsFile), nil
}

// LoadAPIKey returns the stored API key for a provider, or "" when there is
// none. Missing or malformed files are "no stored key", never an error.
func LoadAPIKey(provider string) string {
	info, err := getProviderInfo(normalizeProvider(provider))
	if err != nil {
		return ""
	}

	path, err := credentialsPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var creds map[string]string
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	return creds[info.credKey]
}

// SaveAPIKey stores an API key for a provider, preserving other entries.
// The file is written with owner read/write permissions only.
func SaveAPIKey(provider, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	info, err := getProviderInfo(normalizeProvider(provider))
	if err != nil {
		return err
	}

	path, err := credentialsPath()
	if err != nil {
		return err
	}

	// Carry over existing entries; a corrupt file starts fresh.
	creds := map[string]string{}
	if data, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(data, &creds)
	}
	creds[info.credKey] = apiKey

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return os.Chmod(path, 0o600)
}
