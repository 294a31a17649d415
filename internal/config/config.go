// Package config loads and stores CLI configuration as TOML.
// Only non-secret settings belong in the file; the client secret and
// password may be omitted and resolved from the OS keychain instead.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/augustuswm/micro-sf-client/internal/xdg"
)

// ErrNotFound reports a missing config file.
var ErrNotFound = errors.New("config file not found")

// Config holds the connection settings for the record-query service.
type Config struct {
	LoginURL     string `toml:"login_url"`
	Version      string `toml:"version"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Username     string `toml:"username"`
	Password     string `toml:"password"`
}

// DefaultPath returns the config file path inside the XDG config dir.
func DefaultPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads configuration from the given path, falling back to the XDG
// default when path is empty. A missing file yields ErrNotFound.
func Load(path string) (Config, error) {
	var c Config
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return c, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return c, err
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the settings that must be present in the file. The client
// secret and password are allowed to be empty here; callers resolve those
// from the keychain.
func (c Config) Validate() error {
	switch {
	case c.LoginURL == "":
		return errors.New("config is missing login_url")
	case c.Version == "":
		return errors.New("config is missing version")
	case c.ClientID == "":
		return errors.New("config is missing client_id")
	case c.Username == "":
		return errors.New("config is missing username")
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(path string, c Config) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
