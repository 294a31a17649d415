// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/augustuswm/micro-sf-client/internal/backend"
	"github.com/augustuswm/micro-sf-client/internal/config"
	clierrors "github.com/augustuswm/micro-sf-client/internal/errors"
	"github.com/augustuswm/micro-sf-client/internal/keychain"
	"github.com/augustuswm/micro-sf-client/internal/session"
)

// loadConfig reads and validates the config file at path (or the XDG
// default when empty).
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, clierrors.Wrap(clierrors.ConfigInvalid, "could not load config", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, clierrors.Wrap(clierrors.ConfigInvalid, "config is incomplete", err)
	}
	return cfg, nil
}

// resolveSecrets fills the client secret and password from the OS keychain
// when the config file omits them. Config file values win so that
// throwaway configs keep working without a keychain.
func resolveSecrets(cfg config.Config) (config.Config, error) {
	if cfg.ClientSecret != "" && cfg.Password != "" {
		return cfg, nil
	}
	km, err := keychain.GetManager()
	if err != nil {
		return cfg, clierrors.Wrap(clierrors.ConfigInvalid, "secrets missing from config and keychain unavailable", err)
	}
	if cfg.ClientSecret == "" {
		secret, err := km.LoadClientSecret()
		if err != nil {
			return cfg, err
		}
		cfg.ClientSecret = secret
	}
	if cfg.Password == "" {
		password, err := km.LoadPassword()
		if err != nil {
			return cfg, err
		}
		cfg.Password = password
	}
	if cfg.ClientSecret == "" || cfg.Password == "" {
		return cfg, clierrors.New(clierrors.ConfigInvalid, "client_secret or password not found; add them to the config or run 'microsf login'")
	}
	return cfg, nil
}

// newSessionClient builds a session client from a resolved config.
func newSessionClient(cfg config.Config) (*session.Client, error) {
	return session.New(backend.Credentials{
		LoginURL:     cfg.LoginURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Username:     cfg.Username,
		Password:     cfg.Password,
	}, cfg.Version)
}
