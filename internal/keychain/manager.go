// Copyright (c) 2026 Micro SF Client
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe access to the OS
// keychain for microsf secrets. The client secret and password used for the
// password grant are kept here rather than in the config file; issued access
// tokens are never persisted and live only in process memory.
package keychain

import (
	"errors"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "microsf"

// Keys used for storing secrets in the OS keychain.
const (
	KeyClientSecret = "client_secret"
	KeyPassword     = "password"
)

var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// Manager provides thread-safe operations against the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates a new keychain manager with the OS keyring opened.
func NewManager() (*Manager, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.SecretServiceBackend,
			keyring.PassBackend,
		},
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// GetManager returns the global keychain manager instance, creating it on
// first call. A failed initialization is retried on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}
	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}
	return globalManager, nil
}

// SaveSecrets stores the client secret and password. Empty values leave the
// corresponding entry untouched.
func (m *Manager) SaveSecrets(clientSecret, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if clientSecret != "" {
		if err := m.ring.Set(keyring.Item{Key: KeyClientSecret, Data: []byte(clientSecret)}); err != nil {
			return err
		}
	}
	if password != "" {
		if err := m.ring.Set(keyring.Item{Key: KeyPassword, Data: []byte(password)}); err != nil {
			return err
		}
	}
	return nil
}

// LoadClientSecret retrieves the stored client secret. A missing entry
// yields an empty string, not an error.
func (m *Manager) LoadClientSecret() (string, error) {
	return m.load(KeyClientSecret)
}

// LoadPassword retrieves the stored password. A missing entry yields an
// empty string, not an error.
func (m *Manager) LoadPassword() (string, error) {
	return m.load(KeyPassword)
}

func (m *Manager) load(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(item.Data), nil
}

// ClearSecrets removes all stored secrets. Missing entries are not errors.
func (m *Manager) ClearSecrets() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range []string{KeyClientSecret, KeyPassword} {
		if err := m.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return err
		}
	}
	return nil
}
