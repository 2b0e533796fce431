// Package vault keeps secret configuration values (API keys, passwords) in the
// host OS credential store so they never reach the plaintext config file.
//
// Every call round-trips to the OS store; nothing is cached in-process.
package vault

import (
	"errors"
	"log/slog"
)

// ServiceName scopes every entry written by the application.
const ServiceName = "AutoDoc Agent"

// Keys of the secrets the config layer keeps out of the config file.
const (
	KeyClaudeAPIKey   = "claude_api_key"
	KeyTargetPassword = "target_password"
)

var (
	// ErrNotFound means no entry exists for the key.
	ErrNotFound = errors.New("credential not found")
	// ErrUnavailable means the OS store refused or failed the lookup.
	ErrUnavailable = errors.New("credential store inaccessible")
)

// Vault is a key/value secret store scoped under a single service name.
type Vault interface {
	Store(key, value string) error
	// Retrieve returns ErrNotFound or ErrUnavailable (wrapped) on failure.
	// The underlying store's error text is never included.
	Retrieve(key string) (string, error)
	// Delete treats a missing entry as success.
	Delete(key string) error
	// Exists reports false when the entry is missing or the store is inaccessible.
	Exists(key string) bool
}

// MigrateIfPresent moves a legacy plaintext secret into v.
// It reports whether a migration took place; an empty value is not migrated.
func MigrateIfPresent(v Vault, key, plaintext string) (bool, error) {
	if plaintext == "" {
		return false, nil
	}
	slog.Info("vault: migrating plaintext credential", "key", key)
	if err := v.Store(key, plaintext); err != nil {
		return false, err
	}
	return true, nil
}
