package vault

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zalando/go-keyring"
)

// Keychain implements Vault on top of the platform credential store
// (macOS Keychain, Windows Credential Manager, Secret Service on Linux).
type Keychain struct {
	service string
}

// NewKeychain returns a Keychain scoped to service. An empty service uses ServiceName.
func NewKeychain(service string) *Keychain {
	if service == "" {
		service = ServiceName
	}
	return &Keychain{service: service}
}

// Service returns the namespace entries are stored under.
func (k *Keychain) Service() string { return k.service }

func (k *Keychain) Store(key, value string) error {
	if err := keyring.Set(k.service, key, value); err != nil {
		slog.Error("vault: failed to store credential", "key", key)
		return fmt.Errorf("store credential %q: %s", key, Scrub(err.Error(), value))
	}
	slog.Info("vault: credential stored", "key", key)
	return nil
}

func (k *Keychain) Retrieve(key string) (string, error) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		// Raw keychain errors can embed secret material; log the key only.
		slog.Debug("vault: credential inaccessible", "key", key)
		return "", fmt.Errorf("%w: %s", ErrUnavailable, key)
	}
	slog.Debug("vault: credential retrieved", "key", key)
	return value, nil
}

func (k *Keychain) Delete(key string) error {
	err := keyring.Delete(k.service, key)
	switch {
	case err == nil:
		slog.Info("vault: credential deleted", "key", key)
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		slog.Info("vault: credential was not in keychain", "key", key)
		return nil
	default:
		slog.Error("vault: failed to delete credential", "key", key)
		return fmt.Errorf("delete credential %q: %s", key, Scrub(err.Error()))
	}
}

func (k *Keychain) Exists(key string) bool {
	_, err := keyring.Get(k.service, key)
	return err == nil
}
