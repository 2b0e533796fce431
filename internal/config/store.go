package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/message"

	"github.com/autodoc-agent/autodoc/internal/i18n"
	"github.com/autodoc-agent/autodoc/internal/vault"
)

// APIKeyPrefix is the required prefix of a Claude API key.
const APIKeyPrefix = "sk-"

// Depth and page bounds accepted by Validate.
const (
	MinDepth = 1
	MaxDepth = 10
	MinPages = 10
	MaxPages = 1000
)

// Store loads and saves AppConfig, splitting secrets out to a vault.
// Operations that read or write the file are serialized, so a watcher reload
// and a frontend save on another goroutine cannot interleave.
type Store struct {
	path  string
	vault vault.Vault
	paths *PathValidator

	mu sync.Mutex
}

// NewStore returns a Store for the config file at path. A nil validator
// uses DefaultPathValidator.
func NewStore(path string, v vault.Vault, pv *PathValidator) *Store {
	if pv == nil {
		pv = DefaultPathValidator()
	}
	return &Store{path: path, vault: v, paths: pv}
}

// Path returns the config file path.
func (s *Store) Path() string { return s.path }

// Vault returns the credential store secrets are kept in.
func (s *Store) Vault() vault.Vault { return s.vault }

// Paths returns the validator used for storage and auth paths.
func (s *Store) Paths() *PathValidator { return s.paths }

// Load reads the config file, writing defaults first if it does not exist,
// and overlays secrets from the vault. Secrets the vault cannot provide are
// left empty.
func (s *Store) Load() (*AppConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := Default()

	f, legacy, err := s.readFile()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("config: file not found, writing defaults", "path", s.path)
		if err := writeFile(s.path, toFile(cfg)); err != nil {
			return nil, loadError(cfg.Basic.Language, err)
		}
	case err != nil:
		return nil, loadError(cfg.Basic.Language, err)
	default:
		f.applyTo(cfg)
		if !legacy.empty() {
			cfg.Auth.ClaudeAPIKey = legacy.Auth.ClaudeAPIKey
			cfg.Auth.TargetPassword = legacy.Auth.TargetPassword
			if _, err := s.migrate(cfg, legacy); err != nil {
				slog.Warn("config: plaintext credentials left in config file", "path", s.path, "error", err)
			}
		}
	}

	s.overlaySecrets(cfg)
	return cfg, nil
}

// Save validates every path in cfg, stores non-empty secrets in the vault and
// writes the remaining settings to the config file. Nothing is written when
// path validation fails.
func (s *Store) Save(cfg *AppConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := i18n.Printer(cfg.Basic.Language)

	canonical, problems := s.canonicalPaths(cfg, p)
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}

	if cfg.Auth.ClaudeAPIKey != "" {
		if err := s.vault.Store(vault.KeyClaudeAPIKey, cfg.Auth.ClaudeAPIKey); err != nil {
			return err
		}
	}
	if cfg.Auth.TargetPassword != "" {
		if err := s.vault.Store(vault.KeyTargetPassword, cfg.Auth.TargetPassword); err != nil {
			return err
		}
	}

	if err := writeFile(s.path, toFile(canonical)); err != nil {
		return fmt.Errorf("%s: %w", p.Sprintf(i18n.MsgSaveFailed), err)
	}
	slog.Info("config saved", "path", s.path)
	return nil
}

// Validate runs every semantic check on cfg and returns all violations as a
// *ValidationError. When cfg is valid the snapshot directory is created and a
// single confirmation message is returned.
func (s *Store) Validate(cfg *AppConfig) ([]string, error) {
	p := i18n.Printer(cfg.Basic.Language)
	var problems []string

	switch key := cfg.Auth.ClaudeAPIKey; {
	case key == "":
		problems = append(problems, p.Sprintf(i18n.MsgAPIKeyEmpty))
	case !strings.HasPrefix(key, APIKeyPrefix):
		problems = append(problems, p.Sprintf(i18n.MsgAPIKeyFormat))
	}

	if d := cfg.Exploration.MaxDepth; d < MinDepth || d > MaxDepth {
		problems = append(problems, p.Sprintf(i18n.MsgMaxDepthRange))
	}
	if n := cfg.Exploration.MaxPages; n < MinPages || n > MaxPages {
		problems = append(problems, p.Sprintf(i18n.MsgMaxPagesRange))
	}

	canonical, pathProblems := s.canonicalPaths(cfg, p)
	problems = append(problems, pathProblems...)

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	if err := os.MkdirAll(canonical.Storage.SnapshotStoragePath, 0755); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Sprintf(i18n.MsgSnapshotDirFailed), err)
	}

	return []string{p.Sprintf(i18n.MsgConfigValid)}, nil
}

// Reset overwrites the config file with Default.
func (s *Store) Reset() error {
	return s.Save(Default())
}

// MigrateLegacySecrets moves plaintext credentials found in the config file
// into the vault and rewrites the file without them. It returns the keys
// that were migrated.
func (s *Store) MigrateLegacySecrets() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, legacy, err := s.readFile()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, loadError(Default().Basic.Language, err)
	}
	if legacy.empty() {
		return nil, nil
	}

	cfg := Default()
	f.applyTo(cfg)
	return s.migrate(cfg, legacy)
}

func (s *Store) migrate(cfg *AppConfig, legacy legacySecrets) ([]string, error) {
	var migrated []string
	for _, c := range []struct{ key, value string }{
		{vault.KeyClaudeAPIKey, legacy.Auth.ClaudeAPIKey},
		{vault.KeyTargetPassword, legacy.Auth.TargetPassword},
	} {
		ok, err := vault.MigrateIfPresent(s.vault, c.key, c.value)
		if err != nil {
			return migrated, err
		}
		if ok {
			migrated = append(migrated, c.key)
		}
	}

	if err := writeFile(s.path, toFile(cfg)); err != nil {
		return migrated, fmt.Errorf("%s: %w", i18n.Printer(cfg.Basic.Language).Sprintf(i18n.MsgSaveFailed), err)
	}
	slog.Info("config: moved plaintext credentials to keychain", "path", s.path, "keys", migrated)
	return migrated, nil
}

func (s *Store) readFile() (fileConfig, legacySecrets, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fileConfig{}, legacySecrets{}, err
	}
	return decodeFile(data)
}

// overlaySecrets fills secret fields from the vault. A missing entry is
// normal; an inaccessible store is logged and otherwise ignored.
func (s *Store) overlaySecrets(cfg *AppConfig) {
	if v, ok := s.retrieve(vault.KeyClaudeAPIKey); ok {
		cfg.Auth.ClaudeAPIKey = v
	}
	if v, ok := s.retrieve(vault.KeyTargetPassword); ok {
		cfg.Auth.TargetPassword = v
	}
}

func (s *Store) retrieve(key string) (string, bool) {
	v, err := s.vault.Retrieve(key)
	if err != nil {
		if !errors.Is(err, vault.ErrNotFound) {
			slog.Warn("config: credential unavailable", "key", key)
		}
		return "", false
	}
	return v, true
}

// canonicalPaths validates storage paths and any set auth paths, one message
// per rejected path. The returned copy of cfg carries the canonical form of
// every accepted path.
func (s *Store) canonicalPaths(cfg *AppConfig, p *message.Printer) (*AppConfig, []string) {
	out := *cfg
	var problems []string
	for _, path := range []*string{
		&out.Storage.SnapshotStoragePath,
		&out.Storage.ScreenshotStoragePath,
		&out.Storage.DatabasePath,
	} {
		canonical, err := s.paths.Validate(*path)
		if err != nil {
			problems = append(problems, p.Sprintf(i18n.MsgStoragePathInvalid, err))
			continue
		}
		*path = canonical
	}
	for _, path := range []*string{&out.Auth.GoogleCredentialsPath, &out.Auth.GoogleTokenPath} {
		if *path == "" {
			continue
		}
		canonical, err := s.paths.Validate(*path)
		if err != nil {
			problems = append(problems, p.Sprintf(i18n.MsgAuthPathInvalid, err))
			continue
		}
		*path = canonical
	}
	return &out, problems
}

func loadError(lang string, err error) error {
	return fmt.Errorf("%s: %w", i18n.Printer(lang).Sprintf(i18n.MsgLoadFailed), err)
}
