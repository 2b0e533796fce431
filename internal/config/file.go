package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/titanous/json5"
)

// fileConfig is the on-disk projection of AppConfig. Its auth section has no
// secret fields, so a marshalled fileConfig cannot carry credentials.
type fileConfig struct {
	Basic       BasicSettings       `json:"basic"`
	Auth        fileAuth            `json:"auth"`
	Exploration ExplorationSettings `json:"exploration"`
	Storage     StorageSettings     `json:"storage"`
	Advanced    AdvancedSettings    `json:"advanced"`
}

type fileAuth struct {
	ClaudeModel           string `json:"claude_model"`
	GoogleCredentialsPath string `json:"google_credentials_path,omitempty"`
	GoogleTokenPath       string `json:"google_token_path,omitempty"`
	ChromeMCPURL          string `json:"chrome_mcp_url"`
	ChromeMCPPort         int    `json:"chrome_mcp_port"`
	TargetAuthType        string `json:"target_auth_type"`
	TargetUsername        string `json:"target_username,omitempty"`
}

// legacySecrets captures plaintext credentials written by older releases.
type legacySecrets struct {
	Auth struct {
		ClaudeAPIKey   string `json:"claude_api_key"`
		TargetPassword string `json:"target_password"`
	} `json:"auth"`
}

func (l legacySecrets) empty() bool {
	return l.Auth.ClaudeAPIKey == "" && l.Auth.TargetPassword == ""
}

func toFile(cfg *AppConfig) fileConfig {
	a := cfg.Auth
	return fileConfig{
		Basic: cfg.Basic,
		Auth: fileAuth{
			ClaudeModel:           a.ClaudeModel,
			GoogleCredentialsPath: a.GoogleCredentialsPath,
			GoogleTokenPath:       a.GoogleTokenPath,
			ChromeMCPURL:          a.ChromeMCPURL,
			ChromeMCPPort:         a.ChromeMCPPort,
			TargetAuthType:        a.TargetAuthType,
			TargetUsername:        a.TargetUsername,
		},
		Exploration: cfg.Exploration,
		Storage:     cfg.Storage,
		Advanced:    cfg.Advanced,
	}
}

// applyTo copies every persisted field onto cfg, leaving secrets untouched.
func (f fileConfig) applyTo(cfg *AppConfig) {
	cfg.Basic = f.Basic
	cfg.Auth.ClaudeModel = f.Auth.ClaudeModel
	cfg.Auth.GoogleCredentialsPath = f.Auth.GoogleCredentialsPath
	cfg.Auth.GoogleTokenPath = f.Auth.GoogleTokenPath
	cfg.Auth.ChromeMCPURL = f.Auth.ChromeMCPURL
	cfg.Auth.ChromeMCPPort = f.Auth.ChromeMCPPort
	cfg.Auth.TargetAuthType = f.Auth.TargetAuthType
	cfg.Auth.TargetUsername = f.Auth.TargetUsername
	cfg.Exploration = f.Exploration
	cfg.Storage = f.Storage
	cfg.Advanced = f.Advanced
}

// decodeFile parses data (JSON5) on top of the defaults so keys missing from
// the file keep their default values.
func decodeFile(data []byte) (fileConfig, legacySecrets, error) {
	f := toFile(Default())
	var legacy legacySecrets
	if err := json5.Unmarshal(data, &f); err != nil {
		return f, legacy, fmt.Errorf("parse config: %w", err)
	}
	if err := json5.Unmarshal(data, &legacy); err != nil {
		return f, legacy, fmt.Errorf("parse config: %w", err)
	}
	return f, legacy, nil
}

// writeFile atomically replaces path with f.
func writeFile(path string, f fileConfig) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+ConfigFileName+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
