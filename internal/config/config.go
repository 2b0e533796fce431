// Package config defines the AutoDoc Agent settings schema and persists it to
// the config file. Secret fields (Claude API key, target password) are kept in
// the OS credential store via package vault and never written to the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Config file location.
const (
	AppDirName     = "autodoc-agent"
	ConfigFileName = "config.json"
	ConfigEnvVar   = "AUTODOC_CONFIG"
)

// AppConfig is the full in-memory configuration, secrets included.
// JSON tags describe the frontend bridge shape; the file uses fileConfig.
type AppConfig struct {
	Basic       BasicSettings       `json:"basic"`
	Auth        AuthSettings        `json:"auth"`
	Exploration ExplorationSettings `json:"exploration"`
	Storage     StorageSettings     `json:"storage"`
	Advanced    AdvancedSettings    `json:"advanced"`
}

type BasicSettings struct {
	AppName        string `json:"app_name"`
	Language       string `json:"language"`
	AutoStart      bool   `json:"auto_start"`
	MinimizeToTray bool   `json:"minimize_to_tray"`
	CheckUpdates   bool   `json:"check_updates"`
}

// AuthSettings holds API and target-site credentials.
// ClaudeAPIKey and TargetPassword live in the keychain, not the config file.
type AuthSettings struct {
	ClaudeAPIKey          string `json:"claude_api_key"`
	ClaudeModel           string `json:"claude_model"`
	GoogleCredentialsPath string `json:"google_credentials_path,omitempty"`
	GoogleTokenPath       string `json:"google_token_path,omitempty"`
	ChromeMCPURL          string `json:"chrome_mcp_url"`
	ChromeMCPPort         int    `json:"chrome_mcp_port"`
	TargetAuthType        string `json:"target_auth_type"`
	TargetUsername        string `json:"target_username,omitempty"`
	TargetPassword        string `json:"target_password,omitempty"`
}

type ExplorationSettings struct {
	Strategy           string `json:"strategy"`
	MaxDepth           int    `json:"max_depth"`
	MaxPages           int    `json:"max_pages"`
	ScreenshotQuality  string `json:"screenshot_quality"`
	NetworkTimeout     int    `json:"network_timeout"` // seconds
	WaitForNetworkIdle bool   `json:"wait_for_network_idle"`
}

type StorageSettings struct {
	SnapshotStoragePath   string `json:"snapshot_storage_path"`
	ScreenshotStoragePath string `json:"screenshot_storage_path"`
	DatabasePath          string `json:"database_path"`
	EnableCompression     bool   `json:"enable_compression"`
	AutoCleanup           bool   `json:"auto_cleanup"`
	RetentionDays         int    `json:"retention_days"`
}

type AdvancedSettings struct {
	LogLevel        string `json:"log_level"`
	EnableTelemetry bool   `json:"enable_telemetry"`
	ConcurrentTabs  int    `json:"concurrent_tabs"`
	APIRateLimit    int    `json:"api_rate_limit"` // requests per minute
	ProxyURL        string `json:"proxy_url,omitempty"`
	CustomUserAgent string `json:"custom_user_agent,omitempty"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	docs := filepath.Join(DocumentsDir(), "AutoDoc")

	return &AppConfig{
		Basic: BasicSettings{
			AppName:        "AutoDoc Agent",
			Language:       "zh-TW",
			AutoStart:      false,
			MinimizeToTray: true,
			CheckUpdates:   true,
		},
		Auth: AuthSettings{
			ClaudeModel:    "claude-sonnet-4-20250514",
			ChromeMCPURL:   "http://localhost",
			ChromeMCPPort:  3001,
			TargetAuthType: "none",
		},
		Exploration: ExplorationSettings{
			Strategy:           "importance",
			MaxDepth:           5,
			MaxPages:           100,
			ScreenshotQuality:  "medium",
			NetworkTimeout:     30,
			WaitForNetworkIdle: true,
		},
		Storage: StorageSettings{
			SnapshotStoragePath:   filepath.Join(docs, "snapshots"),
			ScreenshotStoragePath: filepath.Join(docs, "screenshots"),
			DatabasePath:          filepath.Join(docs, "autodoc.db"),
			EnableCompression:     true,
			AutoCleanup:           false,
			RetentionDays:         0,
		},
		Advanced: AdvancedSettings{
			LogLevel:        "info",
			EnableTelemetry: false,
			ConcurrentTabs:  3,
			APIRateLimit:    20,
		},
	}
}

// DocumentsDir returns the user's documents directory, or "." when the
// platform does not report one.
func DocumentsDir() string {
	if d := xdg.UserDirs.Documents; d != "" {
		return d
	}
	return "."
}

// DefaultPath returns the config file path: $AUTODOC_CONFIG when set,
// otherwise <config home>/autodoc-agent/config.json.
func DefaultPath() string {
	if v := os.Getenv(ConfigEnvVar); v != "" {
		return v
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}
