package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// basic
	if cfg.Basic.AppName != "AutoDoc Agent" {
		t.Errorf("app_name = %q", cfg.Basic.AppName)
	}
	if cfg.Basic.Language != "zh-TW" {
		t.Errorf("language = %q", cfg.Basic.Language)
	}
	if cfg.Basic.AutoStart {
		t.Error("auto_start should default to false")
	}
	if !cfg.Basic.MinimizeToTray {
		t.Error("minimize_to_tray should default to true")
	}
	if !cfg.Basic.CheckUpdates {
		t.Error("check_updates should default to true")
	}

	// auth
	if cfg.Auth.ClaudeAPIKey != "" {
		t.Errorf("claude_api_key should be empty, got %q", cfg.Auth.ClaudeAPIKey)
	}
	if cfg.Auth.ClaudeModel != "claude-sonnet-4-20250514" {
		t.Errorf("claude_model = %q", cfg.Auth.ClaudeModel)
	}
	if cfg.Auth.ChromeMCPURL != "http://localhost" {
		t.Errorf("chrome_mcp_url = %q", cfg.Auth.ChromeMCPURL)
	}
	if cfg.Auth.ChromeMCPPort != 3001 {
		t.Errorf("chrome_mcp_port = %d", cfg.Auth.ChromeMCPPort)
	}
	if cfg.Auth.TargetAuthType != "none" {
		t.Errorf("target_auth_type = %q", cfg.Auth.TargetAuthType)
	}
	if cfg.Auth.TargetPassword != "" || cfg.Auth.TargetUsername != "" {
		t.Error("target credentials should be unset")
	}
	if cfg.Auth.GoogleCredentialsPath != "" || cfg.Auth.GoogleTokenPath != "" {
		t.Error("google paths should be unset")
	}

	// exploration
	if cfg.Exploration.Strategy != "importance" {
		t.Errorf("strategy = %q", cfg.Exploration.Strategy)
	}
	if cfg.Exploration.MaxDepth != 5 {
		t.Errorf("max_depth = %d", cfg.Exploration.MaxDepth)
	}
	if cfg.Exploration.MaxPages != 100 {
		t.Errorf("max_pages = %d", cfg.Exploration.MaxPages)
	}
	if cfg.Exploration.ScreenshotQuality != "medium" {
		t.Errorf("screenshot_quality = %q", cfg.Exploration.ScreenshotQuality)
	}
	if cfg.Exploration.NetworkTimeout != 30 {
		t.Errorf("network_timeout = %d", cfg.Exploration.NetworkTimeout)
	}
	if !cfg.Exploration.WaitForNetworkIdle {
		t.Error("wait_for_network_idle should default to true")
	}

	// storage
	if !cfg.Storage.EnableCompression {
		t.Error("enable_compression should default to true")
	}
	if cfg.Storage.AutoCleanup {
		t.Error("auto_cleanup should default to false")
	}
	if cfg.Storage.RetentionDays != 0 {
		t.Errorf("retention_days = %d", cfg.Storage.RetentionDays)
	}

	// advanced
	if cfg.Advanced.LogLevel != "info" {
		t.Errorf("log_level = %q", cfg.Advanced.LogLevel)
	}
	if cfg.Advanced.EnableTelemetry {
		t.Error("enable_telemetry should default to false")
	}
	if cfg.Advanced.ConcurrentTabs != 3 {
		t.Errorf("concurrent_tabs = %d", cfg.Advanced.ConcurrentTabs)
	}
	if cfg.Advanced.APIRateLimit != 20 {
		t.Errorf("api_rate_limit = %d", cfg.Advanced.APIRateLimit)
	}
}

func TestDefault_StoragePaths(t *testing.T) {
	cfg := Default()
	root := filepath.Join(DocumentsDir(), "AutoDoc")

	tests := []struct {
		name, got, want string
	}{
		{"snapshots", cfg.Storage.SnapshotStoragePath, filepath.Join(root, "snapshots")},
		{"screenshots", cfg.Storage.ScreenshotStoragePath, filepath.Join(root, "screenshots")},
		{"database", cfg.Storage.DatabasePath, filepath.Join(root, "autodoc.db")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, tt.got)
			}
			if !strings.Contains(tt.got, "AutoDoc") {
				t.Errorf("path %s should live under AutoDoc", tt.got)
			}
		})
	}
}

func TestDefault_ReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Basic.AppName = "changed"
	if Default().Basic.AppName != "AutoDoc Agent" {
		t.Error("Default must not share state between calls")
	}
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/tmp/autodoc-test/config.json")
	if got := DefaultPath(); got != "/tmp/autodoc-test/config.json" {
		t.Errorf("expected env override, got %s", got)
	}
}

func TestDefaultPath_Default(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	got := DefaultPath()
	if filepath.Base(got) != ConfigFileName {
		t.Errorf("expected %s file name, got %s", ConfigFileName, got)
	}
	if filepath.Base(filepath.Dir(got)) != AppDirName {
		t.Errorf("expected %s directory, got %s", AppDirName, got)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Problems: []string{"a", "b", "c"}}
	if err.Error() != "a; b; c" {
		t.Errorf("unexpected joined message: %q", err.Error())
	}
}
