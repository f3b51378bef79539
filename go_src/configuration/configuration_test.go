package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func createTestConfigFile(t *testing.T, filePath string, content interface{}) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal test config: %v", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		t.Fatalf("failed to write test config file: %v", err)
	}
}

func validTestConfig() Config {
	cfg := *Default()
	cfg.GlobalSettings.AppName = "TestApp"
	cfg.GlobalSettings.Version = "1.0.0"
	return cfg
}

func TestLoadConfig_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := validTestConfig()
	createTestConfigFile(t, path, want)

	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if got.GlobalSettings.AppName != want.GlobalSettings.AppName {
		t.Errorf("AppName = %q, want %q", got.GlobalSettings.AppName, want.GlobalSettings.AppName)
	}
	if got.Manifest.AppID != want.Manifest.AppID {
		t.Errorf("Manifest.AppID = %q, want %q", got.Manifest.AppID, want.Manifest.AppID)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write invalid config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON config")
	}
}

func TestValidate_Success(t *testing.T) {
	cfg := validTestConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed on valid config: %v", err)
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing app name", func(c *Config) { c.GlobalSettings.AppName = "" }},
		{"missing version", func(c *Config) { c.GlobalSettings.Version = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"missing log file path", func(c *Config) { c.Logging.FilePath = "" }},
		{"non-positive rotation size", func(c *Config) { c.Logging.RotationSize = 0 }},
		{"negative max backups", func(c *Config) { c.Logging.MaxBackups = -1 }},
		{"non-positive plain port", func(c *Config) { c.Connection.DefaultPlainPort = 0 }},
		{"non-positive secure port", func(c *Config) { c.Connection.DefaultSecurePort = 0 }},
		{"non-positive request timeout", func(c *Config) { c.Connection.RequestTimeoutSeconds = 0 }},
		{"non-positive discovery timeout", func(c *Config) { c.Discovery.SearchTimeoutSeconds = 0 }},
		{"empty search targets", func(c *Config) { c.Discovery.SearchTargets = nil }},
		{"missing manifest app id", func(c *Config) { c.Manifest.AppID = "" }},
		{"missing manifest vendor", func(c *Config) { c.Manifest.Vendor = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validTestConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected Validate to fail for case %q", tc.name)
			}
		})
	}
}

func TestGetConfigValue(t *testing.T) {
	cfg := validTestConfig()

	v, err := cfg.GetConfigValue("global_settings.app_name")
	if err != nil {
		t.Fatalf("GetConfigValue failed: %v", err)
	}
	if v.(string) != cfg.GlobalSettings.AppName {
		t.Errorf("got %v, want %v", v, cfg.GlobalSettings.AppName)
	}

	if _, err := cfg.GetConfigValue("global_settings.no_such_field"); err == nil {
		t.Error("expected error for unknown config key")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() config should validate: %v", err)
	}
}
