package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
)

// Config holds everything needed to stand up a webOS TV client: who we
// present ourselves as, how to log, and the default connection/discovery/
// TLS knobs. Persistence of the client key returned by pairing is left to
// the caller; Config carries no storage section.
type Config struct {
	GlobalSettings GlobalSettings `json:"global_settings"`
	Logging        Logging        `json:"logging"`
	Connection     Connection     `json:"connection"`
	TLSSettings    TLSSettings    `json:"tls_settings"`
	Discovery      Discovery      `json:"discovery"`
	Manifest       Manifest       `json:"manifest"`
}

// GlobalSettings struct
type GlobalSettings struct {
	AppName string `json:"app_name"`
	Version string `json:"version"`
}

// Logging struct
type Logging struct {
	Level         string `json:"level"` // e.g., "debug", "info", "warn", "error"
	FilePath      string `json:"file_path"`
	RotationSize  int    `json:"rotation_size"` // in MB
	MaxBackups    int    `json:"max_backups"`
	ConsoleOutput bool   `json:"console_output"`
}

// Connection holds the defaults used to build an Endpoint and drive request
// timeouts when the caller doesn't override them explicitly.
type Connection struct {
	DefaultSecure         bool `json:"default_secure"`
	DefaultPlainPort      int  `json:"default_plain_port"`
	DefaultSecurePort     int  `json:"default_secure_port"`
	RequestTimeoutSeconds int  `json:"request_timeout_seconds"`
}

// TLSSettings controls how the TLS context is built for secure connections.
type TLSSettings struct {
	CertFile  string `json:"cert_file,omitempty"`
	VerifySSL bool   `json:"verify_ssl"`
}

// Discovery holds SSDP search parameters.
type Discovery struct {
	SearchTimeoutSeconds int      `json:"search_timeout_seconds"`
	SearchTargets        []string `json:"search_targets"`
}

// Manifest describes the caller's registration identity. Permissions are
// the SSAP permission names requested during pairing (e.g. "CONTROL_AUDIO",
// "READ_CURRENT_CHANNEL"); see go_src/webos/manifest.go for the default set
// shipped with the library.
type Manifest struct {
	AppID       string   `json:"app_id"`
	Vendor      string   `json:"vendor"`
	Permissions []string `json:"permissions,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config JSON: %w", err)
	}

	return &config, nil
}

// Validate checks for the presence and correctness of required configuration
// fields and returns an error for the first one that fails; it does not fill
// in defaults.
func (c *Config) Validate() error {
	if c.GlobalSettings.AppName == "" {
		return fmt.Errorf("global_settings.app_name is required")
	}
	if c.GlobalSettings.Version == "" {
		return fmt.Errorf("global_settings.version is required")
	}

	if c.Logging.Level == "" {
		return fmt.Errorf("logging.level is required")
	}
	validLogLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	levelIsValid := false
	for _, level := range validLogLevels {
		if strings.ToLower(c.Logging.Level) == level {
			levelIsValid = true
			break
		}
	}
	if !levelIsValid {
		return fmt.Errorf("logging.level is invalid: %s", c.Logging.Level)
	}
	if c.Logging.FilePath == "" {
		return fmt.Errorf("logging.file_path is required")
	}
	if c.Logging.RotationSize <= 0 {
		return fmt.Errorf("logging.rotation_size must be positive")
	}
	if c.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging.max_backups cannot be negative")
	}

	if c.Connection.DefaultPlainPort <= 0 {
		return fmt.Errorf("connection.default_plain_port must be positive")
	}
	if c.Connection.DefaultSecurePort <= 0 {
		return fmt.Errorf("connection.default_secure_port must be positive")
	}
	if c.Connection.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("connection.request_timeout_seconds must be positive")
	}

	if c.Discovery.SearchTimeoutSeconds <= 0 {
		return fmt.Errorf("discovery.search_timeout_seconds must be positive")
	}
	if len(c.Discovery.SearchTargets) == 0 {
		return fmt.Errorf("discovery.search_targets must not be empty")
	}

	if c.Manifest.AppID == "" {
		return fmt.Errorf("manifest.app_id is required")
	}
	if c.Manifest.Vendor == "" {
		return fmt.Errorf("manifest.vendor is required")
	}

	return nil
}

// GetConfigValue retrieves a configuration value using a dot-separated key,
// matching either the struct field name (case-insensitively) or its json tag.
func (c *Config) GetConfigValue(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	currentValue := reflect.ValueOf(c).Elem()

	for _, part := range parts {
		if currentValue.Kind() == reflect.Ptr {
			currentValue = currentValue.Elem()
		}

		if currentValue.Kind() != reflect.Struct {
			return nil, fmt.Errorf("key part '%s' is not a struct in key '%s'", part, key)
		}

		field := currentValue.FieldByNameFunc(func(fieldName string) bool {
			structField, ok := currentValue.Type().FieldByName(fieldName)
			if !ok {
				return false
			}
			jsonTag := structField.Tag.Get("json")
			if jsonTag == part || strings.Split(jsonTag, ",")[0] == part {
				return true
			}
			return strings.EqualFold(fieldName, part)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("key part '%s' not found in key '%s'", part, key)
		}
		currentValue = field
	}
	if !currentValue.CanInterface() {
		return nil, fmt.Errorf("cannot get interface for key %s", key)
	}

	return currentValue.Interface(), nil
}

// GetLoggingConfig retrieves the logging configuration section.
func (c *Config) GetLoggingConfig() Logging {
	return c.Logging
}

// Default returns a Config populated with the library's built-in defaults,
// suitable as a starting point before overlaying a JSON file.
func Default() *Config {
	return &Config{
		GlobalSettings: GlobalSettings{AppName: "gowebostv", Version: "0.1.0"},
		Logging: Logging{
			Level:         "info",
			FilePath:      "./log",
			RotationSize:  2,
			MaxBackups:    10,
			ConsoleOutput: true,
		},
		Connection: Connection{
			DefaultSecure:         true,
			DefaultPlainPort:      3000,
			DefaultSecurePort:     3001,
			RequestTimeoutSeconds: 60,
		},
		TLSSettings: TLSSettings{VerifySSL: false},
		Discovery: Discovery{
			SearchTimeoutSeconds: 3,
			SearchTargets:        []string{"urn:lge-com:service:webos-second-screen:1", "upnp:rootdevice"},
		},
		Manifest: Manifest{AppID: "gowebostv.client", Vendor: "gowebostv"},
	}
}
