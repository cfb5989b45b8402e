// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in early versions.
	legacyConfigPath = "config.json"
	// defaultRequestTimeout is the default timeout for HTTP requests.
	defaultRequestTimeout = 600 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	Hosts            []Host   `json:"hosts"`
	Tools            []string `json:"tools,omitempty"`
	Debug            bool     `json:"debug"`
	DisableStreaming bool     `json:"disableStreaming"`
	TimeoutSeconds   int      `json:"timeout,omitempty"`
	LogFile          string   `json:"logFile,omitempty"`
	ConfigPath       string   `json:"-"`
}

// Host represents a single chat backend without native tool support.
type Host struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Model        string `json:"model"`
	SystemPrompt string `json:"systemprompt"`
}

// RequestTimeout returns the timeout duration for HTTP requests, falling
// back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the path to the application log file, applying a
// default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "toolless.log"
}

// EnabledTools returns the configured tool allow-list. An empty list
// means every built-in tool is enabled.
func (c Config) EnabledTools() []string {
	return c.Tools
}

// Load reads the application configuration from the specified path, with
// fallback to a legacy path. Hosts may be empty; commands that talk to a
// backend validate host presence themselves.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found (searched %q and %q)", DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a
// specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
