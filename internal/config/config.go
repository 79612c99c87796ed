// Package config provides configuration loading and validation for the CLI and the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults applied when neither the config file, the environment nor a flag sets a value
const (
	DefaultPort      = 8080
	DefaultStorePath = "eduplan.json"
)

// Environment variables read by FromEnv
const (
	EnvAPIKey        = "GEMINI_API_KEY"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvStorePath     = "EDUPLAN_STORE"
	EnvLogFile       = "EDUPLAN_LOG_FILE"
	EnvPort          = "EDUPLAN_PORT"
	EnvModel         = "EDUPLAN_MODEL"
	EnvSpeechCommand = "EDUPLAN_SPEECH_COMMAND"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment, flags or defaults.
type Config struct {
	// Oracle
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Model name for every tier

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; wins over store_path
	StorePath   string `json:"store_path,omitempty"`   // JSON file holding the draft slots

	// Server
	Port               int    `json:"port,omitempty"`
	CORSOrigin         string `json:"cors_origin,omitempty"`
	PrintTimeoutSecond int    `json:"print_timeout_seconds,omitempty"` // PDF printing budget

	// Output
	LogFile       string `json:"log_file,omitempty"`       // Rotated JSON log file
	SpeechCommand string `json:"speech_command,omitempty"` // espeak-compatible text-to-speech binary
	Verbose       bool   `json:"verbose,omitempty"`        // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration environment variables. Unset variables stay empty.
func FromEnv() Config {
	cfg := Config{
		APIKey:        os.Getenv(EnvAPIKey),
		DatabaseURL:   os.Getenv(EnvDatabaseURL),
		StorePath:     os.Getenv(EnvStorePath),
		LogFile:       os.Getenv(EnvLogFile),
		Model:         os.Getenv(EnvModel),
		SpeechCommand: os.Getenv(EnvSpeechCommand),
	}
	if port, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:      DefaultPort,
		StorePath: DefaultStorePath,
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields; a missing API key only disables the advisor.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.PrintTimeoutSecond < 0 {
		return fmt.Errorf("config error: 'print_timeout_seconds' must be non-negative")
	}
	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("config error: 'database_url' must be a postgres:// URL")
	}
	if c.StorePath != "" {
		if err := dirExists(filepath.Dir(c.StorePath)); err != nil {
			return fmt.Errorf("config error: store directory: %w", err)
		}
	}
	if c.LogFile != "" {
		if err := dirExists(filepath.Dir(c.LogFile)); err != nil {
			return fmt.Errorf("config error: log directory: %w", err)
		}
	}
	if strings.ContainsAny(c.SpeechCommand, " \t\n") {
		return fmt.Errorf("config error: 'speech_command' must be a single executable name or path")
	}
	return nil
}

func dirExists(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// It is applied in layers: flags over config file over environment over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.SpeechCommand == "" {
		result.SpeechCommand = defaults.SpeechCommand
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.PrintTimeoutSecond == 0 {
		result.PrintTimeoutSecond = defaults.PrintTimeoutSecond
	}

	// Bool fields: cannot distinguish unset from false, so any layer turning it on wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
