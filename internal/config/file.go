package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file structure.
type FileConfig struct {
	ServerPort         string   `toml:"server_port"`
	LogLevel           string   `toml:"log_level"`
	BaseURL            string   `toml:"base_url"`
	DefaultModel       string   `toml:"default_model"`
	DefaultTemperature *float64 `toml:"default_temperature"`
	AppTitle           string   `toml:"app_title"`
	DefaultReferer     string   `toml:"default_referer"`
	AllowedOrigins     []string `toml:"allowed_origins"`
	CountTokens        *bool    `toml:"count_tokens"`
	MetricsModels      []string `toml:"metrics_models"`
}

// LoadFile loads configuration from the TOML file.
// Returns an empty FileConfig if the file doesn't exist.
func LoadFile() (*FileConfig, error) {
	return LoadFileFrom(ConfigPath())
}

// LoadFileFrom loads configuration from the TOML file at path.
func LoadFileFrom(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureConfigFile creates a default config file with commented examples if none exists.
func EnsureConfigFile() error {
	path := ConfigPath()

	// If config already exists, do nothing
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	defaultConfig := `# AI proxy configuration
# The API key is read from the OPENROUTER_API_KEY environment variable only.

# server_port = ":8080"
# log_level = "info"

# Upstream
# base_url = "https://ai.hackclub.com/proxy/v1"
# default_model = "google/gemini-3-flash-preview"
# default_temperature = 0.7

# Attribution headers
# app_title = "MoStudy"
# default_referer = "https://mostudy.org"
# allowed_origins = ["https://mostudy.org", "https://mostudy.app"]

# Log an estimated prompt token count for each call
# count_tokens = false

# Models reported by name in metrics besides default_model
# metrics_models = ["openai/gpt-4o"]
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
