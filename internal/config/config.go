package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/mostudy/aiproxy/internal/provider/hackclub"
	"github.com/mostudy/aiproxy/internal/types"
)

// APIKeyEnv names the environment variable holding the upstream API key.
const APIKeyEnv = "OPENROUTER_API_KEY"

// Config holds application configuration loaded from environment and file.
// Priority: Env vars → config.toml → defaults
type Config struct {
	// ServerPort is the address to bind the server to (e.g., ":8080")
	ServerPort string

	// LogLevel is one of debug, info, warn, error
	LogLevel string

	// APIKey authenticates upstream calls; only ever read from the environment
	APIKey string

	// Upstream settings
	BaseURL            string
	DefaultModel       string
	DefaultTemperature float64

	// Attribution headers sent upstream
	AppTitle       string
	DefaultReferer string
	AllowedOrigins []string

	// CountTokens enables the prompt token estimate in call logs
	CountTokens bool

	// MetricsModels are reported by name in upstream metrics besides the
	// default model; any other model is reported as "other"
	MetricsModels []string
}

// Load reads configuration from file and environment variables.
// Environment variables override file config values.
func Load() *Config {
	fileConfig, err := LoadFile()
	if err != nil {
		fileConfig = &FileConfig{} // Unreadable file, fall back to defaults
	}
	return fromFile(fileConfig)
}

func fromFile(fileConfig *FileConfig) *Config {
	return &Config{
		ServerPort:         getEnvOrFile("SERVER_PORT", fileConfig.ServerPort, ":8080"),
		LogLevel:           getEnvOrFile("LOG_LEVEL", fileConfig.LogLevel, "info"),
		APIKey:             os.Getenv(APIKeyEnv),
		BaseURL:            getEnvOrFile("AI_BASE_URL", fileConfig.BaseURL, hackclub.DefaultBaseURL),
		DefaultModel:       getEnvOrFile("AI_DEFAULT_MODEL", fileConfig.DefaultModel, types.DefaultModel),
		DefaultTemperature: getFloatOrFile(fileConfig.DefaultTemperature, types.DefaultTemperature),
		AppTitle:           getEnvOrFile("AI_APP_TITLE", fileConfig.AppTitle, "MoStudy"),
		DefaultReferer:     getEnvOrFile("AI_DEFAULT_REFERER", fileConfig.DefaultReferer, "https://mostudy.org"),
		AllowedOrigins:     getEnvListOrFile("AI_ALLOWED_ORIGINS", fileConfig.AllowedOrigins, defaultAllowedOrigins),
		CountTokens:        getEnvBoolOrFile("AI_COUNT_TOKENS", fileConfig.CountTokens, false),
		MetricsModels:      getEnvListOrFile("AI_METRICS_MODELS", fileConfig.MetricsModels, nil),
	}
}

// defaultAllowedOrigins are the client sites allowed as upstream referers.
var defaultAllowedOrigins = []string{
	"https://mostudy.org",
	"https://mostudy.app",
	"https://mostudy.appwrite.network",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// getEnvOrFile returns env value, file value, or default (in priority order)
func getEnvOrFile(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// getEnvBoolOrFile returns env bool, file bool, or default (in priority order)
func getEnvBoolOrFile(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getFloatOrFile reads AI_DEFAULT_TEMPERATURE, then the file value, then the default.
func getFloatOrFile(fileValue *float64, defaultValue float64) float64 {
	if value := os.Getenv("AI_DEFAULT_TEMPERATURE"); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvListOrFile splits a comma separated env value, else file, else default.
func getEnvListOrFile(key string, fileValue, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}
	if len(fileValue) > 0 {
		return fileValue
	}
	return defaultValue
}
