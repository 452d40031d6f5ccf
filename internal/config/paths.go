package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPathEnv overrides the config file location.
const ConfigPathEnv = "AIPROXY_CONFIG"

// dataDir returns the path to the data directory.
// - Windows: %APPDATA%\aiproxy
// - Other OS: ~/.aiproxy
func dataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "aiproxy")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".aiproxy"
	}
	return filepath.Join(home, ".aiproxy")
}

// ConfigPath returns the path to the config file, honoring AIPROXY_CONFIG.
func ConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return filepath.Join(dataDir(), "config.toml")
}
