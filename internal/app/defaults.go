package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// GetDefaults returns application default paths, checking environment
// variables first. A .env file in the working directory is honored.
// Environment variables:
//   - WEBDESK_CONFIG_PATH: config file location (default: ~/.config/webdesk.toml)
//   - WEBDESK_HOME: base directory for webdesk data (default: ~/.local/share/webdesk)
func GetDefaults() (map[string]string, error) {
	_ = godotenv.Load() // best effort; absence of .env is fine

	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

func getConfigPath() (string, error) {
	if path := os.Getenv("WEBDESK_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "webdesk.toml"), nil
}

func getBaseDir() (string, error) {
	if path := os.Getenv("WEBDESK_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "webdesk"), nil
}
