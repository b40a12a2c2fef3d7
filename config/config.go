package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultDatabasePath = "photoops.db"
	defaultListenAddr   = ":8788"
	tokenFileName       = ".photoops_token"
)

type Config struct {
	// database path
	DatabasePath string

	// base directory for the fixed-layout yearly exports (--all-2025)
	DataDir string

	// HTTP API settings (serve command)
	ListenAddr  string
	BearerToken string // empty disables auth
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// loadBearerToken resolves the API token from the environment, falling
// back to a token file in the user's home directory.
func loadBearerToken() string {
	if token := os.Getenv("PHOTO_BEARER_TOKEN"); token != "" {
		return token
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(home, tokenFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", defaultDatabasePath)

	dataDir := getEnvOrDefault("PHOTO_DATA_DIR", ".")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for data directory '%s': %w", dataDir, err)
	}

	cfg := Config{
		DatabasePath: dbPath,
		DataDir:      absDataDir,
		ListenAddr:   getEnvOrDefault("PHOTO_HTTP_ADDR", defaultListenAddr),
		BearerToken:  loadBearerToken(),
	}

	return cfg, nil
}
