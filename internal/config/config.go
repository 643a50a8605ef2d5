// Package config resolves the deploy-time configuration surface: the
// remote base URL, the catalogue API key, and the local cache path.
// Precedence is environment > config.yaml > defaults.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Snape93/nutrition-sub006/internal/app"
)

const defaultRemoteURL = "https://api.nutritracker.app"

type Config struct {
	RemoteBaseURL  string `yaml:"remote_base_url"`
	CatalogAPIKey  string `yaml:"catalog_api_key"`
	DBPath         string `yaml:"db_path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load builds the configuration. A .env file is honored when present, then
// config.yaml in the app dir, then environment variables override both.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		// Not an error; most installs configure via the yaml file or env.
		log.Println("No .env file found, using config file/environment")
	}

	cfg := Config{
		RemoteBaseURL:  defaultRemoteURL,
		TimeoutSeconds: 8,
	}
	if dir, err := app.DefaultAppDir(); err == nil {
		cfg.DBPath, _ = app.DefaultDBPath()
		if err := loadFile(filepath.Join(dir, "config.yaml"), &cfg); err != nil {
			log.Printf("Ignoring unreadable config file: %v", err)
		}
	}

	cfg.RemoteBaseURL = getenv("NUTRI_REMOTE_URL", cfg.RemoteBaseURL)
	cfg.CatalogAPIKey = getenv("NUTRI_CATALOG_API_KEY", cfg.CatalogAPIKey)
	cfg.DBPath = getenv("NUTRI_DB", cfg.DBPath)
	cfg.TimeoutSeconds = getenvInt("NUTRI_TIMEOUT_SECONDS", cfg.TimeoutSeconds)
	return cfg
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
