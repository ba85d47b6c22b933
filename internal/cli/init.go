// Package cli provides common startup plumbing for cmd binaries: logging,
// .env loading, settings and the label store.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mjzilver/BankOverview/internal/config"
	"github.com/mjzilver/BankOverview/internal/labels"
	applog "github.com/mjzilver/BankOverview/internal/log"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.ComponentApp, applog.Config{Level: slog.LevelInfo})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// since the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads the settings file (creating it with defaults
// on first run) and validates it, exiting the process on failure. A missing
// required key is a startup error, not something to limp past.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	path := os.Getenv("SETTINGS_FILE")
	if path == "" {
		path = config.DefaultSettingsFile
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("Failed to load settings", "error", err, "path", path)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenLabelStore opens the label database, creating it and its schema when
// absent, or exits the process on failure.
func OpenLabelStore(logger *applog.Logger, dbPath string) *labels.Store {
	store, err := labels.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open label store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
