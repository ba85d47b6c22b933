package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration, read from a YAML settings
// file with environment overrides on top.
type Config struct {
	Bank struct {
		// IgnoredAccountNames are case-insensitive substrings; any
		// transaction whose counterparty name contains one is dropped.
		IgnoredAccountNames []string `yaml:"ignored_account_names"`
	} `yaml:"bank"`

	Data struct {
		DataDir string `yaml:"data_dir"`
		LabelDB string `yaml:"label_db"`
	} `yaml:"data"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// DefaultSettingsFile is where settings live unless SETTINGS_FILE says
// otherwise.
const DefaultSettingsFile = "settings.yaml"

func defaults() *Config {
	cfg := &Config{}
	cfg.Bank.IgnoredAccountNames = []string{}
	cfg.Data.DataDir = "data"
	cfg.Data.LabelDB = "data/labels.db"
	cfg.Server.Port = "8081"
	return cfg
}

// Load reads the settings file at path. When the file does not exist it is
// created with defaults, so a first run leaves an editable settings file
// behind. Environment variables PORT, DATA_DIR and LABEL_DB override the
// file's values.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Data.DataDir = getEnv("DATA_DIR", cfg.Data.DataDir)
	cfg.Data.LabelDB = getEnv("LABEL_DB", cfg.Data.LabelDB)

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := defaults()
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return cfg, nil
}

func writeDefaults(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write default settings file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration and returns every problem at once.
// Missing required keys are fatal at startup, named so the user can fix the
// settings file.
func (c *Config) Validate() error {
	var errors []string

	if c.Data.DataDir == "" {
		errors = append(errors, "missing 'data_dir' in data section")
	}
	if c.Data.LabelDB == "" {
		errors = append(errors, "missing 'label_db' in data section")
	}

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
