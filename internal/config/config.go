// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Secrets (SMTP credentials) are
// never stored here; they come from the environment.
type Config struct {
	DBPath          string  `yaml:"db_path"`
	HistoryPath     string  `yaml:"history_path"`
	ToolPath        string  `yaml:"tool_path,omitempty"` // forgetool binary; empty resolves from PATH
	DispatchTimeout int     `yaml:"dispatch_timeout_seconds"`
	SMTP            SMTP    `yaml:"smtp"`
	Scraper         Scraper `yaml:"scraper"`
}

// SMTP holds mail server settings. Username and password are read from
// SMTP_USERNAME / SMTP_PASSWORD.
type SMTP struct {
	Server string `yaml:"server"`
	Port   int    `yaml:"port"`
	From   string `yaml:"from,omitempty"`
}

// Scraper holds web scraper settings.
type Scraper struct {
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	base := filepath.Join(homeDir, ".neuralforge")
	return &Config{
		DBPath:          filepath.Join(base, "neuralforge.db"),
		HistoryPath:     filepath.Join(base, "history.jsonl"),
		DispatchTimeout: 30,
		SMTP: SMTP{
			Server: "smtp.gmail.com",
			Port:   587,
		},
		Scraper: Scraper{
			UserAgent:      "NeuralForge/1.0",
			TimeoutSeconds: 15,
		},
	}
}

// Load reads the configuration at path, creating it with defaults when it
// does not exist yet.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".neuralforge", "config.yaml")
}
