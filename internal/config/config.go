// Settings provider: a YAML file bootstrapped with defaults on first run,
// with .env / environment overrides layered on top.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// ThreadsCount is read and logged but the active pipeline is
	// single-threaded; it sizes the future worker pool.
	ThreadsCount int `yaml:"threads_count"`

	BaseURL string `yaml:"base_url"`

	OutputDir   string `yaml:"output_dir"`
	StateDir    string `yaml:"state_dir"`
	QueriesFile string `yaml:"queries_file"`

	UserAgentsFile string `yaml:"user_agents_file"`
	ProxiesFile    string `yaml:"proxies_file"`

	// Optional run notifications. Empty token disables the reporter.
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

func defaults() *Config {
	return &Config{
		ThreadsCount:   5,
		BaseURL:        "https://ca.indeed.com/jobs",
		OutputDir:      "output",
		StateDir:       ".state",
		QueriesFile:    "configs/Cities.csv",
		UserAgentsFile: "configs/user_agents.txt",
		ProxiesFile:    "configs/proxies.txt",
	}
}

// Load reads the settings file at path, creating it with defaults on first
// run so the file is there to edit afterwards.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := writeDefault(path, cfg); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.ThreadsCount <= 0 {
		cfg.ThreadsCount = defaults().ThreadsCount
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults().BaseURL
	}
	return cfg, nil
}

func writeDefault(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write default settings %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cfg.TelegramChatID = id
		}
	}
}
