package app

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AnthropicAPIKey string  `yaml:"anthropic_api_key"`
	ModelBaseURL    string  `yaml:"model_base_url"`
	Model           string  `yaml:"model"`
	MaxTokens       int     `yaml:"max_tokens"`
	Temperature     float64 `yaml:"temperature"`

	JobAPIKey     string `yaml:"job_api_key"`
	JobBaseURL    string `yaml:"job_base_url"`
	JobRecency    int    `yaml:"job_recency_days"`
	JobRadius     int    `yaml:"job_radius_miles"`
	TitleStrategy string `yaml:"title_strategy"`

	LogPath string `yaml:"log_path"`
}

func DefaultConfig() Config {
	return Config{
		ModelBaseURL:  "https://api.anthropic.com/v1/messages",
		Model:         "claude-3-5-sonnet-20240620",
		MaxTokens:     1000,
		Temperature:   0.7,
		JobBaseURL:    "https://api.jobdatafeeds.example.com/v1/search",
		JobRecency:    30,
		JobRadius:     25,
		TitleStrategy: "lookup",
	}
}

// LoadConfig reads the YAML config at path, falling back to defaults for
// anything missing. A missing file is not an error; missing credentials are
// the caller's problem to warn about, not ours to fail on.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	// Environment overrides beat the file.
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("JOBDATA_API_KEY"); v != "" {
		cfg.JobAPIKey = v
	}

	if cfg.ModelBaseURL == "" {
		cfg.ModelBaseURL = "https://api.anthropic.com/v1/messages"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-sonnet-20240620"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.JobRecency <= 0 {
		cfg.JobRecency = 30
	}
	if cfg.JobRadius <= 0 {
		cfg.JobRadius = 25
	}
	if cfg.TitleStrategy == "" {
		cfg.TitleStrategy = "lookup"
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "compass", "config.yml")
}

func DefaultLogPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "compass.log")
	}
	return filepath.Join(base, "compass", "compass.log")
}
