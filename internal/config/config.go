// Package config loads the application configuration from a YAML file,
// with defaults for everything and environment variables for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"speakflow/internal/provider"
)

// Config is the root configuration.
type Config struct {
	Storage   StorageConfig     `yaml:"storage"`
	Providers []provider.Config `yaml:"providers"`
	Pipeline  PipelineConfig    `yaml:"pipeline"`
}

// StorageConfig locates the local state database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// PipelineConfig tunes the response pipeline.
type PipelineConfig struct {
	Timeout     string `yaml:"timeout"`      // per provider round-trip
	RetryBudget int    `yaml:"retry_budget"` // 0 means 2x provider count
}

// DefaultConfigPath returns ~/.speakflow/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".speakflow", "config.yaml")
	}
	return filepath.Join(home, ".speakflow", "config.yaml")
}

// Default returns the configuration used when no file exists: a Groq
// chat-completions provider and a Gemini generative-content provider, keys
// from the environment.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(home, ".speakflow", "speakflow.db"),
		},
		Providers: []provider.Config{
			{
				ID:        "groq",
				Shape:     provider.ShapeChatCompletions,
				BaseURL:   "https://api.groq.com/openai/v1",
				Model:     "llama-3.3-70b-versatile",
				APIKeyEnv: "GROQ_API_KEY",
			},
			{
				ID:        "gemini",
				Shape:     provider.ShapeGenerativeContent,
				BaseURL:   "https://generativelanguage.googleapis.com/v1beta",
				Model:     "gemini-2.0-flash",
				APIKeyEnv: "GEMINI_API_KEY",
			},
		},
		Pipeline: PipelineConfig{
			Timeout: "12s",
		},
	}
}

// Load reads the configuration at path, falling back to defaults when the
// file does not exist. A present-but-invalid file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Providers) == 0 {
		cfg.Providers = Default().Providers
	}
	return cfg, nil
}

// ProviderTimeout parses the pipeline timeout, falling back to the
// provider default when unset or invalid.
func (c *Config) ProviderTimeout() time.Duration {
	d, err := time.ParseDuration(c.Pipeline.Timeout)
	if err != nil || d <= 0 {
		return provider.DefaultTimeout
	}
	return d
}
