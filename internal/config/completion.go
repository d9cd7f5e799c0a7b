package config

import (
	"fmt"
	"os"
	"time"

	"github.com/agentize/scriven/internal/completion"
)

const (
	EnvCompletionBaseURL = "SCRIVEN_COMPLETION_BASE_URL"
	EnvCompletionAPIKey  = "SCRIVEN_COMPLETION_API_KEY"
	EnvCompletionModel   = "SCRIVEN_COMPLETION_MODEL"
	EnvCompletionTimeout = "SCRIVEN_COMPLETION_TIMEOUT"
)

// CompletionConfig holds connection parameters for the OpenAI-compatible
// completion endpoint.
type CompletionConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// ClientConfig converts the section into the completion client's config.
func (c *CompletionConfig) ClientConfig() completion.ClientConfig {
	timeout, _ := time.ParseDuration(c.Timeout)
	return completion.ClientConfig{
		BaseURL: c.BaseURL,
		APIKey:  c.APIKey,
		Model:   c.Model,
		Timeout: timeout,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *CompletionConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CompletionConfig) Merge(overlay *CompletionConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *CompletionConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *CompletionConfig) loadEnv() {
	if v := os.Getenv(EnvCompletionBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvCompletionAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvCompletionModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvCompletionTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *CompletionConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
