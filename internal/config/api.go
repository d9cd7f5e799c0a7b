package config

import (
	"fmt"
	"os"

	"github.com/agentize/scriven/pkg/formatting"
	"github.com/agentize/scriven/pkg/middleware"
	"github.com/agentize/scriven/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SCRIVEN_CORS_ENABLED",
	Origins:          "SCRIVEN_CORS_ORIGINS",
	AllowedMethods:   "SCRIVEN_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SCRIVEN_CORS_ALLOWED_HEADERS",
	AllowCredentials: "SCRIVEN_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SCRIVEN_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SCRIVEN_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SCRIVEN_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxBodySize   string                `toml:"max_body_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024 // 1MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("SCRIVEN_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("SCRIVEN_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
