// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/agentize/scriven/internal/config"
	"github.com/agentize/scriven/internal/infrastructure"
	"github.com/agentize/scriven/pkg/middleware"
	"github.com/agentize/scriven/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime, err := NewRuntime(cfg, infra)
	if err != nil {
		return nil, err
	}
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))
	m.Use(maxBody(cfg.API.MaxBodySizeBytes()))

	return m, nil
}

// maxBody caps inbound request bodies. Every endpoint in this module takes
// small JSON payloads; anything past the limit fails the first read.
func maxBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
