package api

import (
	"net/http"

	"github.com/agentize/scriven/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Conversations.Handler(domain.Engine).Routes(),
		domain.Documents.Handler().Routes(),
		domain.Audit.Handler().Routes(),
	)
}
