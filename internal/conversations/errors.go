package conversations

import (
	"errors"
	"net/http"

	"github.com/agentize/scriven/internal/workflow"
)

// Domain errors for conversation operations.
var (
	ErrInvalidKey     = errors.New("invalid conversation key")
	ErrInvalidRequest = errors.New("invalid request body")
)

// MapHTTPStatus maps conversation and workflow errors to HTTP status codes.
// Collaborator failures surface as bad gateway: the request was valid, the
// upstream service was not.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, workflow.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.Is(err, workflow.ErrNotSuspended):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidKey), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workflow.ErrClassification),
		errors.Is(err, workflow.ErrGeneration),
		errors.Is(err, workflow.ErrRender):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
