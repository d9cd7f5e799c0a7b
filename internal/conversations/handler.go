package conversations

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agentize/scriven/internal/workflow"
	"github.com/agentize/scriven/pkg/handlers"
	"github.com/agentize/scriven/pkg/pagination"
	"github.com/agentize/scriven/pkg/routes"
)

// Handler provides HTTP endpoints for conversation operations: the read
// surface plus the two channel-facing entry points that drive the workflow
// engine.
type Handler struct {
	sys        System
	engine     *workflow.Engine
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// MessageRequest is an inbound channel message that starts a workflow run.
type MessageRequest struct {
	UserKey   string `json:"user_key"`
	TenantKey string `json:"tenant_key"`
	Channel   string `json:"channel"`
	Message   string `json:"message"`
}

// ResumeRequest is a human decision continuing a suspended run.
type ResumeRequest struct {
	Kind      string     `json:"kind"`
	Feedback  string     `json:"feedback,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func NewHandler(
	sys System,
	engine *workflow.Engine,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		engine:     engine,
		logger:     logger.With("handler", "conversations"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for conversation endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/conversations",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{key}", Handler: h.Find},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "POST", Pattern: "/{key}/messages", Handler: h.Message},
			{Method: "POST", Pattern: "/{key}/resume", Handler: h.Resume},
		},
	}
}

// List returns a paginated list of conversations with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single conversation by its key path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	key, err := conversationKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	conv, err := h.sys.Find(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, conv)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching conversations.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Message starts a workflow run from an inbound channel message. The
// response carries the state the run reached: suspended at a checkpoint,
// terminal, or failed partway with the last persisted snapshot intact.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	key, err := conversationKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: message must not be empty", ErrInvalidRequest))
		return
	}

	state, err := h.engine.Start(r.Context(), workflow.StartRequest{
		ConversationKey: key,
		UserKey:         req.UserKey,
		TenantKey:       req.TenantKey,
		Channel:         req.Channel,
		Message:         req.Message,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.sys.RecordMessage(r.Context(), key); err != nil {
		h.logger.Warn("message count update failed", "conversation", key, "error", err)
	}

	// A run that finished in-band gets a 200; one parked at a checkpoint is
	// still in progress and gets a 202.
	code := http.StatusAccepted
	if state.Terminal() {
		code = http.StatusOK
	}
	handlers.RespondJSON(w, code, state)
}

// Resume continues a suspended run with a human decision.
func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	key, err := conversationKey(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	state, err := h.engine.Resume(
		r.Context(),
		key,
		workflow.ResumeKind(req.Kind),
		workflow.ResumeContext{Feedback: req.Feedback, Timestamp: req.Timestamp},
	)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, state)
}

func conversationKey(r *http.Request) (string, error) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		return "", ErrInvalidKey
	}
	return key, nil
}
