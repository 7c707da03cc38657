package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/platewise/menugraph/internal/menu"
)

// maxParseBodyBytes bounds uploaded menu content.
const maxParseBodyBytes = 1 << 20

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/menus/parse", s.handleParse)
	mux.HandleFunc("GET /v1/llmcalls", s.handleLLMCalls)
}

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ParseRequest is the body of POST /v1/menus/parse.
type ParseRequest struct {
	Content string       `json:"content"`
	Source  string       `json:"source,omitempty"`
	Options menu.Options `json:"options"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxParseBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body: "+err.Error())
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "content is required")
		return
	}

	source := req.Source
	if source == "" {
		source = "http-upload"
	}

	structure, err := s.parser.Parse(r.Context(), req.Content, source, req.Options)
	if err != nil {
		status, kind := classifyParseError(err)
		s.logger.Warn("menu parse failed", "source", source, "kind", kind, "error", err)
		writeError(w, status, kind, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, structure)
}

// classifyParseError maps pipeline errors to HTTP statuses and stable
// error kinds clients can branch on.
func classifyParseError(err error) (int, string) {
	var (
		configErr    *menu.ConfigurationError
		backendErr   *menu.BackendError
		emptyResp    *menu.EmptyResponseError
		malformedErr *menu.MalformedResponseError
		schemaErr    *menu.SchemaError
		emptyMenu    *menu.EmptyMenuError
		emptyItems   *menu.EmptyItemsError
	)

	switch {
	case errors.As(err, &configErr):
		return http.StatusServiceUnavailable, "configuration_error"
	case errors.As(err, &backendErr):
		return http.StatusBadGateway, "backend_error"
	case errors.As(err, &emptyResp):
		return http.StatusBadGateway, "empty_response"
	case errors.As(err, &malformedErr):
		return http.StatusBadGateway, "malformed_response"
	case errors.As(err, &schemaErr):
		return http.StatusBadGateway, "schema_error"
	case errors.As(err, &emptyMenu):
		return http.StatusUnprocessableEntity, "empty_menu"
	case errors.As(err, &emptyItems):
		return http.StatusUnprocessableEntity, "empty_items"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return statusClientClosedRequest, "cancelled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// statusClientClosedRequest is the de-facto status for aborted requests.
const statusClientClosedRequest = 499

// LLMCallsResponse is the response for GET /v1/llmcalls.
type LLMCallsResponse struct {
	Calls []*CallSummary `json:"calls"`
	Total int            `json:"total"`
}

// CallSummary is a call record without the full response text.
type CallSummary struct {
	ID           string `json:"id"`
	Timestamp    string `json:"timestamp"`
	Source       string `json:"source,omitempty"`
	PromptKey    string `json:"prompt_key"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	LatencyMs    int    `json:"latency_ms"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

func (s *Server) handleLLMCalls(w http.ResponseWriter, r *http.Request) {
	if s.calls == nil {
		writeJSON(w, http.StatusOK, LLMCallsResponse{Calls: []*CallSummary{}})
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	recent := s.calls.Recent(limit)
	resp := LLMCallsResponse{
		Calls: make([]*CallSummary, 0, len(recent)),
		Total: s.calls.Len(),
	}
	for _, c := range recent {
		resp.Calls = append(resp.Calls, &CallSummary{
			ID:           c.ID,
			Timestamp:    c.Timestamp.Format(timestampLayout),
			Source:       c.Source,
			PromptKey:    c.PromptKey,
			Provider:     c.Provider,
			Model:        c.Model,
			LatencyMs:    c.LatencyMs,
			InputTokens:  c.InputTokens,
			OutputTokens: c.OutputTokens,
			Success:      c.Success,
			Error:        c.Error,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorResponse{Kind: kind, Error: msg})
}
