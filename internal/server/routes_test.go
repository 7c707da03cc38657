package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/platewise/menugraph/internal/llmcall"
	"github.com/platewise/menugraph/internal/menu"
	"github.com/platewise/menugraph/internal/parse"
	"github.com/platewise/menugraph/internal/providers"
)

const mockMenuResponse = `{
  "categories": [
    {"name": "Starters", "items": [{"name": "Samosa", "price": 120}]}
  ],
  "metadata": {"confidence": 0.9}
}`

func testServer(t *testing.T, mock *providers.MockClient) (*Server, *llmcall.Store) {
	t.Helper()

	store := llmcall.NewStore(100)
	logger := slog.New(slog.DiscardHandler)

	parser, err := parse.New(parse.Config{
		Client:   mock,
		Logger:   logger,
		Recorder: llmcall.NewRecorder(store),
	})
	if err != nil {
		t.Fatalf("parse.New() error = %v", err)
	}

	srv, err := New(Config{
		Parser: parser,
		Calls:  store,
		Logger: logger,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv, store
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := testServer(t, providers.NewMockClient())
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	var hr HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if hr.Status != "ok" {
		t.Errorf("status field = %q, want ok", hr.Status)
	}
}

func TestParseEndpoint(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = mockMenuResponse
	srv, store := testServer(t, mock)
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	body, _ := json.Marshal(ParseRequest{
		Content: "Starters\nSamosa ₹120",
		Source:  "upload.txt",
	})
	resp, err := http.Post(ts.URL+"/v1/menus/parse", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/menus/parse: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var structure menu.ParsedMenuStructure
	if err := json.NewDecoder(resp.Body).Decode(&structure); err != nil {
		t.Fatalf("decoding parse response: %v", err)
	}
	if structure.Metadata.TotalItems != 1 {
		t.Errorf("TotalItems = %d, want 1", structure.Metadata.TotalItems)
	}
	if structure.Categories[0].Items[0].Name != "Samosa" {
		t.Errorf("item name = %q, want Samosa", structure.Categories[0].Items[0].Name)
	}

	if store.Len() != 1 {
		t.Errorf("call log length = %d, want 1", store.Len())
	}
	if got := store.Recent(1)[0].Source; got != "upload.txt" {
		t.Errorf("recorded source = %q, want upload.txt", got)
	}
}

func TestParseEndpointBadRequests(t *testing.T) {
	srv, _ := testServer(t, providers.NewMockClient())
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing content", `{"source": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/menus/parse", "application/json", bytes.NewBufferString(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var er ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if er.Kind != "invalid_request" {
				t.Errorf("kind = %q, want invalid_request", er.Kind)
			}
		})
	}
}

func TestParseEndpointPipelineErrors(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantStatus int
		wantKind   string
	}{
		{"prose response", "cannot parse that", http.StatusBadGateway, "malformed_response"},
		{"wrong shape", `{"menu": []}`, http.StatusBadGateway, "schema_error"},
		{"empty menu", `{"categories": []}`, http.StatusUnprocessableEntity, "empty_menu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := providers.NewMockClient()
			mock.ResponseText = tt.response
			srv, _ := testServer(t, mock)
			ts := httptest.NewServer(srv.httpServer.Handler)
			defer ts.Close()

			body, _ := json.Marshal(ParseRequest{Content: "Samosa ₹120"})
			resp, err := http.Post(ts.URL+"/v1/menus/parse", "application/json", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var er ErrorResponse
			if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if er.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", er.Kind, tt.wantKind)
			}
		})
	}
}

func TestLLMCallsEndpoint(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = mockMenuResponse
	srv, _ := testServer(t, mock)
	ts := httptest.NewServer(srv.httpServer.Handler)
	defer ts.Close()

	for i := 0; i < 3; i++ {
		body, _ := json.Marshal(ParseRequest{Content: "Samosa ₹120", Source: fmt.Sprintf("doc-%d", i)})
		resp, err := http.Post(ts.URL+"/v1/menus/parse", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/v1/llmcalls?limit=2")
	if err != nil {
		t.Fatalf("GET /v1/llmcalls: %v", err)
	}
	defer resp.Body.Close()

	var lr LLMCallsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		t.Fatalf("decoding calls response: %v", err)
	}
	if lr.Total != 3 {
		t.Errorf("Total = %d, want 3", lr.Total)
	}
	if len(lr.Calls) != 2 {
		t.Fatalf("got %d calls, want 2 (limit)", len(lr.Calls))
	}
	// Newest first.
	if lr.Calls[0].Source != "doc-2" {
		t.Errorf("first call source = %q, want doc-2", lr.Calls[0].Source)
	}
	if lr.Calls[0].PromptKey != "menuextract.user" {
		t.Errorf("prompt key = %q, want menuextract.user", lr.Calls[0].PromptKey)
	}
}

func TestClassifyParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"configuration", &menu.ConfigurationError{Reason: "no key"}, http.StatusServiceUnavailable, "configuration_error"},
		{"backend", &menu.BackendError{Status: 500}, http.StatusBadGateway, "backend_error"},
		{"empty response", &menu.EmptyResponseError{}, http.StatusBadGateway, "empty_response"},
		{"malformed", &menu.MalformedResponseError{}, http.StatusBadGateway, "malformed_response"},
		{"schema", &menu.SchemaError{Reason: "missing categories"}, http.StatusBadGateway, "schema_error"},
		{"empty menu", &menu.EmptyMenuError{}, http.StatusUnprocessableEntity, "empty_menu"},
		{"empty items", &menu.EmptyItemsError{}, http.StatusUnprocessableEntity, "empty_items"},
		{"cancelled", fmt.Errorf("aborted: %w", context.Canceled), statusClientClosedRequest, "cancelled"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, kind := classifyParseError(tt.err)
			if status != tt.wantStatus || kind != tt.wantKind {
				t.Errorf("classifyParseError() = (%d, %q), want (%d, %q)", status, kind, tt.wantStatus, tt.wantKind)
			}
		})
	}
}
