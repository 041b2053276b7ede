package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brightlinelabs/leadchat/internal/chat"
	"github.com/brightlinelabs/leadchat/pkg/logging"
)

type echoResponder struct{}

func (echoResponder) Respond(ctx context.Context, history []chat.Message) (string, error) {
	return "echo: " + history[len(history)-1].Content, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	chatHandler := chat.NewHandler(echoResponder{}, logger)

	return New(&Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		CORSAllowedOrigins: []string{"*"},
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterChatEndpoint(t *testing.T) {
	router := newTestRouter(t)

	body := `{"messages":[{"role":"user","content":"hello"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["response"] != "echo: hello" {
		t.Errorf("unexpected response %q", resp["response"])
	}
}

func TestRouterChatPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
}

func TestRouterMetricsEndpointOptional(t *testing.T) {
	router := newTestRouter(t) // newTestRouter does NOT set MetricsHandler

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound && rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 404/405 when MetricsHandler is nil, got %d", rr.Code)
	}
}

func TestRouterMetricsEndpointRegistered(t *testing.T) {
	logger := logging.Default()
	router := New(&Config{
		Logger:      logger,
		ChatHandler: chat.NewHandler(echoResponder{}, logger),
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}
