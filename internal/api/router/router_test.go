package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/saathi/internal/conversation"
	httpmiddleware "github.com/wolfman30/saathi/internal/http/middleware"
	"github.com/wolfman30/saathi/internal/observability/metrics"
	"github.com/wolfman30/saathi/internal/resources"
	"github.com/wolfman30/saathi/internal/session"
	"github.com/wolfman30/saathi/pkg/logging"
)

type echoLLM struct{}

func (echoLLM) Complete(_ context.Context, req conversation.LLMRequest) (conversation.LLMResponse, error) {
	return conversation.LLMResponse{Text: "Main sun raha hun.", Provider: "echo"}, nil
}

func newTestRouter(t *testing.T, mutate func(*Config)) http.Handler {
	t.Helper()

	logger := logging.Default()
	store := session.NewStore()
	orch, err := conversation.NewOrchestrator(conversation.OrchestratorConfig{
		Store:  store,
		LLM:    echoLLM{},
		Logger: logger,
	})
	require.NoError(t, err)

	cfg := &Config{
		Logger:              logger,
		ConversationHandler: conversation.NewHandler(orch, store, logger),
		ResourcesHandler:    resources.NewHandler(logger),
		Metrics:             metrics.NewChatMetrics(prometheus.NewRegistry()),
		CORSAllowedOrigins:  []string{"http://localhost:3000"},
		MaxBodyBytes:        10 << 20,
		Version:             "1.0.0",
		Now: func() time.Time {
			return time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
		},
	}
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg)
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := serve(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "2025-03-04T05:06:07.008Z", body["timestamp"])
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/api/chat/abc"},
		{http.MethodDelete, "/api/health"},
	} {
		rec := serve(r, tc.method, tc.path, "")
		require.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Route not found", body["error"])
	}
}

func TestChatFlowThroughRouter(t *testing.T) {
	r := newTestRouter(t, nil)

	start := serve(r, http.MethodPost, "/api/session/start", "")
	require.Equal(t, http.StatusOK, start.Code)
	sessionID, _ := decode(t, start)["sessionId"].(string)
	require.NotEmpty(t, sessionID)

	chat := serve(r, http.MethodPost, "/api/chat/"+sessionID, `{"message":"exam ka bahut stress hai"}`)
	require.Equal(t, http.StatusOK, chat.Code)
	body := decode(t, chat)
	assert.Equal(t, sessionID, body["sessionId"])
	assert.EqualValues(t, 2, body["messageCount"])

	history := serve(r, http.MethodGet, "/api/session/"+sessionID+"/history", "")
	require.Equal(t, http.StatusOK, history.Code)
	msgs, _ := decode(t, history)["messages"].([]any)
	assert.Len(t, msgs, 2)
}

func TestResources(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := serve(r, http.MethodGet, "/api/resources", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	res, ok := body["resources"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, res["crisis"], 4)
	assert.Len(t, res["selfHelp"], 3)
	assert.Len(t, res["educational"], 2)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat/abc", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRateLimitAppliesToAPI(t *testing.T) {
	r := newTestRouter(t, func(cfg *Config) {
		cfg.RateLimiter = httpmiddleware.NewRateLimiter(2, 15*time.Minute)
	})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/health", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/resources", "").Code)
	rec := serve(r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, httpmiddleware.RateLimitMessage, decode(t, rec)["error"])
}

func TestBodyLimitReturns413(t *testing.T) {
	r := newTestRouter(t, func(cfg *Config) { cfg.MaxBodyBytes = 32 })

	rec := serve(r, http.MethodPost, "/api/chat/s", `{"message":"`+strings.Repeat("x", 128)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, func(cfg *Config) {
		cfg.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
	})

	rec := serve(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
