package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appconfig "github.com/wolfman30/saathi/internal/config"
	"github.com/wolfman30/saathi/internal/conversation"
	"github.com/wolfman30/saathi/pkg/logging"
)

func TestSetupMetricsExposesMetrics(t *testing.T) {
	handler, metrics := setupMetrics()
	if handler == nil || metrics == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	metrics.ObserveMessage("responded")
	metrics.ObserveProvider("gemini", "ok", 120*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "saathi_chat_messages_total") {
		t.Fatalf("expected message counter to be exported")
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("expected runtime collectors to be exported")
	}
}

func TestBuildLLMWithoutCredentials(t *testing.T) {
	logger := logging.New("error")
	llm, err := buildLLM(context.Background(), &appconfig.Config{}, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := llm.(conversation.UnavailableLLMClient); !ok {
		t.Fatalf("expected unavailable client, got %T", llm)
	}
}
