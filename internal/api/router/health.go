package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wolfman30/saathi/internal/conversation"
)

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func healthHandler(version string, now func() time.Time) http.HandlerFunc {
	if version == "" {
		version = "1.0.0"
	}
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(healthResponse{
			Status:    "healthy",
			Timestamp: conversation.FormatTimestamp(now()),
			Version:   version,
		})
	}
}
