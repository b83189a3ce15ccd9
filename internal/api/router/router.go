package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/saathi/internal/conversation"
	httpmiddleware "github.com/wolfman30/saathi/internal/http/middleware"
	"github.com/wolfman30/saathi/internal/observability/metrics"
	"github.com/wolfman30/saathi/internal/resources"
	"github.com/wolfman30/saathi/pkg/logging"
)

const msgRouteNotFound = "Route not found"

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ConversationHandler *conversation.Handler
	ResourcesHandler    *resources.Handler
	MetricsHandler      http.Handler
	Metrics             *metrics.ChatMetrics
	RateLimiter         *httpmiddleware.RateLimiter
	CORSAllowedOrigins  []string
	MaxBodyBytes        int64
	Version             string
	Now                 func() time.Time
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.Recoverer(logger))
	r.Use(httpmiddleware.SecureHeaders)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.RequestLogger(logger))
	r.Use(httpmiddleware.Metrics(cfg.Metrics))
	r.Use(middleware.Compress(5))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimiter != nil {
			api.Use(cfg.RateLimiter.Middleware)
		}
		if cfg.MaxBodyBytes > 0 {
			api.Use(middleware.RequestSize(cfg.MaxBodyBytes))
		}

		api.Get("/health", healthHandler(cfg.Version, cfg.Now))
		if cfg.ConversationHandler != nil {
			api.Post("/session/start", cfg.ConversationHandler.StartSession)
			api.Post("/chat/{sessionId}", cfg.ConversationHandler.Chat)
			api.Get("/session/{sessionId}/history", cfg.ConversationHandler.History)
		}
		if cfg.ResourcesHandler != nil {
			api.Get("/resources", cfg.ResourcesHandler.List)
		}
	})

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   msgRouteNotFound,
	})
}
