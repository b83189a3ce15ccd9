package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/saathi/cmd/mainconfig"
	"github.com/wolfman30/saathi/internal/api/router"
	"github.com/wolfman30/saathi/internal/app/bootstrap"
	appconfig "github.com/wolfman30/saathi/internal/config"
	"github.com/wolfman30/saathi/internal/conversation"
	httpmiddleware "github.com/wolfman30/saathi/internal/http/middleware"
	"github.com/wolfman30/saathi/internal/observability/metrics"
	"github.com/wolfman30/saathi/internal/resources"
	"github.com/wolfman30/saathi/internal/session"
	"github.com/wolfman30/saathi/pkg/logging"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting saathi API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsHandler, chatMetrics := setupMetrics()

	store := session.NewStore()
	sweeper := session.NewSweeper(store, logger).
		WithInterval(cfg.SessionSweepInterval).
		WithMaxIdle(cfg.SessionMaxIdle).
		WithObserver(chatMetrics)
	go sweeper.Start(ctx)

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	var recorder conversation.CrisisRecorder
	if crisisLog := bootstrap.BuildCrisisLog(redisClient, cfg, logger); crisisLog != nil {
		recorder = crisisLog
	}

	llm, err := buildLLM(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure LLM provider", "error", err)
		os.Exit(1)
	}

	orchestrator, err := conversation.NewOrchestrator(conversation.OrchestratorConfig{
		Store:       store,
		LLM:         llm,
		Recorder:    recorder,
		Metrics:     chatMetrics,
		Logger:      logger,
		MaxTokens:   int32(cfg.LLMMaxTokens),
		Temperature: float32(cfg.LLMTemperature),
	})
	if err != nil {
		logger.Error("failed to build orchestrator", "error", err)
		os.Exit(1)
	}

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	go limiter.StartCleanup(ctx, 5*time.Minute)

	// Setup router
	r := router.New(&router.Config{
		Logger: logger,
		ConversationHandler: conversation.NewHandler(orchestrator, store, logger).
			WithDiagnostics(cfg.IsDevelopment()).
			WithMetrics(chatMetrics),
		ResourcesHandler:   resources.NewHandler(logger),
		MetricsHandler:     metricsHandler,
		Metrics:            chatMetrics,
		RateLimiter:        limiter,
		CORSAllowedOrigins: cfg.AllowedOrigins(),
		MaxBodyBytes:       cfg.MaxBodyBytes,
		Version:            version,
	})

	// Create HTTP server. WriteTimeout leaves room for slow provider replies.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "frontend_url", cfg.FrontendURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics registers chat metrics and runtime collectors on a private
// registry and returns its scrape handler.
func setupMetrics() (http.Handler, *metrics.ChatMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	chatMetrics := metrics.NewChatMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), chatMetrics
}

// buildLLM loads AWS config only when a Bedrock fallback is configured.
func buildLLM(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (conversation.LLMClient, error) {
	var bedrockAPI conversation.BedrockConverseAPI
	if cfg.BedrockModelID != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Warn("failed to load AWS config; bedrock fallback disabled", "error", err)
		} else {
			bedrockAPI = mainconfig.NewBedrockClient(awsCfg, cfg)
		}
	}
	return bootstrap.BuildLLMClient(ctx, cfg, logger, bedrockAPI)
}
