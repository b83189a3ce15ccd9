package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Comma-separated origins allowed to call the API (the chat UI).
	FrontendURL string

	// Gemini (primary provider)
	GeminiAPIKey   string
	GeminiModel    string
	LLMMaxTokens   int
	LLMTemperature float64

	// Bedrock (optional fallback provider)
	BedrockModelID      string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Redis-backed crisis event log; disabled when RedisAddr is empty.
	RedisAddr          string
	RedisPassword      string
	RedisTLS           bool
	CrisisLogMaxEvents int

	RateLimitRequests int
	RateLimitWindow   time.Duration
	MaxBodyBytes      int64

	SessionMaxIdle       time.Duration
	SessionSweepInterval time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "5000"),
		Env:      strings.ToLower(strings.TrimSpace(getEnv("ENV", "production"))),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 512),
		LLMTemperature: getEnvAsFloat("LLM_TEMPERATURE", 0.7),

		BedrockModelID:      getEnv("BEDROCK_MODEL_ID", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		CrisisLogMaxEvents: getEnvAsInt("CRISIS_LOG_MAX_EVENTS", 500),

		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		MaxBodyBytes:      int64(getEnvAsInt("MAX_BODY_BYTES", 10<<20)),

		SessionMaxIdle:       getEnvAsDuration("SESSION_MAX_IDLE", time.Hour),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Hour),
	}
}

// IsDevelopment reports whether diagnostic details may be exposed in responses.
func (c *Config) IsDevelopment() bool {
	return c != nil && c.Env == "development"
}

// AllowedOrigins splits FrontendURL into trimmed, non-empty origins.
func (c *Config) AllowedOrigins() []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, origin := range strings.Split(c.FrontendURL, ",") {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			out = append(out, origin)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
