package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appconfig "github.com/wolfman30/saathi/internal/config"
	"github.com/wolfman30/saathi/internal/conversation"
	"github.com/wolfman30/saathi/pkg/logging"
)

// BuildLLMClient wires the generative provider chain from config: Gemini as
// primary and, when a Bedrock model and client are supplied, Bedrock as the
// fallback. A missing Gemini key does not stop the server; chat requests
// then fail as provider errors until the key is configured.
func BuildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, bedrockAPI conversation.BedrockConverseAPI) (conversation.LLMClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var primary conversation.LLMClient
	gemini, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	switch {
	case errors.Is(err, conversation.ErrMissingCredential):
		logger.Warn("GEMINI_API_KEY not set; chat replies will fail until it is configured")
		primary = conversation.UnavailableLLMClient{}
	case err != nil:
		return nil, err
	default:
		logger.Info("gemini provider configured", "model", cfg.GeminiModel)
		primary = gemini
	}

	if strings.TrimSpace(cfg.BedrockModelID) == "" || bedrockAPI == nil {
		return primary, nil
	}
	bedrock, err := conversation.NewBedrockLLMClient(bedrockAPI, cfg.BedrockModelID)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: bedrock fallback: %w", err)
	}
	logger.Info("bedrock fallback configured", "model", cfg.BedrockModelID)
	return conversation.NewFallbackLLMClient(primary, bedrock, logger), nil
}
