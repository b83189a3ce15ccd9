package conversation

import (
	"context"
	"fmt"

	"github.com/wolfman30/saathi/pkg/logging"
)

// FallbackLLMClient sends each prompt to the primary provider and, only when
// that call fails while the request context is still live, once to the
// fallback. A cancelled or expired context returns the primary error as is,
// since the fallback would fail the same way.
type FallbackLLMClient struct {
	primary  LLMClient
	fallback LLMClient
	logger   *logging.Logger
}

// NewFallbackLLMClient pairs primary with an optional fallback. A nil fallback
// makes the client a pass-through to primary.
func NewFallbackLLMClient(primary, fallback LLMClient, logger *logging.Logger) *FallbackLLMClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackLLMClient{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Complete returns the first successful reply. When both providers fail, the
// returned error wraps both causes.
func (c *FallbackLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	resp, primaryErr := c.primary.Complete(ctx, req)
	if primaryErr == nil {
		return resp, nil
	}
	if c.fallback == nil {
		return LLMResponse{}, primaryErr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.logger.Warn("primary provider failed after request ended; skipping fallback",
			"error", primaryErr,
			"ctx_error", ctxErr,
		)
		return LLMResponse{}, primaryErr
	}

	c.logger.Warn("primary provider failed; trying fallback", "error", primaryErr)
	resp, fallbackErr := c.fallback.Complete(ctx, req)
	if fallbackErr != nil {
		return LLMResponse{}, fmt.Errorf("conversation: primary provider: %w; fallback provider: %w", primaryErr, fallbackErr)
	}

	c.logger.Info("fallback provider answered", "provider", resp.Provider)
	return resp, nil
}
