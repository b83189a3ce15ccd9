package conversation

import "context"

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// LLMRequest carries one fully assembled prompt. Each client owns its model id.
type LLMRequest struct {
	Prompt    string
	MaxTokens int32
	// Negative temperature leaves the provider default in place.
	Temperature float32
}

type LLMResponse struct {
	Text       string
	Provider   string
	Usage      TokenUsage
	StopReason string
}

// LLMClient is the external generative-language collaborator.
type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}

// UnavailableLLMClient fails every request with the same error. It stands in
// for a provider whose credential is missing so the server can still start.
type UnavailableLLMClient struct {
	Err error
}

func (c UnavailableLLMClient) Complete(context.Context, LLMRequest) (LLMResponse, error) {
	err := c.Err
	if err == nil {
		err = ErrMissingCredential
	}
	return LLMResponse{}, err
}
