package conversation

import (
	"errors"
	"fmt"

	"github.com/wolfman30/saathi/internal/crisis"
)

var (
	// ErrInvalidInput is returned for empty or whitespace-only messages.
	ErrInvalidInput = errors.New("conversation: message cannot be empty")

	// ErrMissingCredential is returned when no provider API key is configured.
	ErrMissingCredential = errors.New("conversation: GEMINI_API_KEY is not configured")
)

// ProviderError reports any failure of the external AI call: network, auth,
// quota, timeout or an empty answer.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	if e == nil || e.Err == nil {
		return "conversation: provider unavailable"
	}
	return "conversation: provider unavailable: " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProviderFallbackMessage is shown to the user whenever the provider fails,
// whether or not the message was flagged.
func ProviderFallbackMessage() string {
	primary := crisis.PrimaryHelpline()
	return fmt.Sprintf("I'm having trouble connecting right now. Please try again in a moment. If you're in crisis, please contact: %s: %s",
		primary.Name, primary.Phone)
}
