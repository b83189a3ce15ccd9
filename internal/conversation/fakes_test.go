package conversation

import (
	"context"
	"sync"

	"github.com/wolfman30/saathi/internal/crisislog"
)

// stubLLM returns queued replies or a fixed error and records prompts.
type stubLLM struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
	calls   int
}

func (s *stubLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.prompts = append(s.prompts, req.Prompt)
	if s.err != nil {
		return LLMResponse{}, s.err
	}
	text := "Main samajh sakta hun. Aap kaisa mehsoos kar rahe ho?"
	if len(s.replies) > 0 {
		text = s.replies[0]
		s.replies = s.replies[1:]
	}
	return LLMResponse{Text: text, Provider: "stub"}, nil
}

func (s *stubLLM) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

type recordingRecorder struct {
	mu     sync.Mutex
	events []crisislog.Event
	err    error
}

func (r *recordingRecorder) Record(_ context.Context, evt crisislog.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return r.err
}
