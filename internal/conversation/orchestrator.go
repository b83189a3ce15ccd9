package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/saathi/internal/crisis"
	"github.com/wolfman30/saathi/internal/crisislog"
	"github.com/wolfman30/saathi/internal/observability/metrics"
	"github.com/wolfman30/saathi/internal/session"
	"github.com/wolfman30/saathi/pkg/logging"
)

// Stage names a step of HandleMessage. It is recorded on spans and failure logs.
type Stage string

const (
	StageValidating       Stage = "validating"
	StageResolvingSession Stage = "resolving_session"
	StageClassifying      Stage = "classifying"
	StageAssemblingPrompt Stage = "assembling_prompt"
	StageAwaitingProvider Stage = "awaiting_provider"
	StageRecording        Stage = "recording"
	StageResponding       Stage = "responding"
)

const (
	outcomeResponded           = "responded"
	outcomeInvalidInput        = "invalid_input"
	outcomeProviderUnavailable = "provider_unavailable"
	outcomeInternal            = "internal_error"
)

// CrisisRecorder receives crisis detections. Failures never fail the exchange.
type CrisisRecorder interface {
	Record(ctx context.Context, evt crisislog.Event) error
}

// Reply is what a successful exchange returns to the caller.
type Reply struct {
	Message      string
	Crisis       *crisis.Result
	SessionID    string
	MessageCount int
	Outcome      session.Outcome
}

// OrchestratorConfig wires an Orchestrator.
type OrchestratorConfig struct {
	Store    *session.Store
	Matcher  *crisis.Matcher
	LLM      LLMClient
	Recorder CrisisRecorder
	Metrics  *metrics.ChatMetrics
	Logger   *logging.Logger

	// Persona defaults to the built-in Persona.
	Persona     string
	MaxTokens   int32
	Temperature float32
}

// Orchestrator runs one chat exchange: validate, resolve the session, classify,
// build the prompt, call the provider, record both turns.
type Orchestrator struct {
	store       *session.Store
	matcher     *crisis.Matcher
	llm         LLMClient
	recorder    CrisisRecorder
	metrics     *metrics.ChatMetrics
	logger      *logging.Logger
	tracer      trace.Tracer
	persona     string
	maxTokens   int32
	temperature float32
}

func NewOrchestrator(cfg OrchestratorConfig) (*Orchestrator, error) {
	if cfg.Store == nil {
		return nil, errors.New("conversation: session store is required")
	}
	if cfg.LLM == nil {
		return nil, errors.New("conversation: llm client is required")
	}
	if cfg.Matcher == nil {
		cfg.Matcher = crisis.NewMatcher()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if strings.TrimSpace(cfg.Persona) == "" {
		cfg.Persona = Persona
	}
	return &Orchestrator{
		store:       cfg.Store,
		matcher:     cfg.Matcher,
		llm:         cfg.LLM,
		recorder:    cfg.Recorder,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		tracer:      otel.Tracer("saathi.internal.conversation"),
		persona:     cfg.Persona,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// HandleMessage processes one inbound message for sessionID. Errors are
// ErrInvalidInput, *ProviderError, or an internal error.
func (o *Orchestrator) HandleMessage(ctx context.Context, sessionID, message string) (*Reply, error) {
	ctx, span := o.tracer.Start(ctx, "conversation.handle_message")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sessionID))

	stage := StageValidating
	span.AddEvent(string(stage))
	if strings.TrimSpace(message) == "" {
		o.metrics.ObserveMessage(outcomeInvalidInput)
		return nil, ErrInvalidInput
	}

	stage = StageResolvingSession
	span.AddEvent(string(stage))
	lookup, err := o.store.AppendOrCreate(sessionID, session.Turn{Role: session.RoleUser, Content: message})
	if err != nil {
		return nil, o.fail(span, stage, sessionID, fmt.Errorf("conversation: record user turn: %w", err))
	}
	if lookup.Outcome == session.Created {
		o.metrics.ObserveSessionCreated("implicit", o.store.Len())
		o.logger.Debug("session created on first message", "session_id", sessionID)
	}
	history := lookup.Session.Messages

	stage = StageClassifying
	span.AddEvent(string(stage))
	var crisisInfo *crisis.Result
	if phrase, ok := o.matcher.Match(message); ok {
		crisisInfo = crisis.Resources()
		span.SetAttributes(attribute.Bool("crisis.flagged", true))
		o.metrics.ObserveCrisis()
		o.logger.Warn("crisis phrase detected", "session_id", sessionID, "phrase", phrase)
		o.recordCrisis(ctx, sessionID, phrase)
	}

	stage = StageAssemblingPrompt
	span.AddEvent(string(stage))
	prompt := BuildPrompt(o.persona, history, message)

	stage = StageAwaitingProvider
	span.AddEvent(string(stage))
	start := time.Now()
	resp, err := o.llm.Complete(ctx, LLMRequest{
		Prompt:      prompt,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err == nil && strings.TrimSpace(resp.Text) == "" {
		err = errors.New("conversation: provider returned an empty reply")
	}
	if err != nil {
		o.metrics.ObserveProvider(resp.Provider, "error", time.Since(start))
		return nil, o.fail(span, stage, sessionID, &ProviderError{Err: err})
	}
	o.metrics.ObserveProvider(resp.Provider, "ok", time.Since(start))

	stage = StageRecording
	span.AddEvent(string(stage))
	stored, err := o.store.AppendAndTrim(sessionID, session.Turn{
		Role:    session.RoleAssistant,
		Content: resp.Text,
		Crisis:  crisisInfo,
	})
	if err != nil {
		return nil, o.fail(span, stage, sessionID, fmt.Errorf("conversation: record assistant turn: %w", err))
	}

	span.AddEvent(string(StageResponding))
	o.metrics.ObserveMessage(outcomeResponded)
	o.logger.Info("chat exchange completed",
		"session_id", sessionID,
		"session_outcome", lookup.Outcome.String(),
		"message_count", stored.MessageCount(),
		"crisis", crisisInfo != nil,
		"provider", resp.Provider,
	)

	return &Reply{
		Message:      resp.Text,
		Crisis:       crisisInfo,
		SessionID:    sessionID,
		MessageCount: stored.MessageCount(),
		Outcome:      lookup.Outcome,
	}, nil
}

func (o *Orchestrator) fail(span trace.Span, stage Stage, sessionID string, err error) error {
	span.RecordError(err)
	span.SetAttributes(attribute.String("failed.stage", string(stage)))

	var perr *ProviderError
	if errors.As(err, &perr) {
		o.metrics.ObserveMessage(outcomeProviderUnavailable)
	} else {
		o.metrics.ObserveMessage(outcomeInternal)
	}
	o.logger.Error("chat exchange failed",
		"session_id", sessionID,
		"stage", string(stage),
		"error", err,
	)
	return err
}

func (o *Orchestrator) recordCrisis(ctx context.Context, sessionID, phrase string) {
	if o.recorder == nil {
		return
	}
	evt := crisislog.Event{SessionID: sessionID, Phrase: phrase, Timestamp: time.Now().UTC()}
	if err := o.recorder.Record(ctx, evt); err != nil {
		o.logger.Warn("failed to record crisis event", "session_id", sessionID, "error", err)
	}
}
