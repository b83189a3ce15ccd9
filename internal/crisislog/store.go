// Package crisislog keeps an audit trail of crisis-flagged exchanges in Redis.
// Events carry the session id and the matched lexicon phrase, never the
// message text.
package crisislog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	eventsKey        = "crisis_events"
	defaultMaxEvents = 500
	eventTTL         = 7 * 24 * time.Hour
)

// Event is one crisis detection.
type Event struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Phrase    string    `json:"phrase"`
	Timestamp time.Time `json:"timestamp"`
}

// Store appends events to a capped Redis list.
type Store struct {
	redis     *redis.Client
	tracer    trace.Tracer
	maxEvents int64
}

// NewStore returns nil when redisClient is nil so callers can treat the log as optional.
func NewStore(redisClient *redis.Client, maxEvents int) *Store {
	if redisClient == nil {
		return nil
	}
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}
	return &Store{
		redis:     redisClient,
		tracer:    otel.Tracer("saathi.internal.crisislog"),
		maxEvents: int64(maxEvents),
	}
}

// Record appends evt, keeping only the newest maxEvents entries.
func (s *Store) Record(ctx context.Context, evt Event) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if evt.SessionID == "" {
		return errors.New("crisislog: session id required")
	}
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("crisislog: marshal event: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "crisislog.record")
	defer span.End()
	span.SetAttributes(attribute.String("crisis.phrase", evt.Phrase))

	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, eventsKey, data)
	pipe.LTrim(ctx, eventsKey, -s.maxEvents, -1)
	pipe.Expire(ctx, eventsKey, eventTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("crisislog: append event: %w", err)
	}
	return nil
}

// List returns up to limit of the newest events, oldest first. limit <= 0
// returns all. It backs the crisisevents operator command.
func (s *Store) List(ctx context.Context, limit int64) ([]Event, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}

	ctx, span := s.tracer.Start(ctx, "crisislog.list")
	defer span.End()

	start := int64(0)
	if limit > 0 {
		start = -limit
	}
	raw, err := s.redis.LRange(ctx, eventsKey, start, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Event{}, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("crisislog: list events: %w", err)
	}

	out := make([]Event, 0, len(raw))
	for _, item := range raw {
		var evt Event
		if err := json.Unmarshal([]byte(item), &evt); err != nil {
			span.RecordError(err)
			continue
		}
		out = append(out, evt)
	}
	return out, nil
}
