package session

import (
	"fmt"
	"sync"
	"time"
)

// Store owns every session in the process. All methods are safe for
// concurrent use; a single mutex serializes writers including Sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*record

	now    func() time.Time
	newID  func() string
	window int
}

type record struct {
	id           string
	messages     []Turn
	createdAt    time.Time
	lastActivity time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how Create allocates ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithWindow overrides the number of turns kept after AppendAndTrim.
func WithWindow(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.window = n
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*record),
		now:      time.Now,
		newID:    NewID,
		window:   HistoryWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session under a freshly generated id.
func (s *Store) Create() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for _, taken := s.sessions[id]; taken; _, taken = s.sessions[id] {
		id = s.newID()
	}
	return s.insertLocked(id).snapshot()
}

// GetOrCreate returns the session for id, creating an empty one under that
// exact id when none exists. Any caller-chosen string is accepted.
func (s *Store) GetOrCreate(id string) Lookup {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.sessions[id]; ok && rec != nil {
		return Lookup{Outcome: Found, Session: rec.snapshot()}
	}
	return Lookup{Outcome: Created, Session: s.insertLocked(id).snapshot()}
}

// Get returns the session for id without touching its activity time.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[id]
	if !ok || rec == nil {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return rec.snapshot(), nil
}

// Append records a turn and refreshes the session's activity time.
func (s *Store) Append(id string, turn Turn) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.appendLocked(id, turn)
	if err != nil {
		return Session{}, err
	}
	return rec.snapshot(), nil
}

// AppendOrCreate resolves id like GetOrCreate and records turn under the same
// lock, so a concurrent Sweep cannot remove the session between the two.
func (s *Store) AppendOrCreate(id string, turn Turn) (Lookup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := Found
	if rec, ok := s.sessions[id]; !ok || rec == nil {
		s.insertLocked(id)
		outcome = Created
	}
	rec, err := s.appendLocked(id, turn)
	if err != nil {
		return Lookup{}, err
	}
	return Lookup{Outcome: outcome, Session: rec.snapshot()}, nil
}

// AppendAndTrim records a turn and then applies the history window, as one
// step. It is used for the assistant side of an exchange.
func (s *Store) AppendAndTrim(id string, turn Turn) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.appendLocked(id, turn)
	if err != nil {
		return Session{}, err
	}
	rec.messages = Trim(rec.messages, s.window)
	return rec.snapshot(), nil
}

// Sweep removes sessions idle for longer than maxIdle as of now and returns
// how many were removed.
func (s *Store) Sweep(now time.Time, maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, rec := range s.sessions {
		if rec == nil || now.Sub(rec.lastActivity) > maxIdle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) insertLocked(id string) *record {
	now := s.now()
	rec := &record{
		id:           id,
		messages:     []Turn{},
		createdAt:    now,
		lastActivity: now,
	}
	s.sessions[id] = rec
	return rec
}

func (s *Store) appendLocked(id string, turn Turn) (*record, error) {
	rec, ok := s.sessions[id]
	if !ok || rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	now := s.now()
	if turn.Timestamp.IsZero() {
		turn.Timestamp = now
	}
	rec.messages = append(rec.messages, turn)
	rec.lastActivity = now
	return rec, nil
}

func (r *record) snapshot() Session {
	messages := make([]Turn, len(r.messages))
	copy(messages, r.messages)
	return Session{
		ID:           r.id,
		Messages:     messages,
		CreatedAt:    r.createdAt,
		LastActivity: r.lastActivity,
	}
}
