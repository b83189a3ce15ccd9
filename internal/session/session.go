// Package session keeps short-lived, in-process conversation state.
package session

import (
	"errors"
	"time"

	"github.com/wolfman30/saathi/internal/crisis"
)

// ErrSessionNotFound is returned when no session exists for an id.
var ErrSessionNotFound = errors.New("session: not found")

// Role identifies who authored a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message within a session.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time
	// Crisis is set only on assistant turns that answered a flagged message.
	Crisis *crisis.Result
}

// Session is a point-in-time copy of a stored conversation. Mutating it has no
// effect on the store.
type Session struct {
	ID           string
	Messages     []Turn
	CreatedAt    time.Time
	LastActivity time.Time
}

// MessageCount returns the number of stored turns.
func (s Session) MessageCount() int {
	return len(s.Messages)
}

// Outcome tells a caller whether GetOrCreate resumed or started a session.
type Outcome int

const (
	Found Outcome = iota
	Created
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Created:
		return "created"
	default:
		return "unknown"
	}
}

// Lookup is the result of GetOrCreate.
type Lookup struct {
	Outcome Outcome
	Session Session
}
