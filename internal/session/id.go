package session

import (
	"strings"

	"github.com/google/uuid"
)

const idPrefix = "session_"

// NewID returns "session_" followed by the hex form of a UUIDv7, which joins a
// millisecond timestamp with 74 random bits.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return idPrefix + strings.ReplaceAll(id.String(), "-", "")
}
