package i

import (
	"time"

	"github.com/google/uuid"
)

// Tokenizer defines methods for generating and decoding session tokens.
type Tokenizer interface {
	// Generate creates a token bound to the given session that expires after expTime.
	Generate(sessionID uuid.UUID, expTime time.Duration) (string, error)

	// Decode validates a token and returns the session it is bound to.
	Decode(token string) (uuid.UUID, error)
}
