package idempotency

import (
	"context"

	"github.com/google/uuid"
)

// Store remembers the response of an operation by its client-supplied key.
type Store interface {
	// Check returns the stored result and whether the key was seen before.
	Check(ctx context.Context, key string) ([]byte, bool, error)
	Store(ctx context.Context, key string, senderID *uuid.UUID, opType string, resultJSON []byte) error
}
