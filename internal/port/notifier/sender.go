package notifier

import (
	"context"

	"github.com/google/uuid"
)

// SenderNotifier pushes an event to a sender's connected sessions, if any.
// Having no live session is not an error.
type SenderNotifier interface {
	NotifySender(ctx context.Context, senderID uuid.UUID, event any) error
}
