package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// NotifyCall records one notification delivered to CaptureNotifier.
type NotifyCall struct {
	SenderID uuid.UUID
	Event    any
}

// CaptureNotifier implements notifier.SenderNotifier and records every call.
// It is safe for concurrent use.
type CaptureNotifier struct {
	mu    sync.Mutex
	Calls []NotifyCall
}

func (c *CaptureNotifier) NotifySender(_ context.Context, senderID uuid.UUID, event any) error {
	c.mu.Lock()
	c.Calls = append(c.Calls, NotifyCall{SenderID: senderID, Event: event})
	c.mu.Unlock()
	return nil
}

// ForSender returns the calls made for senderID.
func (c *CaptureNotifier) ForSender(senderID uuid.UUID) []NotifyCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []NotifyCall
	for _, call := range c.Calls {
		if call.SenderID == senderID {
			out = append(out, call)
		}
	}
	return out
}

func (c *CaptureNotifier) Reset() {
	c.mu.Lock()
	c.Calls = nil
	c.mu.Unlock()
}
