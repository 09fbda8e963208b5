// Package notify delivers live notifications to connected employees.
package notify

import (
	"context"
	"time"
)

// Channel pushes an event to every live connection of a user. A user with no live
// connection is not an error; the event is simply dropped.
type Channel interface {
	SendToUser(ctx context.Context, userID, event, payload string) error
}

// Event is one notification as seen by a subscriber.
type Event struct {
	Name    string
	Payload string
	SentAt  time.Time
}
