package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub is an in-process publish-subscribe hub keyed by user id. Each open stream holds
// one Subscription; a user may have several.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[string]*Subscription
	buffer int
	now    func() time.Time
	log    zerolog.Logger
}

// Subscription receives the events addressed to one user.
type Subscription struct {
	ID     string
	UserID string

	events chan Event
	hub    *Hub
	once   sync.Once
}

// NewHub creates a Hub whose subscriptions buffer up to buffer events each.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	return &Hub{
		subs:   make(map[string]map[string]*Subscription),
		buffer: buffer,
		now:    time.Now,
		log:    log,
	}
}

// Subscribe registers a new live connection for userID.
func (h *Hub) Subscribe(userID string) *Subscription {
	sub := &Subscription{
		ID:     uuid.NewString(),
		UserID: userID,
		events: make(chan Event, h.buffer),
		hub:    h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[string]*Subscription)
	}
	h.subs[userID][sub.ID] = sub

	h.log.Debug().Str("user_id", userID).Str("subscription", sub.ID).Msg("Notification subscriber connected")
	return sub
}

// Events is closed once the subscription is closed.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userSubs, ok := h.subs[sub.UserID]; ok {
		delete(userSubs, sub.ID)
		if len(userSubs) == 0 {
			delete(h.subs, sub.UserID)
		}
	}
	// Sends happen under the read lock, so nothing can be writing to events here.
	close(sub.events)

	h.log.Debug().Str("user_id", sub.UserID).Str("subscription", sub.ID).Msg("Notification subscriber disconnected")
}

// SendToUser never blocks: a subscriber whose buffer is full misses the event.
func (h *Hub) SendToUser(_ context.Context, userID, event, payload string) error {
	ev := Event{Name: event, Payload: payload, SentAt: h.now()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[userID] {
		select {
		case sub.events <- ev:
		default:
			h.log.Warn().Str("user_id", userID).Str("subscription", sub.ID).Str("event", event).Msg("Notification buffer full, event dropped")
		}
	}
	return nil
}

// Connected returns the number of live subscriptions for userID.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
