package auth

import (
	"sync"
)

// Event types published on the auth broker.
const (
	EventSignedIn      = "SIGNED_IN"
	EventSignedOut     = "SIGNED_OUT"
	EventSignedUp      = "SIGNED_UP"
	EventTokenRefresh  = "TOKEN_REFRESHED"
	EventProfileRepair = "PROFILE_REPAIRED"
)

// Event describes an auth state change
type Event struct {
	Type      string `json:"type"`
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId,omitempty"`
}

// Broker is an in-process pub-sub hub for auth state changes. Subscribers
// get a buffered channel; events are dropped rather than blocking the
// publisher when a subscriber falls behind.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
}

// NewBroker creates a new auth event broker
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[int]chan Event),
	}
}

// Subscribe registers a listener and returns its channel plus an
// unsubscribe function
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Publish delivers an event to all subscribers without blocking
func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up, drop the event for it
		}
	}
}
