// Package notify delivers expansion outcome events to subscribed
// observers: a success per completed replay, an error per aborted one.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an event.
type Kind int

const (
	// KindExpansion reports a completed expansion.
	KindExpansion Kind = iota

	// KindError reports a failed replay.
	KindError
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindExpansion:
		return "expansion"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Event describes one expansion outcome.
type Event struct {
	// ID uniquely identifies the expansion attempt.
	ID uuid.UUID

	// Kind is expansion or error.
	Kind Kind

	// Trigger is the matched rule's trigger text.
	Trigger string

	// Text is the resolved expansion text (success events only).
	Text string

	// Err is the replay failure (error events only).
	Err error

	// Time is when the outcome was recorded.
	Time time.Time
}

// Observer receives events. Observers run synchronously on the replay
// completion path and should return quickly.
type Observer func(Event)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

// Notifier fans events out to observers.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// NewNotifier creates a notifier with no observers.
func NewNotifier() *Notifier {
	return &Notifier{observers: make(map[uint64]Observer)}
}

// Subscribe registers an observer for all events.
func (n *Notifier) Subscribe(obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.observers[n.nextID] = obs
	return &Subscription{id: n.nextID, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

// Emit delivers the event to every observer.
func (n *Notifier) Emit(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(ev)
	}
}

// ExpansionOccurred emits a success event.
func (n *Notifier) ExpansionOccurred(id uuid.UUID, trigger, text string) {
	n.Emit(Event{ID: id, Kind: KindExpansion, Trigger: trigger, Text: text})
}

// ExpansionError emits a failure event.
func (n *Notifier) ExpansionError(id uuid.UUID, trigger string, err error) {
	n.Emit(Event{ID: id, Kind: KindError, Trigger: trigger, Err: err})
}
