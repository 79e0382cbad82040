package key

import (
	"fmt"
	"time"
)

// Event is a single key transition as delivered by the platform adapter.
type Event struct {
	// Code is the virtual key code.
	Code Code

	// Down is true for key-down, false for key-up.
	Down bool

	// Shift reports whether a Shift key was held at event time.
	Shift bool

	// CapsLock reports whether caps lock was toggled on at event time.
	CapsLock bool

	// Injected is true for events the engine generated itself
	// (simulated backspaces and paste chords during replay).
	Injected bool

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key-down event with the current timestamp.
func NewEvent(code Code) Event {
	return Event{Code: code, Down: true, Timestamp: time.Now()}
}

// NewUpEvent creates a key-up event with the current timestamp.
func NewUpEvent(code Code) Event {
	return Event{Code: code, Down: false, Timestamp: time.Now()}
}

// WithShift returns a copy with the shift flag set.
func (e Event) WithShift() Event {
	e.Shift = true
	return e
}

// WithCapsLock returns a copy with the caps-lock flag set.
func (e Event) WithCapsLock() Event {
	e.CapsLock = true
	return e
}

// AsInjected returns a copy flagged as self-generated input.
func (e Event) AsInjected() Event {
	e.Injected = true
	return e
}

// Rune translates the event to the literal character it would type,
// honoring the shift and caps-lock flags. Returns false if the key has
// no character mapping.
func (e Event) Rune() (rune, bool) {
	return Translate(e.Code, e.Shift, e.CapsLock)
}

// String returns a debug representation like "A down" or "Escape up".
func (e Event) String() string {
	dir := "up"
	if e.Down {
		dir = "down"
	}
	return fmt.Sprintf("%s %s", e.Code, dir)
}
