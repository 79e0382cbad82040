package input

import (
	"sync"

	"github.com/macroweave/macroweave/internal/input/key"
)

// Tracker records which modifier keys are currently held.
// Left and right variants collapse to a single bit per modifier.
//
// A Tracker is owned by its pipeline; nothing here is package-level, so
// independent pipelines track independently.
type Tracker struct {
	mu   sync.Mutex
	held key.Modifier
}

// NewTracker creates a tracker with no modifiers held.
func NewTracker() *Tracker {
	return &Tracker{}
}

// OnKeyEvent updates the held bitmask for modifier keys.
// Non-modifier keys are a no-op.
func (t *Tracker) OnKeyEvent(code key.Code, down bool) {
	mod := key.ModifierFromCode(code)
	if mod == key.ModNone {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if down {
		t.held = t.held.With(mod)
	} else {
		t.held = t.held.Without(mod)
	}
}

// Has returns true if all bits in mask are currently held.
func (t *Tracker) Has(mask key.Modifier) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held.Has(mask)
}

// HasExact returns true if the held state equals mask exactly.
func (t *Tracker) HasExact(mask key.Modifier) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held == mask
}

// Current returns the held bitmask.
func (t *Tracker) Current() key.Modifier {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held
}

// Reset clears all held bits. Used on focus loss, where key-up events for
// held modifiers may never arrive.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = key.ModNone
}

// HandleKey implements Handler so a tracker can sit at the front of a
// pipeline. It observes every transition and never consumes the event.
func (t *Tracker) HandleKey(ev key.Event, _ bool) bool {
	t.OnKeyEvent(ev.Code, ev.Down)
	return false
}
