package input

import (
	"sync"

	"github.com/macroweave/macroweave/internal/input/key"
)

// Hotkey identifies a main key plus the exact modifier mask that must be
// held when it is pressed. Value-typed; equality is (code, mods).
type Hotkey struct {
	Code key.Code
	Mods key.Modifier
}

// String returns a display form like "Ctrl+Shift+A".
func (h Hotkey) String() string {
	if h.Mods == key.ModNone {
		return h.Code.String()
	}
	return h.Mods.String() + "+" + h.Code.String()
}

// Callback is invoked when a registered hotkey fires.
type Callback func()

// Dispatcher maps hotkeys to callbacks. A fired hotkey stays "active"
// while its main key is held, which suppresses re-firing on OS key
// repeat; releasing the main key re-arms it.
type Dispatcher struct {
	mu       sync.Mutex
	tracker  *Tracker
	bindings map[Hotkey]Callback
	active   *Hotkey
}

// NewDispatcher creates a dispatcher reading modifier state from tracker.
func NewDispatcher(tracker *Tracker) *Dispatcher {
	return &Dispatcher{
		tracker:  tracker,
		bindings: make(map[Hotkey]Callback),
	}
}

// Register binds a callback to (code, mods). Returns false if an
// identical hotkey is already registered; the existing binding is kept.
func (d *Dispatcher) Register(code key.Code, mods key.Modifier, fn Callback) bool {
	if fn == nil || code == key.CodeNone {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	hk := Hotkey{Code: code, Mods: mods}
	if _, exists := d.bindings[hk]; exists {
		return false
	}
	d.bindings[hk] = fn
	return true
}

// Unregister removes the binding for (code, mods).
// Returns false if no such binding exists.
func (d *Dispatcher) Unregister(code key.Code, mods key.Modifier) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	hk := Hotkey{Code: code, Mods: mods}
	if _, exists := d.bindings[hk]; !exists {
		return false
	}
	delete(d.bindings, hk)
	return true
}

// Bindings returns the registered hotkeys in no particular order.
func (d *Dispatcher) Bindings() []Hotkey {
	d.mu.Lock()
	defer d.mu.Unlock()

	keys := make([]Hotkey, 0, len(d.bindings))
	for hk := range d.bindings {
		keys = append(keys, hk)
	}
	return keys
}

// HandleKey implements Handler. On key-down of a non-modifier key it
// combines the key with the currently held modifiers, fires the bound
// callback if one exists and the hotkey is not already held, and consumes
// the event. On key-up of the active hotkey's main key it re-arms.
func (d *Dispatcher) HandleKey(ev key.Event, handled bool) bool {
	if ev.Code.IsModifier() {
		return false
	}

	if !ev.Down {
		d.mu.Lock()
		if d.active != nil && d.active.Code == ev.Code {
			d.active = nil
		}
		d.mu.Unlock()
		return false
	}

	if handled {
		return false
	}

	hk := Hotkey{Code: ev.Code, Mods: d.tracker.Current()}

	d.mu.Lock()
	fn, ok := d.bindings[hk]
	if !ok {
		d.mu.Unlock()
		return false
	}
	if d.active != nil && *d.active == hk {
		// Key repeat while held; already fired.
		d.mu.Unlock()
		return true
	}
	d.active = &hk
	d.mu.Unlock()

	fn()
	return true
}
