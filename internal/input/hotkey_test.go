package input

import (
	"testing"

	"github.com/macroweave/macroweave/internal/input/key"
)

func TestDispatcherRegisterDuplicate(t *testing.T) {
	d := NewDispatcher(NewTracker())

	if !d.Register(key.CodeA, key.ModCtrl, func() {}) {
		t.Fatal("first Register should succeed")
	}
	if d.Register(key.CodeA, key.ModCtrl, func() {}) {
		t.Error("duplicate Register should be rejected")
	}
	// Same key, different mask is a distinct hotkey.
	if !d.Register(key.CodeA, key.ModCtrl|key.ModShift, func() {}) {
		t.Error("same key with different mask should register")
	}
}

func TestDispatcherUnregister(t *testing.T) {
	d := NewDispatcher(NewTracker())

	if d.Unregister(key.CodeA, key.ModCtrl) {
		t.Error("Unregister of unknown hotkey should return false")
	}
	d.Register(key.CodeA, key.ModCtrl, func() {})
	if !d.Unregister(key.CodeA, key.ModCtrl) {
		t.Error("Unregister of known hotkey should return true")
	}
	if !d.Register(key.CodeA, key.ModCtrl, func() {}) {
		t.Error("re-register after Unregister should succeed")
	}
}

func TestDispatcherFireAndSuppressRepeat(t *testing.T) {
	tr := NewTracker()
	d := NewDispatcher(tr)

	count := 0
	d.Register(key.CodeA, key.ModCtrl, func() { count++ })

	tr.OnKeyEvent(key.CodeCtrl, true)

	if !d.HandleKey(key.NewEvent(key.CodeA), false) {
		t.Fatal("matching hotkey should be consumed")
	}
	if count != 1 {
		t.Fatalf("callback count = %d, want 1", count)
	}

	// OS key repeat: same key-down again without key-up.
	if !d.HandleKey(key.NewEvent(key.CodeA), false) {
		t.Error("repeat should still be consumed")
	}
	if count != 1 {
		t.Errorf("repeat fired callback: count = %d, want 1", count)
	}

	// Key-up re-arms.
	d.HandleKey(key.NewUpEvent(key.CodeA), false)
	d.HandleKey(key.NewEvent(key.CodeA), false)
	if count != 2 {
		t.Errorf("count after re-arm = %d, want 2", count)
	}
}

func TestDispatcherNoMatch(t *testing.T) {
	tr := NewTracker()
	d := NewDispatcher(tr)

	fired := false
	d.Register(key.CodeA, key.ModCtrl, func() { fired = true })

	// No modifiers held: Hotkey{A, none} is not bound.
	if d.HandleKey(key.NewEvent(key.CodeA), false) {
		t.Error("unbound combination should not be consumed")
	}

	// Extra modifier held: mask differs, no match.
	tr.OnKeyEvent(key.CodeCtrl, true)
	tr.OnKeyEvent(key.CodeShift, true)
	if d.HandleKey(key.NewEvent(key.CodeA), false) {
		t.Error("superset modifier mask should not match")
	}
	if fired {
		t.Error("callback should not have fired")
	}
}

func TestDispatcherIgnoresBareModifiers(t *testing.T) {
	tr := NewTracker()
	d := NewDispatcher(tr)
	d.Register(key.CodeCtrl, key.ModNone, func() { t.Error("must not fire") })

	if d.HandleKey(key.NewEvent(key.CodeLCtrl), false) {
		t.Error("bare modifier key-down must be ignored")
	}
}

func TestDispatcherRespectsAlreadyHandled(t *testing.T) {
	tr := NewTracker()
	d := NewDispatcher(tr)

	fired := false
	d.Register(key.CodeA, key.ModNone, func() { fired = true })

	if d.HandleKey(key.NewEvent(key.CodeA), true) {
		t.Error("already-handled event should not be consumed again")
	}
	if fired {
		t.Error("already-handled event should not fire the callback")
	}
}

func TestPipelineOrderAndHandledFlag(t *testing.T) {
	p := NewPipeline()

	var order []string
	p.RegisterWithOptions(HandlerFunc(func(ev key.Event, handled bool) bool {
		order = append(order, "low")
		if !handled {
			t.Error("low-priority handler should see handled=true")
		}
		return false
	}), "low", PriorityLow)
	p.RegisterWithOptions(HandlerFunc(func(ev key.Event, handled bool) bool {
		order = append(order, "high")
		return true
	}), "high", PriorityHigh)

	if !p.Dispatch(key.NewEvent(key.CodeA)) {
		t.Error("Dispatch should report handled")
	}
	if len(order) != 2 || order[0] != "high" || order[1] != "low" {
		t.Errorf("dispatch order = %v, want [high low]", order)
	}
}

func TestPipelineDisabled(t *testing.T) {
	p := NewPipeline()
	p.Register(HandlerFunc(func(key.Event, bool) bool { return true }))
	p.SetEnabled(false)
	if p.Dispatch(key.NewEvent(key.CodeA)) {
		t.Error("disabled pipeline should not dispatch")
	}
}

func TestPipelineUnregister(t *testing.T) {
	p := NewPipeline()
	id := p.Register(HandlerFunc(func(key.Event, bool) bool { return true }))
	if !p.Unregister(id) {
		t.Error("Unregister of known handler should succeed")
	}
	if p.Unregister(id) {
		t.Error("Unregister twice should fail")
	}
	if p.Dispatch(key.NewEvent(key.CodeA)) {
		t.Error("no handlers left, nothing should consume")
	}
}
