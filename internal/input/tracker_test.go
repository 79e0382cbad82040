package input

import (
	"testing"

	"github.com/macroweave/macroweave/internal/input/key"
)

func TestTrackerDownUp(t *testing.T) {
	tr := NewTracker()

	tr.OnKeyEvent(key.CodeLCtrl, true)
	if !tr.Has(key.ModCtrl) {
		t.Error("Ctrl should be held after LCtrl down")
	}

	tr.OnKeyEvent(key.CodeLShift, true)
	if !tr.Has(key.ModCtrl | key.ModShift) {
		t.Error("Ctrl+Shift should be held")
	}
	if tr.HasExact(key.ModCtrl) {
		t.Error("HasExact(Ctrl) should be false with Shift also held")
	}
	if !tr.HasExact(key.ModCtrl | key.ModShift) {
		t.Error("HasExact(Ctrl|Shift) should be true")
	}

	tr.OnKeyEvent(key.CodeLCtrl, false)
	if tr.Has(key.ModCtrl) {
		t.Error("Ctrl should be released")
	}
	if !tr.Has(key.ModShift) {
		t.Error("Shift should still be held")
	}
}

func TestTrackerLeftRightCollapse(t *testing.T) {
	tr := NewTracker()

	tr.OnKeyEvent(key.CodeRAlt, true)
	if !tr.Has(key.ModAlt) {
		t.Error("RAlt should set the Alt bit")
	}
	// Releasing via the generic code clears the same bit.
	tr.OnKeyEvent(key.CodeAlt, false)
	if tr.Has(key.ModAlt) {
		t.Error("Alt up should clear the Alt bit")
	}
}

func TestTrackerIgnoresNonModifiers(t *testing.T) {
	tr := NewTracker()
	tr.OnKeyEvent(key.CodeA, true)
	tr.OnKeyEvent(key.CodeEscape, true)
	if !tr.HasExact(key.ModNone) {
		t.Error("non-modifier keys must not change tracker state")
	}
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	tr.OnKeyEvent(key.CodeCtrl, true)
	tr.OnKeyEvent(key.CodeLWin, true)
	tr.Reset()
	if !tr.HasExact(key.ModNone) {
		t.Error("Reset should clear all bits")
	}
}

func TestTrackerBacktick(t *testing.T) {
	tr := NewTracker()
	tr.OnKeyEvent(key.CodeOEMBacktick, true)
	if !tr.Has(key.ModBacktick) {
		t.Error("backtick down should set the backtick bit")
	}
	tr.OnKeyEvent(key.CodeOEMBacktick, false)
	if tr.Has(key.ModBacktick) {
		t.Error("backtick up should clear the backtick bit")
	}
}
