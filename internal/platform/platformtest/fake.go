// Package platformtest provides in-memory platform fakes for engine tests.
package platformtest

import (
	"fmt"
	"sync"
	"time"
)

// Op is one recorded injector operation.
type Op struct {
	// Kind is "backspace", "paste", or "cursorleft".
	Kind string

	// Count is the keystroke count for backspace/cursorleft ops.
	Count int

	// Text is the pasted text for paste ops.
	Text string
}

// String returns a compact form like "backspace(5)" or "paste(hi)".
func (o Op) String() string {
	if o.Kind == "paste" {
		return fmt.Sprintf("paste(%s)", o.Text)
	}
	return fmt.Sprintf("%s(%d)", o.Kind, o.Count)
}

// Injector records replay operations instead of touching the OS.
// FailAfter, when non-negative, makes the op with that index (and all
// later ones) return an error, for exercising partial-replay failures.
type Injector struct {
	mu        sync.Mutex
	ops       []Op
	FailAfter int
}

// NewInjector creates a recording injector that never fails.
func NewInjector() *Injector {
	return &Injector{FailAfter: -1}
}

func (f *Injector) record(op Op) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailAfter >= 0 && len(f.ops) >= f.FailAfter {
		return fmt.Errorf("injection rejected at op %d (%s)", len(f.ops), op)
	}
	f.ops = append(f.ops, op)
	return nil
}

// SendBackspaces records a backspace burst.
func (f *Injector) SendBackspaces(n int, _ time.Duration) error {
	return f.record(Op{Kind: "backspace", Count: n})
}

// PasteText records a paste.
func (f *Injector) PasteText(text string, _ time.Duration) error {
	return f.record(Op{Kind: "paste", Text: text})
}

// MoveCursorLeft records a cursor move.
func (f *Injector) MoveCursorLeft(n int, _ time.Duration) error {
	return f.record(Op{Kind: "cursorleft", Count: n})
}

// Ops returns a copy of the recorded operations.
func (f *Injector) Ops() []Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Op, len(f.ops))
	copy(out, f.ops)
	return out
}

// Reset discards recorded operations.
func (f *Injector) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = nil
}

// Clipboard is an in-memory clipboard.
type Clipboard struct {
	mu   sync.Mutex
	Text string
	Err  error
}

// ReadText returns the stored text or the configured error.
func (c *Clipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Text, c.Err
}
