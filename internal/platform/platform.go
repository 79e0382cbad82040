// Package platform defines the narrow surface between the engine core and
// the operating system. The core consumes key events and foreground-context
// queries and emits replay commands; everything OS-specific lives behind
// these interfaces.
package platform

import "time"

// ContextProvider reports an opaque token identifying the currently
// focused target (window, control, document). Tokens are only compared
// for equality; a change invalidates the engine's rolling buffer.
type ContextProvider interface {
	ForegroundContext() string
}

// Injector executes the replay side of an expansion as literal simulated
// input. Implementations are expected to be effectively synchronous: each
// call returns once the input has been submitted to the OS.
type Injector interface {
	// SendBackspaces emits n backspace keystrokes with the given delay
	// between each.
	SendBackspaces(n int, delay time.Duration) error

	// PasteText places text in the focused target (typically via
	// clipboard plus a paste chord) and waits postDelay afterwards.
	PasteText(text string, postDelay time.Duration) error

	// MoveCursorLeft emits n left-arrow keystrokes with the given delay
	// between each.
	MoveCursorLeft(n int, delay time.Duration) error
}

// Clipboard reads the system clipboard, feeding the $CLIPBOARD$
// placeholder.
type Clipboard interface {
	ReadText() (string, error)
}

// StaticContext is a ContextProvider with a settable token.
// Useful wherever focus tracking is unavailable or irrelevant.
type StaticContext struct {
	token string
}

// NewStaticContext creates a provider with the given initial token.
func NewStaticContext(token string) *StaticContext {
	return &StaticContext{token: token}
}

// ForegroundContext returns the current token.
func (s *StaticContext) ForegroundContext() string {
	return s.token
}

// SetToken replaces the token, simulating a focus change.
func (s *StaticContext) SetToken(token string) {
	s.token = token
}
