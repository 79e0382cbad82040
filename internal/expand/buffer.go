package expand

import (
	"strings"
	"sync"

	"github.com/macroweave/macroweave/internal/platform"
)

// DefaultBufferCapacity is the rolling buffer size when none is
// configured. Large enough for any realistic trigger plus a delimiter.
const DefaultBufferCapacity = 64

// Buffer is a fixed-capacity rolling window over the characters typed
// into one foreground context. Appending past capacity evicts from the
// front; a foreground-context change clears the window.
//
// All operations serialize on an internal lock: the hook callback and the
// replay completion path may both touch the buffer.
type Buffer struct {
	mu       sync.Mutex
	capacity int
	chars    []rune
	token    string
	ctx      platform.ContextProvider
}

// NewBuffer creates a buffer bound to the given context provider.
// A capacity <= 0 selects DefaultBufferCapacity.
func NewBuffer(capacity int, ctx platform.ContextProvider) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	b := &Buffer{
		capacity: capacity,
		chars:    make([]rune, 0, capacity),
		ctx:      ctx,
	}
	if ctx != nil {
		b.token = ctx.ForegroundContext()
	}
	return b
}

// Append adds one character, polling the context provider first.
// If the foreground context changed since the last observation the buffer
// is cleared and the new token adopted before the append; Append then
// returns false to signal that suffix continuity was lost.
func (b *Buffer) Append(r rune) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	cleared := false
	if b.ctx != nil {
		if token := b.ctx.ForegroundContext(); token != b.token {
			b.chars = b.chars[:0]
			b.token = token
			cleared = true
		}
	}

	if over := len(b.chars) - b.capacity + 1; over > 0 {
		b.chars = append(b.chars[:0], b.chars[over:]...)
	}
	b.chars = append(b.chars, r)

	return !cleared
}

// RemoveLast removes up to count trailing characters, clamped to the
// buffer length. Models backspace keystrokes.
func (b *Buffer) RemoveLast(count int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if count <= 0 {
		return
	}
	if count > len(b.chars) {
		count = len(b.chars)
	}
	b.chars = b.chars[:len(b.chars)-count]
}

// Clear empties the buffer. The tracked context token is kept.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chars = b.chars[:0]
}

// UpdateContext adopts the provider's current token without touching
// content, suppressing the spurious clear a stale token would cause on
// the next append.
func (b *Buffer) UpdateContext() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctx != nil {
		b.token = b.ctx.ForegroundContext()
	}
}

// Len returns the number of buffered characters.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chars)
}

// Content returns the buffered characters as a string.
func (b *Buffer) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.chars)
}

// EndsWithTrigger reports whether the buffer's trailing characters equal
// trigger under the requested case policy.
func (b *Buffer) EndsWithTrigger(trigger string, caseSensitive bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return endsAt(b.chars, len(b.chars), trigger, caseSensitive)
}

// EndsWithTriggerBeforeLastChar reports whether the characters ending one
// position before the buffer end equal trigger. Used for delimiter-mode
// matching, where the final buffered character is the delimiter itself.
func (b *Buffer) EndsWithTriggerBeforeLastChar(trigger string, caseSensitive bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return endsAt(b.chars, len(b.chars)-1, trigger, caseSensitive)
}

// endsAt reports whether chars[:end] ends with trigger.
func endsAt(chars []rune, end int, trigger string, caseSensitive bool) bool {
	tr := []rune(trigger)
	if len(tr) == 0 || end < len(tr) {
		return false
	}
	tail := string(chars[end-len(tr) : end])
	if caseSensitive {
		return tail == trigger
	}
	return strings.EqualFold(tail, trigger)
}
