package input

import (
	"sort"
	"sync"

	"github.com/macroweave/macroweave/internal/input/key"
)

// Priority defines the dispatch order for pipeline handlers.
// Lower values run first.
type Priority int

const (
	// PriorityHighest runs before all other handlers.
	PriorityHighest Priority = -1000
	// PriorityHigh runs early in the pipeline.
	PriorityHigh Priority = -100
	// PriorityNormal is the default priority.
	PriorityNormal Priority = 0
	// PriorityLow runs late in the pipeline.
	PriorityLow Priority = 100
	// PriorityLowest runs after all other handlers.
	PriorityLowest Priority = 1000
)

// Handler consumes key events. HandleKey receives the event and whether an
// earlier handler already consumed it, and returns true if this handler
// consumed it. Consumption requests suppression of the keystroke from the
// focused application; it does not stop dispatch to later handlers.
type Handler interface {
	HandleKey(ev key.Event, handled bool) bool
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ev key.Event, handled bool) bool

// HandleKey calls the function.
func (f HandlerFunc) HandleKey(ev key.Event, handled bool) bool {
	return f(ev, handled)
}

// HandlerID uniquely identifies a registered handler.
type HandlerID uint64

// registration holds metadata about a registered handler.
type registration struct {
	id       HandlerID
	name     string
	priority Priority
	handler  Handler
}

// Pipeline dispatches key events to registered handlers in priority order.
// Dispatch runs synchronously on the caller's goroutine (conceptually the
// OS hook thread), so handlers must return quickly and never block on I/O.
type Pipeline struct {
	mu       sync.RWMutex
	handlers []registration
	nextID   HandlerID
	sorted   bool
	enabled  bool
}

// NewPipeline creates an empty, enabled pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{enabled: true}
}

// Register adds a handler with default priority.
func (p *Pipeline) Register(h Handler) HandlerID {
	return p.RegisterWithOptions(h, "", PriorityNormal)
}

// RegisterWithPriority adds a handler with the given priority.
func (p *Pipeline) RegisterWithPriority(h Handler, priority Priority) HandlerID {
	return p.RegisterWithOptions(h, "", priority)
}

// RegisterWithOptions adds a handler with a name and priority.
func (p *Pipeline) RegisterWithOptions(h Handler, name string, priority Priority) HandlerID {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	p.handlers = append(p.handlers, registration{
		id:       p.nextID,
		name:     name,
		priority: priority,
		handler:  h,
	})
	p.sorted = false
	return p.nextID
}

// Unregister removes a handler by ID. Returns false if not found.
func (p *Pipeline) Unregister(id HandlerID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, reg := range p.handlers {
		if reg.id == id {
			p.handlers = append(p.handlers[:i], p.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// SetEnabled turns dispatch on or off. A disabled pipeline reports every
// event as unhandled.
func (p *Pipeline) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Len returns the number of registered handlers.
func (p *Pipeline) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.handlers)
}

// Dispatch delivers the event to all handlers in priority order and
// returns true if any handler consumed it. Registration order breaks
// priority ties.
func (p *Pipeline) Dispatch(ev key.Event) bool {
	p.mu.Lock()
	if !p.enabled {
		p.mu.Unlock()
		return false
	}
	if !p.sorted {
		sort.SliceStable(p.handlers, func(i, j int) bool {
			return p.handlers[i].priority < p.handlers[j].priority
		})
		p.sorted = true
	}
	regs := make([]registration, len(p.handlers))
	copy(regs, p.handlers)
	p.mu.Unlock()

	handled := false
	for _, reg := range regs {
		if reg.handler.HandleKey(ev, handled) {
			handled = true
		}
	}
	return handled
}
