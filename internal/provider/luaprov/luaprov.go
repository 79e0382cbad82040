// Package luaprov hosts user-defined placeholder providers written in
// Lua. A script registers named zero-argument functions; each becomes a
// $NAME$ provider whose evaluation runs under an execution timeout.
//
// Scripts look like:
//
//	register("JIRA", function()
//	    return "PROJ-" .. os.date("%j")
//	end)
package luaprov

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/macroweave/macroweave/internal/expand"
)

// DefaultTimeout bounds a single provider evaluation.
const DefaultTimeout = 2 * time.Second

// ErrNotFound is returned when a provider name has no registered function.
var ErrNotFound = errors.New("no such lua provider")

// Host owns one Lua state and the providers its scripts registered.
// Calls serialize on an internal lock: a Lua state is not safe for
// concurrent use.
type Host struct {
	mu        sync.Mutex
	state     *lua.LState
	functions map[string]*lua.LFunction
	timeout   time.Duration
	closed    bool
}

// Option configures a Host.
type Option func(*Host)

// WithTimeout overrides the per-call execution timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) { h.timeout = d }
}

// NewHost creates a host with an empty provider table. The standard Lua
// libraries are available to scripts.
func NewHost(opts ...Option) *Host {
	h := &Host{
		state:     lua.NewState(),
		functions: make(map[string]*lua.LFunction),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.state.SetGlobal("register", h.state.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		fn := L.CheckFunction(2)
		if name != "" {
			h.functions[name] = fn
		}
		return 0
	}))

	return h
}

// LoadFile executes a script file, collecting its registrations.
func (h *Host) LoadFile(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errors.New("lua host closed")
	}
	if err := h.state.DoFile(path); err != nil {
		return fmt.Errorf("lua script %s: %w", path, err)
	}
	return nil
}

// LoadString executes inline script source, collecting its registrations.
func (h *Host) LoadString(src string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errors.New("lua host closed")
	}
	if err := h.state.DoString(src); err != nil {
		return fmt.Errorf("lua script: %w", err)
	}
	return nil
}

// Names returns the registered provider names, sorted.
func (h *Host) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	names := make([]string, 0, len(h.functions))
	for n := range h.functions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Call evaluates the named provider function and returns its string
// result. Evaluation is bounded by the host timeout; a script error or
// timeout is returned as an error, which the placeholder resolver
// degrades to leaving the token verbatim.
func (h *Host) Call(name string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return "", errors.New("lua host closed")
	}
	fn, ok := h.functions[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	h.state.SetContext(ctx)
	defer h.state.RemoveContext()

	if err := h.state.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return "", fmt.Errorf("lua provider %s: %w", name, err)
	}

	ret := h.state.Get(-1)
	h.state.Pop(1)

	str, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("lua provider %s returned %s, want string", name, ret.Type())
	}
	return string(str), nil
}

// Install registers every Lua provider into the expansion registry.
// Returns the names that were accepted; names already bound (for example
// shadowing a builtin) are skipped.
func (h *Host) Install(reg *expand.Registry) []string {
	var installed []string
	for _, name := range h.Names() {
		n := name
		if reg.Register(n, func() (string, error) { return h.Call(n) }) {
			installed = append(installed, n)
		}
	}
	return installed
}

// Close shuts the Lua state down. Further calls fail.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.state.Close()
}
