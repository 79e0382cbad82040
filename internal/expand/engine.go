package expand

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/macroweave/macroweave/internal/input"
	"github.com/macroweave/macroweave/internal/input/key"
	"github.com/macroweave/macroweave/internal/notify"
	"github.com/macroweave/macroweave/internal/platform"
)

// DefaultDelimiters are the characters that complete a delimiter-mode
// trigger when none are configured.
const DefaultDelimiters = " \t\n.,!?;:"

// Settings are the engine's tunables, swapped in wholesale from
// configuration.
type Settings struct {
	// Delimiters is the set of characters that fire OnDelimiter rules.
	Delimiters string

	// BufferCapacity bounds the rolling buffer. Zero selects the default.
	BufferCapacity int

	// BackspaceDelay is the pause between simulated backspaces and
	// between cursor-move keystrokes.
	BackspaceDelay time.Duration

	// PasteDelay is the pause after the paste operation.
	PasteDelay time.Duration

	// Enabled is the global on/off switch.
	Enabled bool
}

// DefaultSettings returns the settings used when no configuration exists.
func DefaultSettings() Settings {
	return Settings{
		Delimiters:     DefaultDelimiters,
		BufferCapacity: DefaultBufferCapacity,
		BackspaceDelay: 5 * time.Millisecond,
		PasteDelay:     50 * time.Millisecond,
		Enabled:        true,
	}
}

// Engine orchestrates trigger detection and replay. It is Idle or
// Replaying: while a replay is in flight no new trigger evaluation
// starts, and the engine's own injected keystrokes are filtered out so
// they can never re-trigger it.
type Engine struct {
	mu        sync.Mutex
	buf       *Buffer
	rules     *RuleSet
	settings  Settings
	replaying bool

	tracker   *input.Tracker
	providers *Registry
	injector  platform.Injector
	exec      Executor
	notifier  *notify.Notifier
	log       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithExecutor replaces the replay executor. Tests inject SyncExecutor
// to make replay completion deterministic.
func WithExecutor(exec Executor) Option {
	return func(e *Engine) { e.exec = exec }
}

// WithNotifier sets the outcome notifier.
func WithNotifier(n *notify.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLogger sets the engine logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine. rules may be empty but not nil; tracker supplies
// modifier state; ctx keys the rolling buffer to the foreground target.
func New(rules *RuleSet, tracker *input.Tracker, providers *Registry,
	injector platform.Injector, ctx platform.ContextProvider,
	settings Settings, opts ...Option) *Engine {

	if settings.Delimiters == "" {
		settings.Delimiters = DefaultDelimiters
	}

	e := &Engine{
		buf:       NewBuffer(settings.BufferCapacity, ctx),
		rules:     rules,
		settings:  settings,
		tracker:   tracker,
		providers: providers,
		injector:  injector,
		exec:      GoExecutor{},
		notifier:  notify.NewNotifier(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Notifier returns the engine's outcome notifier.
func (e *Engine) Notifier() *notify.Notifier {
	return e.notifier
}

// Buffer returns the engine's rolling buffer.
func (e *Engine) Buffer() *Buffer {
	return e.buf
}

// SetEnabled flips the global switch. Disabling mid-replay lets the
// in-flight replay finish but blocks new triggers.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.Enabled = enabled
}

// Enabled reports the global switch.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings.Enabled
}

// IsReplaying reports whether a replay is in flight.
func (e *Engine) IsReplaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.replaying
}

// SwapRules atomically replaces the rule set. Matching in progress on the
// hook thread sees either the old set or the new one, never a mixture.
func (e *Engine) SwapRules(rules *RuleSet) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = rules
}

// SwapSettings replaces the tunables. The rolling buffer is rebuilt only
// if its capacity changed. The enabled flag follows the new settings.
func (e *Engine) SwapSettings(settings Settings) {
	if settings.Delimiters == "" {
		settings.Delimiters = DefaultDelimiters
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	oldCap := e.settings.BufferCapacity
	e.settings = settings
	if settings.BufferCapacity != oldCap {
		e.buf = NewBuffer(settings.BufferCapacity, e.buf.ctx)
	}
}

// HandleKey implements input.Handler. It observes key-down events,
// maintains the buffer, and fires expansions; the return value requests
// suppression of the trigger's final keystroke.
func (e *Engine) HandleKey(ev key.Event, handled bool) bool {
	task, consumed := e.processKey(ev, handled)
	if task != nil {
		e.exec.Submit(task)
	}
	return consumed
}

// processKey runs the full dispatch under the engine lock and returns the
// replay task to submit, if a rule fired. The task is submitted outside
// the lock so a synchronous executor cannot deadlock.
func (e *Engine) processKey(ev key.Event, handled bool) (task func(), consumed bool) {
	if !ev.Down {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-entrancy guard: self-injected input, input already claimed by
	// another consumer, and anything arriving mid-replay must not mutate
	// the buffer or trigger matching.
	if !e.settings.Enabled || handled || e.replaying || ev.Injected {
		return nil, false
	}

	switch {
	case ev.Code == key.CodeBackspace:
		e.buf.RemoveLast(1)
		return nil, false

	case ev.Code == key.CodeEscape:
		e.buf.Clear()
		return nil, false

	case ev.Code == key.CodeEnter || ev.Code == key.CodeTab:
		r := '\n'
		if ev.Code == key.CodeTab {
			r = '\t'
		}
		if e.isDelimiter(r) {
			e.buf.Append(r)
			if rule, ok := e.rules.FindMatch(e.buf, ModeOnDelimiter); ok {
				return e.beginExpansion(rule, true), true
			}
		}
		e.buf.Clear()
		return nil, false

	case ev.Code.IsModifier():
		// Tracker state already updated upstream.
		return nil, false

	case ev.Code.IsNavigationKey() || ev.Code.IsFunctionKey():
		// Caret moved; trigger context is gone.
		e.buf.Clear()
		return nil, false
	}

	// A chord with Ctrl, Alt, or Win is a command, not typing. Shift
	// alone is capitalization.
	if e.tracker != nil &&
		(e.tracker.Has(key.ModCtrl) || e.tracker.Has(key.ModAlt) || e.tracker.Has(key.ModWin)) {
		e.buf.Clear()
		return nil, false
	}

	r, ok := ev.Rune()
	if !ok {
		return nil, false
	}

	e.buf.Append(r)

	if rule, m := e.rules.FindMatch(e.buf, ModeImmediate); m {
		return e.beginExpansion(rule, false), true
	}
	if e.isDelimiter(r) {
		if rule, m := e.rules.FindMatch(e.buf, ModeOnDelimiter); m {
			return e.beginExpansion(rule, true), true
		}
	}
	return nil, false
}

func (e *Engine) isDelimiter(r rune) bool {
	return strings.ContainsRune(e.settings.Delimiters, r)
}

// beginExpansion resolves the template, transitions to Replaying, and
// returns the replay task. Called with e.mu held; the trigger keystroke
// is suppressed by the caller returning consumed=true.
//
// Delimiter mode deletes triggerLength+1 characters (trigger plus the
// delimiter); immediate mode deletes triggerLength.
func (e *Engine) beginExpansion(rule Rule, delimiterMode bool) func() {
	exp := e.providers.Process(rule.Template)

	backspaces := len([]rune(rule.Trigger))
	if delimiterMode {
		backspaces++
	}

	// Clear now so a fast keystroke after replay cannot match stale
	// content.
	e.buf.Clear()
	e.replaying = true

	id := uuid.New()
	settings := e.settings

	e.log.Debug("expansion triggered",
		"id", id, "trigger", rule.Trigger, "mode", rule.Mode.String(),
		"backspaces", backspaces)

	return func() {
		err := e.runReplay(exp, backspaces, settings)

		e.mu.Lock()
		e.replaying = false
		e.mu.Unlock()

		if err != nil {
			e.log.Error("replay failed", "id", id, "trigger", rule.Trigger, "error", err)
			e.notifier.ExpansionError(id, rule.Trigger, err)
			return
		}
		e.notifier.ExpansionOccurred(id, rule.Trigger, exp.Text)
	}
}

// runReplay executes the backspace/paste/cursor-move sequence. Any
// failure aborts the remaining steps.
func (e *Engine) runReplay(exp Expansion, backspaces int, settings Settings) error {
	if backspaces > 0 {
		if err := e.injector.SendBackspaces(backspaces, settings.BackspaceDelay); err != nil {
			return err
		}
	}
	if err := e.injector.PasteText(exp.Text, settings.PasteDelay); err != nil {
		return err
	}
	if exp.HasCursor && exp.CursorOffsetFromEnd > 0 {
		if err := e.injector.MoveCursorLeft(exp.CursorOffsetFromEnd, settings.BackspaceDelay); err != nil {
			return err
		}
	}
	return nil
}
