package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/macroweave/macroweave/internal/expand"
	"github.com/macroweave/macroweave/internal/input"
	"github.com/macroweave/macroweave/internal/input/key"
	"github.com/macroweave/macroweave/internal/notify"
)

// document is a small in-memory text target for the playground. It
// plays the role of the focused application: keys the pipeline does
// not consume land here, and replayed expansions are applied to it.
type document struct {
	mu     sync.Mutex
	runes  []rune
	cursor int
}

func (d *document) insert(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ins := []rune(text)
	d.runes = append(d.runes[:d.cursor], append(ins, d.runes[d.cursor:]...)...)
	d.cursor += len(ins)
}

func (d *document) backspace(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n > d.cursor {
		n = d.cursor
	}
	d.runes = append(d.runes[:d.cursor-n], d.runes[d.cursor:]...)
	d.cursor -= n
}

func (d *document) moveLeft(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cursor -= n
	if d.cursor < 0 {
		d.cursor = 0
	}
}

func (d *document) snapshot() (string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return string(d.runes), d.cursor
}

// docInjector applies replay operations directly to the playground
// document instead of sending OS-level input. Delays are ignored
// since nothing here races a real message queue.
type docInjector struct {
	doc *document
}

func (i *docInjector) SendBackspaces(n int, _ time.Duration) error {
	i.doc.backspace(n)
	return nil
}

func (i *docInjector) PasteText(text string, _ time.Duration) error {
	i.doc.insert(text)
	return nil
}

func (i *docInjector) MoveCursorLeft(n int, _ time.Duration) error {
	i.doc.moveLeft(n)
	return nil
}

// playground drives the engine interactively inside a tcell screen.
type playground struct {
	screen   tcell.Screen
	pipeline *input.Pipeline
	tracker  *input.Tracker
	engine   *expand.Engine
	doc      *document

	mu   sync.Mutex
	last string
}

func newPlayground(pipeline *input.Pipeline, tracker *input.Tracker, engine *expand.Engine, doc *document) (*playground, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &playground{
		screen:   screen,
		pipeline: pipeline,
		tracker:  tracker,
		engine:   engine,
		doc:      doc,
	}, nil
}

// observe receives engine outcomes and records a one-line status.
func (p *playground) observe(ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Kind {
	case notify.KindExpansion:
		p.last = fmt.Sprintf("expanded %q (%d runes)", ev.Trigger, len([]rune(ev.Text)))
	case notify.KindError:
		p.last = fmt.Sprintf("expansion of %q failed: %v", ev.Trigger, ev.Err)
	}
}

func (p *playground) run() error {
	defer p.screen.Fini()

	sub := p.engine.Notifier().Subscribe(p.observe)
	defer sub.Unsubscribe()

	for {
		p.draw()

		switch ev := p.screen.PollEvent().(type) {
		case *tcell.EventResize:
			p.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				return nil
			}
			p.handleKey(ev)
		}
	}
}

// handleKey converts a tcell key event into the key events a low-level
// hook would deliver and runs them through the pipeline. Keys the
// pipeline does not consume are applied to the local document.
func (p *playground) handleKey(ev *tcell.EventKey) {
	code, shift, ok := translateTcell(ev)
	if !ok {
		return
	}

	ctrl := ev.Modifiers()&tcell.ModCtrl != 0
	alt := ev.Modifiers()&tcell.ModAlt != 0
	if ev.Key() == tcell.KeyCtrlE {
		// Not every terminal reports ModCtrl alongside control keys.
		ctrl = true
	}

	// Terminals report chords as a single event, so held modifiers
	// are synthesized as their own down/up pairs around the key.
	if ctrl {
		p.pipeline.Dispatch(key.NewEvent(key.CodeCtrl))
	}
	if alt {
		p.pipeline.Dispatch(key.NewEvent(key.CodeAlt))
	}

	down := key.NewEvent(code)
	if shift {
		down = down.WithShift()
	}
	consumed := p.pipeline.Dispatch(down)
	p.pipeline.Dispatch(key.NewUpEvent(code))

	if alt {
		p.pipeline.Dispatch(key.NewUpEvent(key.CodeAlt))
	}
	if ctrl {
		p.pipeline.Dispatch(key.NewUpEvent(key.CodeCtrl))
	}

	if consumed || ctrl || alt {
		return
	}
	p.applyLocal(code, shift)
}

// applyLocal echoes an unconsumed key into the document the way the
// focused application would.
func (p *playground) applyLocal(code key.Code, shift bool) {
	switch code {
	case key.CodeBackspace:
		p.doc.backspace(1)
	case key.CodeLeft:
		p.doc.moveLeft(1)
	case key.CodeRight:
		p.doc.mu.Lock()
		if p.doc.cursor < len(p.doc.runes) {
			p.doc.cursor++
		}
		p.doc.mu.Unlock()
	case key.CodeEscape:
		// Swallowed; the engine already cleared its buffer.
	default:
		if r, ok := key.Translate(code, shift, false); ok {
			p.doc.insert(string(r))
		}
	}
}

// translateTcell maps a tcell event onto a key code plus shift state.
func translateTcell(ev *tcell.EventKey) (key.Code, bool, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		code, shift, ok := key.CodeForRune(ev.Rune())
		return code, shift, ok
	case tcell.KeyEnter:
		return key.CodeEnter, false, true
	case tcell.KeyTab:
		return key.CodeTab, false, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.CodeBackspace, false, true
	case tcell.KeyEscape:
		return key.CodeEscape, false, true
	case tcell.KeyLeft:
		return key.CodeLeft, false, true
	case tcell.KeyRight:
		return key.CodeRight, false, true
	case tcell.KeyUp:
		return key.CodeUp, false, true
	case tcell.KeyDown:
		return key.CodeDown, false, true
	case tcell.KeyHome:
		return key.CodeHome, false, true
	case tcell.KeyEnd:
		return key.CodeEnd, false, true
	case tcell.KeyDelete:
		return key.CodeDelete, false, true
	case tcell.KeyCtrlE:
		// tcell collapses the chord; report the letter and let the
		// caller synthesize the Ctrl press.
		return key.CodeA + 4, false, true
	}
	return key.CodeNone, false, false
}

func (p *playground) draw() {
	p.screen.Clear()
	width, height := p.screen.Size()

	text, cursor := p.doc.snapshot()
	drawLine(p.screen, 0, 0, width, "macroweave playground  (Ctrl+E toggle, Ctrl+C quit)", tcell.StyleDefault.Reverse(true))

	// Document body with a visible cursor cell.
	x, y := 0, 2
	for i, r := range text {
		if r == '\n' {
			if i == cursor {
				p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Reverse(true))
			}
			x, y = 0, y+1
			continue
		}
		style := tcell.StyleDefault
		if i == cursor {
			style = style.Reverse(true)
		}
		p.screen.SetContent(x, y, r, nil, style)
		x++
		if x >= width {
			x, y = 0, y+1
		}
	}
	if cursor == len([]rune(text)) {
		p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Reverse(true))
	}

	state := "enabled"
	if !p.engine.Enabled() {
		state = "disabled"
	}
	p.mu.Lock()
	last := p.last
	p.mu.Unlock()

	status := fmt.Sprintf("engine: %s | buffer: %q | mods: %s | %s",
		state, p.engine.Buffer().Content(), p.tracker.Current(), last)
	drawLine(p.screen, 0, height-1, width, status, tcell.StyleDefault.Reverse(true))

	p.screen.Show()
}

func drawLine(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
