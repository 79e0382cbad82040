// Package expand implements the text-expansion engine: a rolling
// character buffer keyed to the foreground context, an ordered trigger
// rule set, placeholder template resolution, and the state machine that
// turns a matched trigger into a replayed backspace/paste sequence.
//
// The engine consumes key events synchronously on the caller's thread and
// never blocks there; the replay itself runs on an injectable executor so
// the hook path returns immediately after the trigger keystroke is
// suppressed.
package expand
