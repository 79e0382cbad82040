// Package input routes key events from a platform adapter through an
// ordered pipeline of consumers: the modifier tracker, the hotkey
// dispatcher, and the expansion engine.
//
// Consumers implement Handler and report whether they consumed the event;
// a consumed event is suppressed from reaching the focused application.
// Each pipeline owns its own tracker instance, so independent pipelines
// (for example in tests) never interfere through shared state.
package input
