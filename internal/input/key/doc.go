// Package key defines virtual key codes, modifier bitmasks, and key events,
// plus the US-layout translation between key codes and literal characters.
//
// The types here are the vocabulary shared by the modifier tracker, the
// hotkey dispatcher, and the expansion engine. Events arrive from a platform
// adapter one call per physical key transition and are never stored.
package key
