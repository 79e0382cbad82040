package key

import "strings"

// Modifier is a bitmask of held modifier keys.
// Left/right variants collapse to a single bit.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModShift indicates the Shift key.
	ModShift

	// ModAlt indicates the Alt key.
	ModAlt

	// ModWin indicates the Windows key.
	ModWin

	// ModBacktick indicates the backtick key held as a modifier.
	ModBacktick
)

// Has returns true if m contains all bits of mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasWin returns true if the Windows key is pressed.
func (m Modifier) HasWin() bool {
	return m.Has(ModWin)
}

// With returns a new Modifier with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a canonical representation like "Ctrl+Shift+A".
// Order is always Ctrl, Shift, Alt, Win, Backtick.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasWin() {
		parts = append(parts, "Win")
	}
	if m.Has(ModBacktick) {
		parts = append(parts, "Backtick")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":     ModCtrl,
	"control":  ModCtrl,
	"c":        ModCtrl,
	"shift":    ModShift,
	"s":        ModShift,
	"alt":      ModAlt,
	"a":        ModAlt,
	"win":      ModWin,
	"super":    ModWin,
	"meta":     ModWin,
	"w":        ModWin,
	"backtick": ModBacktick,
}

// ModifierFromName returns the Modifier for a name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(name)]; ok {
		return m
	}
	return ModNone
}

// ModifierFromCode returns the modifier bit a virtual key code maps to,
// or ModNone for non-modifier keys. The backtick key is reported here so
// callers that treat it as a hold-modifier can track it; the engine itself
// never clears on it.
func ModifierFromCode(c Code) Modifier {
	switch c {
	case CodeCtrl, CodeLCtrl, CodeRCtrl:
		return ModCtrl
	case CodeShift, CodeLShift, CodeRShift:
		return ModShift
	case CodeAlt, CodeLAlt, CodeRAlt:
		return ModAlt
	case CodeLWin, CodeRWin:
		return ModWin
	case CodeOEMBacktick:
		return ModBacktick
	}
	return ModNone
}

// ParseModifiers parses a modifier string like "Ctrl+Alt" or "C-A".
// Unrecognized parts are ignored.
func ParseModifiers(s string) Modifier {
	s = strings.ToLower(s)

	var parts []string
	switch {
	case strings.Contains(s, "+"):
		parts = strings.Split(s, "+")
	case strings.Contains(s, "-"):
		parts = strings.Split(s, "-")
	default:
		parts = []string{s}
	}

	var result Modifier
	for _, part := range parts {
		if mod := ModifierFromName(strings.TrimSpace(part)); mod != ModNone {
			result = result.With(mod)
		}
	}
	return result
}
