package key

import (
	"fmt"
	"strings"
)

// Code is a Windows-style virtual key code.
// Character keys use the standard 0x30-0x39 / 0x41-0x5A ranges; layout-specific
// punctuation uses the OEM codes.
type Code int

// Virtual key codes recognized by the engine.
const (
	CodeNone      Code = 0x00
	CodeBackspace Code = 0x08
	CodeTab       Code = 0x09
	CodeEnter     Code = 0x0D
	CodeShift     Code = 0x10
	CodeCtrl      Code = 0x11
	CodeAlt       Code = 0x12
	CodePause     Code = 0x13
	CodeCapsLock  Code = 0x14
	CodeEscape    Code = 0x1B
	CodeSpace     Code = 0x20
	CodePageUp    Code = 0x21
	CodePageDown  Code = 0x22
	CodeEnd       Code = 0x23
	CodeHome      Code = 0x24
	CodeLeft      Code = 0x25
	CodeUp        Code = 0x26
	CodeRight     Code = 0x27
	CodeDown      Code = 0x28
	CodePrintScrn Code = 0x2C
	CodeInsert    Code = 0x2D
	CodeDelete    Code = 0x2E

	Code0 Code = 0x30
	Code9 Code = 0x39
	CodeA Code = 0x41
	CodeZ Code = 0x5A

	CodeLWin Code = 0x5B
	CodeRWin Code = 0x5C

	CodeNum0        Code = 0x60
	CodeNum9        Code = 0x69
	CodeNumMultiply Code = 0x6A
	CodeNumAdd      Code = 0x6B
	CodeNumSubtract Code = 0x6D
	CodeNumDecimal  Code = 0x6E
	CodeNumDivide   Code = 0x6F

	CodeF1  Code = 0x70
	CodeF12 Code = 0x7B
	CodeF24 Code = 0x87

	CodeNumLock    Code = 0x90
	CodeScrollLock Code = 0x91

	CodeLShift Code = 0xA0
	CodeRShift Code = 0xA1
	CodeLCtrl  Code = 0xA2
	CodeRCtrl  Code = 0xA3
	CodeLAlt   Code = 0xA4
	CodeRAlt   Code = 0xA5

	// OEM punctuation keys (US layout legends in comments).
	CodeOEMSemicolon Code = 0xBA // ;:
	CodeOEMPlus      Code = 0xBB // =+
	CodeOEMComma     Code = 0xBC // ,<
	CodeOEMMinus     Code = 0xBD // -_
	CodeOEMPeriod    Code = 0xBE // .>
	CodeOEMSlash     Code = 0xBF // /?
	CodeOEMBacktick  Code = 0xC0 // `~
	CodeOEMOpenBrkt  Code = 0xDB // [{
	CodeOEMBackslash Code = 0xDC // \|
	CodeOEMCloseBrkt Code = 0xDD // ]}
	CodeOEMQuote     Code = 0xDE // '"
)

// IsModifier returns true if the code is a modifier key
// (Shift, Ctrl, Alt, Win, or a left/right variant).
func (c Code) IsModifier() bool {
	switch c {
	case CodeShift, CodeCtrl, CodeAlt,
		CodeLShift, CodeRShift, CodeLCtrl, CodeRCtrl, CodeLAlt, CodeRAlt,
		CodeLWin, CodeRWin:
		return true
	}
	return false
}

// IsFunctionKey returns true for F1-F24.
func (c Code) IsFunctionKey() bool {
	return c >= CodeF1 && c <= CodeF24
}

// IsArrowKey returns true for the four arrow keys.
func (c Code) IsArrowKey() bool {
	return c >= CodeLeft && c <= CodeDown
}

// IsNavigationKey returns true for keys that move the caret or viewport
// without producing text: arrows, Home/End, PageUp/PageDown, Insert, Delete.
func (c Code) IsNavigationKey() bool {
	if c.IsArrowKey() {
		return true
	}
	switch c {
	case CodeHome, CodeEnd, CodePageUp, CodePageDown, CodeInsert, CodeDelete:
		return true
	}
	return false
}

// IsLetter returns true for A-Z.
func (c Code) IsLetter() bool {
	return c >= CodeA && c <= CodeZ
}

// IsDigit returns true for the top-row digit keys 0-9.
func (c Code) IsDigit() bool {
	return c >= Code0 && c <= Code9
}

// IsNumpadDigit returns true for the keypad digit keys.
func (c Code) IsNumpadDigit() bool {
	return c >= CodeNum0 && c <= CodeNum9
}

// codeNames maps special key codes to display names.
var codeNames = map[Code]string{
	CodeNone:         "None",
	CodeBackspace:    "Backspace",
	CodeTab:          "Tab",
	CodeEnter:        "Enter",
	CodeShift:        "Shift",
	CodeCtrl:         "Ctrl",
	CodeAlt:          "Alt",
	CodePause:        "Pause",
	CodeCapsLock:     "CapsLock",
	CodeEscape:       "Escape",
	CodeSpace:        "Space",
	CodePageUp:       "PageUp",
	CodePageDown:     "PageDown",
	CodeEnd:          "End",
	CodeHome:         "Home",
	CodeLeft:         "Left",
	CodeUp:           "Up",
	CodeRight:        "Right",
	CodeDown:         "Down",
	CodePrintScrn:    "PrintScreen",
	CodeInsert:       "Insert",
	CodeDelete:       "Delete",
	CodeLWin:         "Win",
	CodeRWin:         "Win",
	CodeNumLock:      "NumLock",
	CodeScrollLock:   "ScrollLock",
	CodeLShift:       "Shift",
	CodeRShift:       "Shift",
	CodeLCtrl:        "Ctrl",
	CodeRCtrl:        "Ctrl",
	CodeLAlt:         "Alt",
	CodeRAlt:         "Alt",
	CodeOEMSemicolon: "Semicolon",
	CodeOEMPlus:      "Equals",
	CodeOEMComma:     "Comma",
	CodeOEMMinus:     "Minus",
	CodeOEMPeriod:    "Period",
	CodeOEMSlash:     "Slash",
	CodeOEMBacktick:  "Backtick",
	CodeOEMOpenBrkt:  "OpenBracket",
	CodeOEMBackslash: "Backslash",
	CodeOEMCloseBrkt: "CloseBracket",
	CodeOEMQuote:     "Quote",
}

// String returns a human-readable name for the key code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if c.IsLetter() || c.IsDigit() {
		return string(rune(c))
	}
	if c.IsNumpadDigit() {
		return "Num" + string(rune('0'+c-CodeNum0))
	}
	if c.IsFunctionKey() {
		return fmt.Sprintf("F%d", int(c-CodeF1)+1)
	}
	return fmt.Sprintf("VK(0x%02X)", int(c))
}

// codeNameMap maps lowercase key names back to codes. Left/right modifier
// variants resolve to the generic code.
var codeNameMap = map[string]Code{
	"backspace":   CodeBackspace,
	"bs":          CodeBackspace,
	"tab":         CodeTab,
	"enter":       CodeEnter,
	"return":      CodeEnter,
	"shift":       CodeShift,
	"ctrl":        CodeCtrl,
	"control":     CodeCtrl,
	"alt":         CodeAlt,
	"escape":      CodeEscape,
	"esc":         CodeEscape,
	"space":       CodeSpace,
	"pageup":      CodePageUp,
	"pgup":        CodePageUp,
	"pagedown":    CodePageDown,
	"pgdn":        CodePageDown,
	"end":         CodeEnd,
	"home":        CodeHome,
	"left":        CodeLeft,
	"up":          CodeUp,
	"right":       CodeRight,
	"down":        CodeDown,
	"insert":      CodeInsert,
	"ins":         CodeInsert,
	"delete":      CodeDelete,
	"del":         CodeDelete,
	"win":         CodeLWin,
	"backtick":    CodeOEMBacktick,
	"capslock":    CodeCapsLock,
	"numlock":     CodeNumLock,
	"scrolllock":  CodeScrollLock,
	"pause":       CodePause,
	"printscreen": CodePrintScrn,
}

// FromName returns the Code for a key name (case-insensitive).
// Single letters, digits, and "f1".."f24" are recognized.
// Returns CodeNone if the name is not recognized.
func FromName(name string) Code {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := codeNameMap[name]; ok {
		return c
	}
	if len(name) == 1 {
		r := rune(name[0])
		switch {
		case r >= 'a' && r <= 'z':
			return Code(r - 'a' + rune(CodeA))
		case r >= '0' && r <= '9':
			return Code(r - '0' + rune(Code0))
		}
	}
	if strings.HasPrefix(name, "f") {
		var n int
		if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 24 {
			return CodeF1 + Code(n-1)
		}
	}
	return CodeNone
}
