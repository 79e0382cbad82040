package key

// oemRunes maps the OEM punctuation keys to their unshifted and shifted
// characters on a US layout.
var oemRunes = map[Code][2]rune{
	CodeOEMSemicolon: {';', ':'},
	CodeOEMPlus:      {'=', '+'},
	CodeOEMComma:     {',', '<'},
	CodeOEMMinus:     {'-', '_'},
	CodeOEMPeriod:    {'.', '>'},
	CodeOEMSlash:     {'/', '?'},
	CodeOEMBacktick:  {'`', '~'},
	CodeOEMOpenBrkt:  {'[', '{'},
	CodeOEMBackslash: {'\\', '|'},
	CodeOEMCloseBrkt: {']', '}'},
	CodeOEMQuote:     {'\'', '"'},
}

// digitShiftRunes maps top-row digits to their shifted symbols.
var digitShiftRunes = [10]rune{')', '!', '@', '#', '$', '%', '^', '&', '*', '('}

// Translate maps a virtual key code to the literal character it types
// under the given shift and caps-lock state. Returns false for keys with
// no character mapping (modifiers, navigation, function keys).
//
// Caps lock affects letters only; shift affects digits and punctuation.
// A letter typed with shift and caps lock both active is lowercase.
func Translate(c Code, shift, capsLock bool) (rune, bool) {
	switch {
	case c.IsLetter():
		upper := shift != capsLock
		if upper {
			return rune(c), true
		}
		return rune(c) + ('a' - 'A'), true

	case c.IsDigit():
		if shift {
			return digitShiftRunes[c-Code0], true
		}
		return rune(c), true

	case c.IsNumpadDigit():
		return rune('0' + c - CodeNum0), true
	}

	if pair, ok := oemRunes[c]; ok {
		if shift {
			return pair[1], true
		}
		return pair[0], true
	}

	switch c {
	case CodeSpace:
		return ' ', true
	case CodeEnter:
		return '\n', true
	case CodeTab:
		return '\t', true
	case CodeNumMultiply:
		return '*', true
	case CodeNumAdd:
		return '+', true
	case CodeNumSubtract:
		return '-', true
	case CodeNumDecimal:
		return '.', true
	case CodeNumDivide:
		return '/', true
	}

	return 0, false
}

// CodeForRune returns the virtual key code and shift requirement that
// produce the given character on a US layout. Used by input injectors and
// the interactive harness to map typed characters back to key events.
func CodeForRune(r rune) (Code, bool, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return Code(r-'a') + CodeA, false, true
	case r >= 'A' && r <= 'Z':
		return Code(r-'A') + CodeA, true, true
	case r >= '0' && r <= '9':
		return Code(r-'0') + Code0, false, true
	}

	for i, sym := range digitShiftRunes {
		if r == sym {
			return Code0 + Code(i), true, true
		}
	}

	for code, pair := range oemRunes {
		if r == pair[0] {
			return code, false, true
		}
		if r == pair[1] {
			return code, true, true
		}
	}

	switch r {
	case ' ':
		return CodeSpace, false, true
	case '\n':
		return CodeEnter, false, true
	case '\t':
		return CodeTab, false, true
	}

	return CodeNone, false, false
}
