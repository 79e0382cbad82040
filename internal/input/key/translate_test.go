package key

import "testing"

func TestTranslateLetters(t *testing.T) {
	tests := []struct {
		code  Code
		shift bool
		caps  bool
		want  rune
	}{
		{CodeA, false, false, 'a'},
		{CodeA, true, false, 'A'},
		{CodeA, false, true, 'A'},
		// Shift with caps lock active types lowercase.
		{CodeA, true, true, 'a'},
		{CodeZ, false, false, 'z'},
		{CodeZ, true, false, 'Z'},
	}

	for _, tt := range tests {
		got, ok := Translate(tt.code, tt.shift, tt.caps)
		if !ok {
			t.Fatalf("Translate(%s, %v, %v) not mapped", tt.code, tt.shift, tt.caps)
		}
		if got != tt.want {
			t.Errorf("Translate(%s, shift=%v, caps=%v) = %q, want %q",
				tt.code, tt.shift, tt.caps, got, tt.want)
		}
	}
}

func TestTranslateDigitsAndPunctuation(t *testing.T) {
	tests := []struct {
		code  Code
		shift bool
		want  rune
	}{
		{Code0, false, '0'},
		{Code0, true, ')'},
		{Code0 + 2, true, '@'},
		{Code9, true, '('},
		{CodeOEMSemicolon, false, ';'},
		{CodeOEMSemicolon, true, ':'},
		{CodeOEMBacktick, false, '`'},
		{CodeOEMBacktick, true, '~'},
		{CodeOEMQuote, true, '"'},
		{CodeSpace, false, ' '},
		{CodeEnter, false, '\n'},
		{CodeTab, false, '\t'},
		{CodeNumAdd, false, '+'},
		{CodeNum0 + 5, false, '5'},
	}

	for _, tt := range tests {
		got, ok := Translate(tt.code, tt.shift, false)
		if !ok {
			t.Fatalf("Translate(%s, %v) not mapped", tt.code, tt.shift)
		}
		if got != tt.want {
			t.Errorf("Translate(%s, shift=%v) = %q, want %q", tt.code, tt.shift, got, tt.want)
		}
	}

	// Caps lock must not affect digits.
	if got, _ := Translate(Code0+5, false, true); got != '5' {
		t.Errorf("Translate(5, caps) = %q, want '5'", got)
	}
}

func TestTranslateUnmapped(t *testing.T) {
	for _, code := range []Code{CodeEscape, CodeF1, CodeLeft, CodeShift, CodeHome} {
		if _, ok := Translate(code, false, false); ok {
			t.Errorf("Translate(%s) should have no character mapping", code)
		}
	}
}

func TestCodeForRuneRoundTrip(t *testing.T) {
	for _, r := range "abcXYZ019 ;:!@#`~[]{}'\"\\|,.<>/?=+-_\n\t" {
		code, shift, ok := CodeForRune(r)
		if !ok {
			t.Fatalf("CodeForRune(%q) not mapped", r)
		}
		got, ok := Translate(code, shift, false)
		if !ok || got != r {
			t.Errorf("round trip %q: Translate(%s, shift=%v) = %q", r, code, shift, got)
		}
	}

	if _, _, ok := CodeForRune('é'); ok {
		t.Error("CodeForRune('é') should not map on a US layout")
	}
}
