package expand

import "testing"

func appendAll(b *Buffer, s string) {
	for _, r := range s {
		b.Append(r)
	}
}

func TestNewRuleSetFiltersDisabled(t *testing.T) {
	s := NewRuleSet([]Rule{
		{Trigger: "on", Template: "x", Enabled: true},
		{Trigger: "off", Template: "y", Enabled: false},
		{Trigger: "", Template: "z", Enabled: true},
	})

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if s.Rules()[0].Trigger != "on" {
		t.Errorf("kept rule = %q, want %q", s.Rules()[0].Trigger, "on")
	}
}

func TestRuleSetMaxTriggerLen(t *testing.T) {
	s := NewRuleSet([]Rule{
		{Trigger: "ab", Enabled: true},
		{Trigger: "abcde", Enabled: true},
		{Trigger: "toolongbutdisabled", Enabled: false},
	})
	if got := s.MaxTriggerLen(); got != 5 {
		t.Errorf("MaxTriggerLen = %d, want 5", got)
	}
}

func TestFindMatchImmediate(t *testing.T) {
	s := NewRuleSet([]Rule{
		{Trigger: "brb", Template: "be right back", Mode: ModeImmediate, Enabled: true},
	})

	b := NewBuffer(32, nil)
	appendAll(b, "hey brb")

	rule, ok := s.FindMatch(b, ModeImmediate)
	if !ok {
		t.Fatal("expected immediate match")
	}
	if rule.Trigger != "brb" {
		t.Errorf("matched %q, want %q", rule.Trigger, "brb")
	}

	if _, ok := s.FindMatch(b, ModeOnDelimiter); ok {
		t.Error("delimiter-mode scan must not match an immediate rule")
	}
}

func TestFindMatchOnDelimiter(t *testing.T) {
	s := NewRuleSet([]Rule{
		{Trigger: "btw", Template: "by the way", Mode: ModeOnDelimiter, Enabled: true},
	})

	b := NewBuffer(32, nil)
	appendAll(b, "btw")
	if _, ok := s.FindMatch(b, ModeOnDelimiter); ok {
		t.Error("should not match before the delimiter arrives")
	}

	b.Append(' ')
	if _, ok := s.FindMatch(b, ModeOnDelimiter); !ok {
		t.Error("should match with trailing delimiter")
	}
}

func TestFindMatchDeclarationOrderTieBreak(t *testing.T) {
	// Both triggers are suffixes of the buffer; the earlier-declared rule
	// must win even though the other is longer.
	s := NewRuleSet([]Rule{
		{Trigger: "a", Template: "first", Mode: ModeOnDelimiter, Enabled: true},
		{Trigger: "ba", Template: "second", Mode: ModeOnDelimiter, Enabled: true},
	})

	b := NewBuffer(32, nil)
	appendAll(b, "ba ")

	rule, ok := s.FindMatch(b, ModeOnDelimiter)
	if !ok {
		t.Fatal("expected a match")
	}
	if rule.Trigger != "a" {
		t.Errorf("tie-break matched %q, want declaration-order winner %q", rule.Trigger, "a")
	}
}

func TestFindMatchCaseSensitivity(t *testing.T) {
	s := NewRuleSet([]Rule{
		{Trigger: "Sig", Mode: ModeImmediate, CaseSensitive: true, Enabled: true},
	})

	b := NewBuffer(32, nil)
	appendAll(b, "sig")
	if _, ok := s.FindMatch(b, ModeImmediate); ok {
		t.Error("case-sensitive rule must not match differing case")
	}

	b.Clear()
	appendAll(b, "Sig")
	if _, ok := s.FindMatch(b, ModeImmediate); !ok {
		t.Error("case-sensitive rule should match exact case")
	}
}

func TestModeFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"immediate", ModeImmediate, false},
		{"on_delimiter", ModeOnDelimiter, false},
		{"delimiter", ModeOnDelimiter, false},
		{"IMMEDIATE", ModeImmediate, false},
		{"sometimes", ModeImmediate, true},
	}

	for _, tt := range tests {
		got, err := ModeFromString(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ModeFromString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ModeFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
