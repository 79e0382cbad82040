package expand

import (
	"fmt"
	"strings"
)

// Mode selects when a trigger fires.
type Mode int

const (
	// ModeImmediate fires the moment the trigger's last character is typed.
	ModeImmediate Mode = iota

	// ModeOnDelimiter fires when the trigger is followed by a delimiter
	// character.
	ModeOnDelimiter
)

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	switch m {
	case ModeImmediate:
		return "immediate"
	case ModeOnDelimiter:
		return "on_delimiter"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFromString parses a configuration mode name.
func ModeFromString(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "immediate":
		return ModeImmediate, nil
	case "on_delimiter", "delimiter":
		return ModeOnDelimiter, nil
	default:
		return ModeImmediate, fmt.Errorf("unknown trigger mode %q", s)
	}
}

// Rule is one trigger-to-template mapping. Rules are immutable once
// loaded; reloading replaces the whole rule set.
type Rule struct {
	// Trigger is the text whose typing activates the rule. Never empty.
	Trigger string

	// Template is the expansion text, possibly containing $NAME$
	// placeholders and the $CURSOR$ marker.
	Template string

	// Mode selects immediate or delimiter-gated firing.
	Mode Mode

	// CaseSensitive controls trigger comparison.
	CaseSensitive bool

	// Enabled rules participate in matching; disabled rules are dropped
	// when the set is built.
	Enabled bool
}

// RuleSet is an immutable, order-preserving collection of enabled rules.
// Build a new set and swap it into the engine to reload.
type RuleSet struct {
	rules  []Rule
	maxLen int
}

// NewRuleSet builds a set from the enabled subset of rules, preserving
// declaration order. Rules with empty triggers are dropped.
func NewRuleSet(rules []Rule) *RuleSet {
	s := &RuleSet{}
	for _, r := range rules {
		if !r.Enabled || r.Trigger == "" {
			continue
		}
		s.rules = append(s.rules, r)
		if n := len([]rune(r.Trigger)); n > s.maxLen {
			s.maxLen = n
		}
	}
	return s
}

// Len returns the number of active rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns the active rules in declaration order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// MaxTriggerLen returns the longest active trigger length in runes.
// A buffer-sizing heuristic, not a matching constraint.
func (s *RuleSet) MaxTriggerLen() int {
	return s.maxLen
}

// FindMatch scans rules in declaration order and returns the first rule
// of the given mode whose trigger matches the buffer suffix. Declaration
// order is the tie-break when several triggers are suffixes of each
// other.
func (s *RuleSet) FindMatch(buf *Buffer, mode Mode) (Rule, bool) {
	for _, r := range s.rules {
		if r.Mode != mode {
			continue
		}
		var ok bool
		switch mode {
		case ModeImmediate:
			ok = buf.EndsWithTrigger(r.Trigger, r.CaseSensitive)
		case ModeOnDelimiter:
			ok = buf.EndsWithTriggerBeforeLastChar(r.Trigger, r.CaseSensitive)
		}
		if ok {
			return r, true
		}
	}
	return Rule{}, false
}
