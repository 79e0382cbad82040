package expand

import (
	"errors"
	"strings"
	"testing"

	"github.com/macroweave/macroweave/internal/platform/platformtest"
)

func staticProvider(s string) Provider {
	return func() (string, error) { return s, nil }
}

func TestProcessRoundTrip(t *testing.T) {
	g := NewRegistry()
	g.Register("USER", staticProvider("Bob"))

	got := g.Process("$USER$ says hi")
	if got.Text != "Bob says hi" {
		t.Errorf("Text = %q, want %q", got.Text, "Bob says hi")
	}
	if got.HasCursor || got.CursorOffsetFromEnd != 0 {
		t.Errorf("unexpected cursor result: %+v", got)
	}
}

func TestProcessCursorOffset(t *testing.T) {
	g := NewRegistry()

	got := g.Process("Hello$CURSOR$!")
	if got.Text != "Hello!" {
		t.Errorf("Text = %q, want %q", got.Text, "Hello!")
	}
	if !got.HasCursor {
		t.Error("HasCursor should be true")
	}
	if got.CursorOffsetFromEnd != 1 {
		t.Errorf("CursorOffsetFromEnd = %d, want 1", got.CursorOffsetFromEnd)
	}
}

func TestProcessCursorWithPlaceholdersBothSides(t *testing.T) {
	g := NewRegistry()
	g.Register("A", staticProvider("aa"))
	g.Register("B", staticProvider("bbb"))

	got := g.Process("$A$>$CURSOR$<$B$")
	if got.Text != "aa><bbb" {
		t.Errorf("Text = %q, want %q", got.Text, "aa><bbb")
	}
	if got.CursorOffsetFromEnd != 4 {
		t.Errorf("CursorOffsetFromEnd = %d, want resolved length of %q = 4",
			got.CursorOffsetFromEnd, "<bbb")
	}
}

func TestProcessOnlyFirstCursorMarkerConsumed(t *testing.T) {
	g := NewRegistry()

	got := g.Process("a$CURSOR$b$CURSOR$c")
	if got.Text != "ab$CURSOR$c" {
		t.Errorf("Text = %q, want second marker left verbatim", got.Text)
	}
	if got.CursorOffsetFromEnd != len("b$CURSOR$c") {
		t.Errorf("CursorOffsetFromEnd = %d, want %d", got.CursorOffsetFromEnd, len("b$CURSOR$c"))
	}
}

func TestProcessUnknownPlaceholderPassthrough(t *testing.T) {
	g := NewRegistry()
	got := g.Process("$NOPE$")
	if got.Text != "$NOPE$" {
		t.Errorf("Text = %q, want verbatim %q", got.Text, "$NOPE$")
	}
}

func TestProcessFailingProviderLeavesToken(t *testing.T) {
	g := NewRegistry()
	g.Register("BAD", func() (string, error) {
		return "", errors.New("boom")
	})
	g.Register("PANICS", func() (string, error) {
		panic("provider bug")
	})

	got := g.Process("x $BAD$ y $PANICS$ z")
	if got.Text != "x $BAD$ y $PANICS$ z" {
		t.Errorf("Text = %q, failing providers must leave tokens verbatim", got.Text)
	}
}

func TestProcessNoRecursiveExpansion(t *testing.T) {
	g := NewRegistry()
	g.Register("OUTER", staticProvider("$INNER$"))
	g.Register("INNER", staticProvider("nope"))

	got := g.Process("$OUTER$")
	if got.Text != "$INNER$" {
		t.Errorf("Text = %q, provider output must not be re-expanded", got.Text)
	}
}

func TestProcessLiteralDollars(t *testing.T) {
	g := NewRegistry()
	g.Register("X", staticProvider("v"))

	tests := []struct {
		in   string
		want string
	}{
		{"$5 and $10", "$5 and $10"},
		{"$$", "$$"},
		{"cost: $X$", "cost: v"},
		{"$not a token$X$", "$not a tokenv"},
		{"trailing $", "trailing $"},
	}

	for _, tt := range tests {
		if got := g.Process(tt.in); got.Text != tt.want {
			t.Errorf("Process(%q).Text = %q, want %q", tt.in, got.Text, tt.want)
		}
	}
}

func TestProcessProviderCalledPerOccurrence(t *testing.T) {
	g := NewRegistry()
	calls := 0
	g.Register("N", func() (string, error) {
		calls++
		return "n", nil
	})

	g.Process("$N$$N$")
	if calls != 2 {
		t.Errorf("provider called %d times, want once per occurrence (2)", calls)
	}
}

func TestRegistryRegisterRules(t *testing.T) {
	g := NewRegistry()

	if g.Register("", staticProvider("x")) {
		t.Error("empty name must be rejected")
	}
	if g.Register("CURSOR", staticProvider("x")) {
		t.Error("reserved cursor name must be rejected")
	}
	if !g.Register("DATE", staticProvider("x")) {
		t.Error("first registration should succeed")
	}
	if g.Register("DATE", staticProvider("y")) {
		t.Error("duplicate registration must be rejected")
	}
}

func TestBuiltinProviders(t *testing.T) {
	clip := &platformtest.Clipboard{Text: "from clipboard"}
	g := NewRegistry()
	RegisterBuiltins(g, clip)

	got := g.Process("$CLIPBOARD$")
	if got.Text != "from clipboard" {
		t.Errorf("$CLIPBOARD$ = %q, want %q", got.Text, "from clipboard")
	}

	date := g.Process("$DATE$")
	if len(date.Text) != len("2006-01-02") || strings.Contains(date.Text, "$") {
		t.Errorf("$DATE$ = %q, want a yyyy-mm-dd date", date.Text)
	}

	// Nil clipboard degrades to verbatim.
	g2 := NewRegistry()
	RegisterBuiltins(g2, nil)
	if got := g2.Process("$CLIPBOARD$"); got.Text != "$CLIPBOARD$" {
		t.Errorf("nil clipboard should leave token verbatim, got %q", got.Text)
	}
}
