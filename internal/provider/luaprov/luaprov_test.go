package luaprov

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/macroweave/macroweave/internal/expand"
)

func TestHostRegisterAndCall(t *testing.T) {
	h := NewHost()
	defer h.Close()

	err := h.LoadString(`
		register("GREET", function() return "hello" end)
		register("SHOUT", function() return string.upper("hey") end)
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	got, err := h.Call("GREET")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "hello" {
		t.Errorf("GREET = %q, want %q", got, "hello")
	}

	if got, _ := h.Call("SHOUT"); got != "HEY" {
		t.Errorf("SHOUT = %q, want %q", got, "HEY")
	}

	names := h.Names()
	if len(names) != 2 || names[0] != "GREET" || names[1] != "SHOUT" {
		t.Errorf("Names = %v", names)
	}
}

func TestHostCallUnknown(t *testing.T) {
	h := NewHost()
	defer h.Close()

	_, err := h.Call("MISSING")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestHostScriptError(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadString(`this is not lua`); err == nil {
		t.Error("malformed script should fail to load")
	}

	if err := h.LoadString(`register("BOOM", function() error("bang") end)`); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Call("BOOM"); err == nil {
		t.Error("erroring provider should return an error")
	}
}

func TestHostNonStringReturn(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadString(`register("NUM", function() return 42 end)`); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Call("NUM"); err == nil {
		t.Error("non-string return should be an error")
	}
}

func TestHostTimeout(t *testing.T) {
	h := NewHost(WithTimeout(50 * time.Millisecond))
	defer h.Close()

	if err := h.LoadString(`register("SPIN", function() while true do end end)`); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, err := h.Call("SPIN")
	if err == nil {
		t.Fatal("infinite loop should be cut off by the timeout")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, want well under 2s", elapsed)
	}
}

func TestInstallIntoRegistry(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadString(`register("TICKET", function() return "PROJ-123" end)`); err != nil {
		t.Fatal(err)
	}

	reg := expand.NewRegistry()
	reg.Register("TAKEN", func() (string, error) { return "x", nil })

	installed := h.Install(reg)
	if len(installed) != 1 || installed[0] != "TICKET" {
		t.Fatalf("installed = %v", installed)
	}

	got := reg.Process("see $TICKET$")
	if got.Text != "see PROJ-123" {
		t.Errorf("Process = %q", got.Text)
	}
}

func TestInstallSkipsShadowedNames(t *testing.T) {
	h := NewHost()
	defer h.Close()

	if err := h.LoadString(`register("DATE", function() return "hijacked" end)`); err != nil {
		t.Fatal(err)
	}

	reg := expand.NewRegistry()
	expand.RegisterBuiltins(reg, nil)

	installed := h.Install(reg)
	if len(installed) != 0 {
		t.Errorf("installed = %v, builtin names must win", installed)
	}
	if got := reg.Process("$DATE$"); strings.Contains(got.Text, "hijacked") {
		t.Error("builtin DATE was shadowed by the script")
	}
}
