package expand

import (
	"errors"
	"os"
	"os/user"
	"strings"
	"sync"
	"time"

	"github.com/macroweave/macroweave/internal/platform"
)

// CursorMarker is the reserved template token marking the desired caret
// position after expansion. It is consumed, never resolved to text.
const CursorMarker = "$CURSOR$"

// Provider produces the replacement text for one placeholder occurrence.
// Providers run at expansion time, so date, time, and clipboard values
// reflect the moment of expansion, not the moment the rule loaded.
type Provider func() (string, error)

// ErrNoClipboard is returned by the clipboard provider when no clipboard
// implementation was supplied.
var ErrNoClipboard = errors.New("no clipboard available")

// Registry maps placeholder names to providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register binds a provider to a placeholder name. Returns false if the
// name is empty, reserved, or already bound; the existing binding is kept.
func (g *Registry) Register(name string, p Provider) bool {
	if name == "" || p == nil || "$"+name+"$" == CursorMarker {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.providers[name]; exists {
		return false
	}
	g.providers[name] = p
	return true
}

// Lookup returns the provider bound to name.
func (g *Registry) Lookup(name string) (Provider, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.providers[name]
	return p, ok
}

// Names returns the registered placeholder names in no particular order.
func (g *Registry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.providers))
	for n := range g.providers {
		names = append(names, n)
	}
	return names
}

// Expansion is the result of resolving a template.
type Expansion struct {
	// Text is the fully resolved expansion.
	Text string

	// CursorOffsetFromEnd is how many characters from the end of Text the
	// caret should land. Zero when no cursor marker was present.
	CursorOffsetFromEnd int

	// HasCursor reports whether the template contained a cursor marker.
	HasCursor bool
}

// Process resolves a template against the registry.
//
// The first cursor marker, if any, splits the template; the halves resolve
// independently and the caret offset is the resolved length of the second
// half. Resolution is single-pass: provider output is never re-scanned
// for placeholders. Unknown names and providers that fail stay verbatim,
// delimiters included.
func (g *Registry) Process(template string) Expansion {
	if idx := strings.Index(template, CursorMarker); idx >= 0 {
		before := g.resolve(template[:idx])
		after := g.resolve(template[idx+len(CursorMarker):])
		return Expansion{
			Text:                before + after,
			CursorOffsetFromEnd: len([]rune(after)),
			HasCursor:           true,
		}
	}
	return Expansion{Text: g.resolve(template)}
}

// resolve substitutes every $NAME$ token in one pass.
func (g *Registry) resolve(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '$' {
			out.WriteByte(s[i])
			i++
			continue
		}

		name, end := scanToken(s, i)
		if end < 0 {
			out.WriteByte(s[i])
			i++
			continue
		}

		if p, ok := g.Lookup(name); ok {
			if text, err := safeCall(p); err == nil {
				out.WriteString(text)
				i = end
				continue
			}
		}

		// Unknown name or failed provider: keep the literal token.
		out.WriteString(s[i:end])
		i = end
	}

	return out.String()
}

// scanToken parses a $NAME$ token starting at s[start]. Returns the name
// and the index just past the closing '$', or end < 0 if no well-formed
// token starts there.
func scanToken(s string, start int) (name string, end int) {
	for j := start + 1; j < len(s); j++ {
		c := s[j]
		if c == '$' {
			if j == start+1 {
				return "", -1
			}
			return s[start+1 : j], j + 1
		}
		if !isTokenChar(c) {
			return "", -1
		}
	}
	return "", -1
}

func isTokenChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

// safeCall invokes a provider, converting a panic into an error so one
// misbehaving provider cannot take down the replay path.
func safeCall(p Provider) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("provider panicked")
		}
	}()
	return p()
}

// RegisterBuiltins adds the default providers: DATE, TIME, DATETIME,
// USER, HOST, and CLIPBOARD. clip may be nil, in which case $CLIPBOARD$
// stays verbatim.
func RegisterBuiltins(g *Registry, clip platform.Clipboard) {
	g.Register("DATE", func() (string, error) {
		return time.Now().Format("2006-01-02"), nil
	})
	g.Register("TIME", func() (string, error) {
		return time.Now().Format("15:04"), nil
	})
	g.Register("DATETIME", func() (string, error) {
		return time.Now().Format("2006-01-02 15:04:05"), nil
	})
	g.Register("USER", func() (string, error) {
		u, err := user.Current()
		if err != nil {
			return "", err
		}
		if u.Username != "" {
			return u.Username, nil
		}
		return u.Name, nil
	})
	g.Register("HOST", func() (string, error) {
		return os.Hostname()
	})
	g.Register("CLIPBOARD", func() (string, error) {
		if clip == nil {
			return "", ErrNoClipboard
		}
		return clip.ReadText()
	})
}
