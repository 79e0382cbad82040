// Package winkey implements the platform interfaces on Windows:
// SendInput-based replay injection, foreground-window context tokens,
// and clipboard access. Everything here is a thin user32/kernel32
// binding; the engine never imports this package directly.
package winkey
