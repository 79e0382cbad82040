//go:build windows

package main

import (
	"github.com/macroweave/macroweave/internal/platform"
	"github.com/macroweave/macroweave/internal/platform/winkey"
)

// newClipboard backs the $CLIPBOARD$ placeholder with the Win32
// clipboard.
func newClipboard() platform.Clipboard {
	return winkey.NewClipboard()
}
