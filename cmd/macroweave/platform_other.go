//go:build !windows

package main

import "github.com/macroweave/macroweave/internal/platform"

// newClipboard returns nil on platforms without clipboard support; the
// $CLIPBOARD$ placeholder then resolves to an error at expansion time.
func newClipboard() platform.Clipboard {
	return nil
}
