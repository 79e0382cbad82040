//go:build windows

package winkey

import (
	"fmt"
	"unsafe"
)

var (
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

// ForegroundContext reports the focused window as an opaque token.
// Window handle plus owning process id: a recycled handle in another
// process still yields a fresh token.
type ForegroundContext struct{}

// NewForegroundContext creates a foreground-window context provider.
func NewForegroundContext() *ForegroundContext {
	return &ForegroundContext{}
}

// ForegroundContext implements platform.ContextProvider.
func (f *ForegroundContext) ForegroundContext() string {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ""
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return fmt.Sprintf("hwnd:%x:pid:%d", hwnd, pid)
}
