//go:build windows

package winkey

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/macroweave/macroweave/internal/input/key"
)

// InjectedExtraInfo tags simulated keystrokes so the hook side can set
// the Injected flag on events the engine generated itself.
const InjectedExtraInfo uintptr = 0x4D575645

const (
	inputKeyboard   = 1
	keyeventfKeyup  = 0x0002
	mapvkVkToVsc    = 0
	wmPasteDelayMin = 10 * time.Millisecond
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procSendInput      = user32.NewProc("SendInput")
	procMapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type winInput struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // pad to the C INPUT union size
}

// Injector replays expansions as simulated keystrokes plus a clipboard
// paste chord.
type Injector struct {
	clipboard *Clipboard
}

// NewInjector creates an injector using the given clipboard for pastes.
func NewInjector(clipboard *Clipboard) *Injector {
	return &Injector{clipboard: clipboard}
}

func keystroke(vk key.Code, up bool) winInput {
	scan, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc)
	flags := uint32(0)
	if up {
		flags = keyeventfKeyup
	}
	return winInput{
		inputType: inputKeyboard,
		ki: keyboardInput{
			wVk:         uint16(vk),
			wScan:       uint16(scan),
			dwFlags:     flags,
			dwExtraInfo: InjectedExtraInfo,
		},
	}
}

func send(inputs []winInput) error {
	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(n) != len(inputs) {
		return fmt.Errorf("SendInput sent %d of %d: %v", n, len(inputs), err)
	}
	return nil
}

// tap presses and releases one key, n times, with a delay between taps.
func tap(vk key.Code, n int, delay time.Duration) error {
	for i := 0; i < n; i++ {
		if err := send([]winInput{keystroke(vk, false), keystroke(vk, true)}); err != nil {
			return err
		}
		if delay > 0 && i < n-1 {
			time.Sleep(delay)
		}
	}
	return nil
}

// SendBackspaces emits n backspace keystrokes.
func (inj *Injector) SendBackspaces(n int, delay time.Duration) error {
	return tap(key.CodeBackspace, n, delay)
}

// MoveCursorLeft emits n left-arrow keystrokes.
func (inj *Injector) MoveCursorLeft(n int, delay time.Duration) error {
	return tap(key.CodeLeft, n, delay)
}

// PasteText places text on the clipboard and sends the Ctrl+V chord,
// pausing postDelay afterwards so the target can consume the paste
// before any further keystrokes arrive.
func (inj *Injector) PasteText(text string, postDelay time.Duration) error {
	if err := inj.clipboard.WriteText(text); err != nil {
		return err
	}

	chord := []winInput{
		keystroke(key.CodeCtrl, false),
		{inputType: inputKeyboard, ki: keyboardInput{wVk: 'V', dwExtraInfo: InjectedExtraInfo}},
		{inputType: inputKeyboard, ki: keyboardInput{wVk: 'V', dwFlags: keyeventfKeyup, dwExtraInfo: InjectedExtraInfo}},
		keystroke(key.CodeCtrl, true),
	}
	if err := send(chord); err != nil {
		return err
	}

	if postDelay < wmPasteDelayMin {
		postDelay = wmPasteDelayMin
	}
	time.Sleep(postDelay)
	return nil
}
