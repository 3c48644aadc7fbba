//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/edgeshelf/edgeshelf/internal/models"
)

const (
	gwlExStyle = ^uintptr(19) // -20

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000
	wsExTopmost    = 0x00000008

	hwndTopmost = ^uintptr(0) // -1

	swpNoActivate     = 0x0010
	swpAsyncWindowPos = 0x4000

	swHide           = 0
	swShowNoActivate = 4
	swShow           = 5
)

// Window controls a top-level window by handle.
type Window struct {
	hwnd uintptr
}

// FindWindow looks up a top-level window by its title.
func FindWindow(title string) (*Window, error) {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return nil, err
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(t)))
	if hwnd == 0 {
		return nil, fmt.Errorf("window %q: %w", title, ErrNotFound)
	}
	return &Window{hwnd: hwnd}, nil
}

// Handle returns the native window handle.
func (w *Window) Handle() uintptr { return w.hwnd }

// MakeToolWindow keeps the window out of the taskbar and Alt+Tab and pins it
// above normal windows.
func (w *Window) MakeToolWindow() {
	get, set := procGetWindowLongPtrW, procSetWindowLongPtrW
	if get.Find() != nil {
		// 32-bit user32 only exports the non-Ptr variants.
		get, set = procGetWindowLongW, procSetWindowLongW
	}
	style, _, _ := get.Call(w.hwnd, gwlExStyle)
	style = (style | wsExToolWindow | wsExTopmost) &^ wsExAppWindow
	set.Call(w.hwnd, gwlExStyle, style) //nolint:errcheck
}

// Placement and visibility changes are posted to the UI thread that owns
// the window and return without waiting for it.

// SetBounds moves and resizes the window without activating it.
func (w *Window) SetBounds(r models.Rect) {
	procSetWindowPos.Call( //nolint:errcheck
		w.hwnd, hwndTopmost,
		uintptr(int32(r.X)), uintptr(int32(r.Y)),
		uintptr(int32(r.Width)), uintptr(int32(r.Height)),
		swpNoActivate|swpAsyncWindowPos,
	)
}

// Show makes the window visible. Without activate the current foreground
// window keeps focus, which an in-progress drag needs.
func (w *Window) Show(activate bool) {
	if !activate {
		procShowWindowAsync.Call(w.hwnd, swShowNoActivate) //nolint:errcheck
		return
	}
	procShowWindowAsync.Call(w.hwnd, swShow) //nolint:errcheck
	procSetForegroundWindow.Call(w.hwnd)     //nolint:errcheck
}

// Hide hides the window.
func (w *Window) Hide() {
	procShowWindowAsync.Call(w.hwnd, swHide) //nolint:errcheck
}
