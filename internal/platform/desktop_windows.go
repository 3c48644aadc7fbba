//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/edgeshelf/edgeshelf/internal/models"
)

// maxClassChain bounds the walk from the window under the cursor up through
// its parents.
const maxClassChain = 10

// PrimaryButtonDown reports whether the primary mouse button is held,
// honouring swapped buttons.
func (d *Desktop) PrimaryButtonDown() (bool, error) {
	vk := uintptr(vkLButton)
	if swapped, _, _ := procGetSystemMetrics.Call(smSwapButton); swapped != 0 {
		vk = vkRButton
	}
	state, _, _ := procGetAsyncKeyState.Call(vk)
	return state&0x8000 != 0, nil
}

// CursorPos returns the cursor position in virtual screen coordinates.
func (d *Desktop) CursorPos() (models.Point, error) {
	var pt point
	if ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); ret == 0 {
		return models.Point{}, fmt.Errorf("GetCursorPos: %w", err)
	}
	return models.Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

// WindowClassesAt returns the class names of the window under pt and its
// parents, innermost first, plus the class of its top-level ancestor.
func (d *Desktop) WindowClassesAt(pt models.Point) ([]string, string, error) {
	hwnd, _, _ := procWindowFromPoint.Call(pointArgs(point{X: int32(pt.X), Y: int32(pt.Y)})...)
	if hwnd == 0 {
		return nil, "", ErrNotFound
	}

	chain := make([]string, 0, maxClassChain)
	for h := hwnd; h != 0 && len(chain) < maxClassChain; {
		chain = append(chain, className(h))
		h, _, _ = procGetParent.Call(h)
	}

	var root string
	if r, _, _ := procGetAncestor.Call(hwnd, gaRoot); r != 0 {
		root = className(r)
	}
	return chain, root, nil
}

func className(hwnd uintptr) string {
	var buf [maxClassName]uint16
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), maxClassName)
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// MonitorWorkArea returns the work area of the monitor containing pt. A point
// outside every monitor yields ErrNotFound.
func (d *Desktop) MonitorWorkArea(pt models.Point) (models.Rect, error) {
	args := append(pointArgs(point{X: int32(pt.X), Y: int32(pt.Y)}), monitorDefaultToNull)
	mon, _, _ := procMonitorFromPoint.Call(args...)
	if mon == 0 {
		return models.Rect{}, ErrNotFound
	}
	return workArea(mon)
}

// PrimaryWorkArea returns the work area of the primary monitor.
func (d *Desktop) PrimaryWorkArea() (models.Rect, error) {
	args := append(pointArgs(point{}), monitorDefaultToPrimary)
	mon, _, _ := procMonitorFromPoint.Call(args...)
	if mon == 0 {
		return models.Rect{}, ErrNotFound
	}
	return workArea(mon)
}

func workArea(mon uintptr) (models.Rect, error) {
	info := monitorInfo{CbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
	if ret, _, err := procGetMonitorInfoW.Call(mon, uintptr(unsafe.Pointer(&info))); ret == 0 {
		return models.Rect{}, fmt.Errorf("GetMonitorInfo: %w", err)
	}
	w := info.RcWork
	return models.Rect{
		X:      int(w.Left),
		Y:      int(w.Top),
		Width:  int(w.Right - w.Left),
		Height: int(w.Bottom - w.Top),
	}, nil
}
