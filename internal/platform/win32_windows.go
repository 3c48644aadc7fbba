//go:build windows

package platform

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32  = windows.NewLazySystemDLL("user32.dll")
	shell32 = windows.NewLazySystemDLL("shell32.dll")
	ole32   = windows.NewLazySystemDLL("ole32.dll")

	procGetCursorPos        = user32.NewProc("GetCursorPos")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
	procWindowFromPoint     = user32.NewProc("WindowFromPoint")
	procGetClassNameW       = user32.NewProc("GetClassNameW")
	procGetParent           = user32.NewProc("GetParent")
	procGetAncestor         = user32.NewProc("GetAncestor")
	procMonitorFromPoint    = user32.NewProc("MonitorFromPoint")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procShowWindowAsync     = user32.NewProc("ShowWindowAsync")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procGetWindowLongPtrW   = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW   = user32.NewProc("SetWindowLongPtrW")
	procGetWindowLongW      = user32.NewProc("GetWindowLongW")
	procSetWindowLongW      = user32.NewProc("SetWindowLongW")
	procILCreateFromPathW   = shell32.NewProc("ILCreateFromPathW")
	procILFree              = shell32.NewProc("ILFree")
	procSHCreateDataObject  = shell32.NewProc("SHCreateDataObject")
	procSHDoDragDrop        = shell32.NewProc("SHDoDragDrop")
	procOleInitialize       = ole32.NewProc("OleInitialize")
	procOleUninitialize     = ole32.NewProc("OleUninitialize")
)

const (
	vkLButton = 0x01
	vkRButton = 0x02

	smSwapButton = 23

	gaRoot = 2

	monitorDefaultToNull    = 0
	monitorDefaultToPrimary = 1

	maxClassName = 256
)

type point struct {
	X, Y int32
}

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfo struct {
	CbSize    uint32
	RcMonitor rect
	RcWork    rect
	DwFlags   uint32
}

// pointArgs passes a POINT by value: one register on 64-bit targets, two
// stack slots on 32-bit ones.
func pointArgs(p point) []uintptr {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return []uintptr{uintptr(uint32(p.X)) | uintptr(uint32(p.Y))<<32}
	}
	return []uintptr{uintptr(p.X), uintptr(p.Y)}
}
