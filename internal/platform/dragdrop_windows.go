//go:build windows

package platform

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	dropEffectCopy = 1
	dropEffectMove = 2
	dropEffectLink = 4

	dragDropSDrop   = 0x00040100
	dragDropSCancel = 0x00040101

	sOK    = 0
	sFalse = 1
)

// IID_IDataObject
var iidIDataObject = windows.GUID{
	Data1: 0x0000010e,
	Data2: 0x0000,
	Data3: 0x0000,
	Data4: [8]byte{0xc0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46},
}

// InitOLE prepares the calling OS thread for drag-and-drop. The caller must
// have locked the goroutine to its thread and must call the returned function
// on the same thread when done.
func InitOLE() (func(), error) {
	hr, _, _ := procOleInitialize.Call(0)
	if hr != sOK && hr != sFalse {
		return nil, fmt.Errorf("OleInitialize: %w", syscall.Errno(hr))
	}
	return func() { procOleUninitialize.Call() }, nil //nolint:errcheck
}

// DragFiles runs a modal shell drag of paths, offering copy, move and link.
// It returns whether a target accepted the drop. The calling thread must be
// OLE-initialised.
func (d *Desktop) DragFiles(paths []string) (bool, error) {
	if len(paths) == 0 {
		return false, errors.New("nothing to drag")
	}

	pidls := make([]uintptr, 0, len(paths))
	defer func() {
		for _, p := range pidls {
			procILFree.Call(p) //nolint:errcheck
		}
	}()
	for _, path := range paths {
		p, err := windows.UTF16PtrFromString(path)
		if err != nil {
			return false, err
		}
		pidl, _, _ := procILCreateFromPathW.Call(uintptr(unsafe.Pointer(p)))
		if pidl == 0 {
			return false, fmt.Errorf("ILCreateFromPath %s: %w", path, ErrNotFound)
		}
		pidls = append(pidls, pidl)
	}

	var obj uintptr
	hr, _, _ := procSHCreateDataObject.Call(
		0,
		uintptr(len(pidls)),
		uintptr(unsafe.Pointer(&pidls[0])),
		0,
		uintptr(unsafe.Pointer(&iidIDataObject)),
		uintptr(unsafe.Pointer(&obj)),
	)
	if hr != sOK || obj == 0 {
		return false, fmt.Errorf("SHCreateDataObject: %w", syscall.Errno(hr))
	}
	defer release(obj)

	var effect uint32
	hr, _, _ = procSHDoDragDrop.Call(
		d.Owner,
		obj,
		0,
		dropEffectCopy|dropEffectMove|dropEffectLink,
		uintptr(unsafe.Pointer(&effect)),
	)
	switch hr {
	case dragDropSDrop:
		return true, nil
	case dragDropSCancel:
		return false, nil
	default:
		return false, fmt.Errorf("SHDoDragDrop: %w", syscall.Errno(hr))
	}
}

// release calls IUnknown::Release on a COM object.
func release(obj uintptr) {
	vtbl := *(*[3]uintptr)(unsafe.Pointer(*(*uintptr)(unsafe.Pointer(obj))))
	syscall.SyscallN(vtbl[2], obj) //nolint:errcheck
}
