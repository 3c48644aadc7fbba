//go:build windows

package clip

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	xclip "golang.design/x/clipboard"
	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procSetClipboardData           = user32.NewProc("SetClipboardData")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procGlobalAlloc                = kernel32.NewProc("GlobalAlloc")
	procGlobalLock                 = kernel32.NewProc("GlobalLock")
	procGlobalUnlock               = kernel32.NewProc("GlobalUnlock")
	procGlobalFree                 = kernel32.NewProc("GlobalFree")
	procDragQueryFileW             = shell32.NewProc("DragQueryFileW")
)

const (
	cfHDrop = 15
	gHND    = 0x0042
)

// dropFiles is the DROPFILES header that precedes a CF_HDROP path list.
type dropFiles struct {
	pFiles uint32
	x, y   int32
	fNC    int32
	fWide  int32
}

var (
	imageOnce sync.Once
	imageErr  error
)

func readImage() ([]byte, error) {
	imageOnce.Do(func() { imageErr = xclip.Init() })
	if imageErr != nil {
		return nil, fmt.Errorf("init image clipboard: %w", imageErr)
	}
	return xclip.Read(xclip.FmtImage), nil
}

func openClipboard() error {
	if ret, _, err := procOpenClipboard.Call(0); ret == 0 {
		return fmt.Errorf("open clipboard: %w", err)
	}
	return nil
}

func readFiles() ([]string, error) {
	if ret, _, _ := procIsClipboardFormatAvailable.Call(cfHDrop); ret == 0 {
		return nil, nil
	}
	if err := openClipboard(); err != nil {
		return nil, err
	}
	defer procCloseClipboard.Call() //nolint:errcheck

	hDrop, _, _ := procGetClipboardData.Call(cfHDrop)
	if hDrop == 0 {
		return nil, nil
	}

	count, _, _ := procDragQueryFileW.Call(hDrop, 0xFFFFFFFF, 0, 0)
	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		n, _, _ := procDragQueryFileW.Call(hDrop, i, 0, 0)
		buf := make([]uint16, n+1)
		procDragQueryFileW.Call(hDrop, i, uintptr(unsafe.Pointer(&buf[0])), n+1) //nolint:errcheck
		paths = append(paths, windows.UTF16ToString(buf))
	}
	return paths, nil
}

func writeFiles(paths []string) error {
	if len(paths) == 0 {
		return errors.New("no files to copy")
	}

	var list []uint16
	for _, p := range paths {
		w, err := windows.UTF16FromString(p)
		if err != nil {
			return err
		}
		list = append(list, w...) // includes the terminating NUL
	}
	list = append(list, 0)

	header := unsafe.Sizeof(dropFiles{})
	size := header + uintptr(len(list))*2

	if err := openClipboard(); err != nil {
		return err
	}
	defer procCloseClipboard.Call() //nolint:errcheck
	procEmptyClipboard.Call()       //nolint:errcheck

	hMem, _, err := procGlobalAlloc.Call(gHND, size)
	if hMem == 0 {
		return fmt.Errorf("GlobalAlloc: %w", err)
	}
	ptr, _, err := procGlobalLock.Call(hMem)
	if ptr == 0 {
		procGlobalFree.Call(hMem) //nolint:errcheck
		return fmt.Errorf("GlobalLock: %w", err)
	}

	df := (*dropFiles)(unsafe.Pointer(ptr))
	df.pFiles = uint32(header)
	df.fWide = 1
	copy(unsafe.Slice((*uint16)(unsafe.Pointer(ptr+header)), len(list)), list)
	procGlobalUnlock.Call(hMem) //nolint:errcheck

	if ret, _, err := procSetClipboardData.Call(cfHDrop, hMem); ret == 0 {
		procGlobalFree.Call(hMem) //nolint:errcheck
		return fmt.Errorf("SetClipboardData: %w", err)
	}
	return nil
}
