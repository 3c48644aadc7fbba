// Package platform wraps the operating system services the shelf needs:
// mouse and window inspection, monitors, the shell, autostart registration
// and OLE drag-and-drop. Only Windows is implemented; other platforms get
// stubs that return ErrUnsupported so the rest of the tree builds and tests
// everywhere.
package platform

import "errors"

// ErrUnsupported is returned by every stub on platforms other than Windows.
var ErrUnsupported = errors.New("not supported on this platform")

// ErrNotFound is returned when a query resolves to nothing, e.g. no window
// under the cursor or no monitor at a point.
var ErrNotFound = errors.New("not found")

// Desktop implements the sensor probe and the shelf's screen, shell and
// drag source on top of the OS.
type Desktop struct {
	// Owner is the window that owns drag operations and message boxes.
	// Zero means no owner.
	Owner uintptr
}

// NewDesktop creates a Desktop.
func NewDesktop() *Desktop {
	return &Desktop{}
}
