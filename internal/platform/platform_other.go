//go:build !windows

package platform

import "github.com/edgeshelf/edgeshelf/internal/models"

func (d *Desktop) PrimaryButtonDown() (bool, error) { return false, ErrUnsupported }

func (d *Desktop) CursorPos() (models.Point, error) { return models.Point{}, ErrUnsupported }

func (d *Desktop) WindowClassesAt(models.Point) ([]string, string, error) {
	return nil, "", ErrUnsupported
}

func (d *Desktop) MonitorWorkArea(models.Point) (models.Rect, error) {
	return models.Rect{}, ErrUnsupported
}

func (d *Desktop) PrimaryWorkArea() (models.Rect, error) { return models.Rect{}, ErrUnsupported }

func (d *Desktop) OpenDefault(string) error { return ErrUnsupported }

func (d *Desktop) Reveal(string) error { return ErrUnsupported }

func (d *Desktop) DragFiles([]string) (bool, error) { return false, ErrUnsupported }

// InitOLE is a no-op off Windows.
func InitOLE() (func(), error) { return func() {}, nil }

// ShowError is a no-op off Windows; callers also log the message.
func ShowError(title, message string) {}

// IsElevated is always false off Windows.
func IsElevated() bool { return false }

// Window is a placeholder; FindWindow always fails off Windows.
type Window struct{}

func FindWindow(string) (*Window, error) { return nil, ErrUnsupported }

func (w *Window) Handle() uintptr { return 0 }

func (w *Window) MakeToolWindow() {}

func (w *Window) SetBounds(models.Rect) {}

func (w *Window) Show(bool) {}

func (w *Window) Hide() {}

// Autostart is unsupported off Windows.
type Autostart struct{}

func (Autostart) SetAutostart(bool) error { return ErrUnsupported }

func (Autostart) AutostartEnabled() (bool, error) { return false, ErrUnsupported }
