//go:build !windows

package tray

import "log"

// Tray is a no-op off Windows; commands still reach the controller through
// the CLI.
type Tray struct {
	ctrl *Controller
}

// New creates the tray for a controller.
func New(ctrl *Controller) *Tray {
	return &Tray{ctrl: ctrl}
}

// Start logs that no tray is available and calls ready.
func (t *Tray) Start(ready func()) {
	log.Println("[tray] No notification area on this platform")
	if ready != nil {
		ready()
	}
}

// Stop does nothing.
func (t *Tray) Stop() {}
