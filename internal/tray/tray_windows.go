//go:build windows

package tray

import (
	"log"
	"runtime"

	"github.com/getlantern/systray"

	"github.com/edgeshelf/edgeshelf/internal/config"
	"github.com/edgeshelf/edgeshelf/internal/models"
)

// Tray is the notification area icon.
type Tray struct {
	ctrl *Controller

	showItem      *systray.MenuItem
	hideItem      *systray.MenuItem
	dockLeftItem  *systray.MenuItem
	dockRightItem *systray.MenuItem
	autostartItem *systray.MenuItem
	exitItem      *systray.MenuItem
}

// New creates the tray for a controller.
func New(ctrl *Controller) *Tray {
	return &Tray{ctrl: ctrl}
}

// Start runs the tray message loop on its own OS thread. ready is called
// once the icon is visible.
func (t *Tray) Start(ready func()) {
	go func() {
		runtime.LockOSThread()
		systray.Run(func() {
			t.onReady()
			if ready != nil {
				ready()
			}
		}, func() {
			log.Println("[tray] Exited")
		})
	}()
}

// Stop removes the icon.
func (t *Tray) Stop() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle(config.AppName)

	t.showItem = systray.AddMenuItem("Show Shelf", "Open the shelf panel")
	t.hideItem = systray.AddMenuItem("Hide Shelf", "Hide the shelf panel")
	systray.AddSeparator()
	t.dockLeftItem = systray.AddMenuItemCheckbox("Dock: Left", "Dock the shelf on the left edge", false)
	t.dockRightItem = systray.AddMenuItemCheckbox("Dock: Right", "Dock the shelf on the right edge", false)
	systray.AddSeparator()
	t.autostartItem = systray.AddMenuItemCheckbox("Auto-start with Windows", "Start EdgeShelf when you sign in", false)
	systray.AddSeparator()
	t.exitItem = systray.AddMenuItem("Exit", "Quit EdgeShelf")

	t.ctrl.OnChange(t.render)
	t.render(t.ctrl.State())

	go t.handleClicks()
}

func (t *Tray) render(s State) {
	setChecked(t.dockLeftItem, s.DockSide == models.DockLeft)
	setChecked(t.dockRightItem, s.DockSide == models.DockRight)
	setChecked(t.autostartItem, s.Autostart)
	systray.SetTooltip(Tooltip(s.Items))
}

func setChecked(item *systray.MenuItem, checked bool) {
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (t *Tray) handleClicks() {
	for {
		select {
		case <-t.showItem.ClickedCh:
			t.ctrl.Handle(CmdShow)
		case <-t.hideItem.ClickedCh:
			t.ctrl.Handle(CmdHide)
		case <-t.dockLeftItem.ClickedCh:
			t.ctrl.Handle(CmdDockLeft)
		case <-t.dockRightItem.ClickedCh:
			t.ctrl.Handle(CmdDockRight)
		case <-t.autostartItem.ClickedCh:
			t.ctrl.Handle(CmdToggleAutostart)
		case <-t.exitItem.ClickedCh:
			t.ctrl.Handle(CmdExit)
			return
		}
	}
}
