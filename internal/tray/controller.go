// Package tray implements the notification area icon and its menu.
package tray

import (
	"fmt"
	"log"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/edgeshelf/edgeshelf/internal/config"
	"github.com/edgeshelf/edgeshelf/internal/models"
)

// maxTooltip is the longest tooltip the Windows notification area shows.
const maxTooltip = 127

// Host carries out tray commands. Implementations marshal the calls onto the
// thread that owns the shelf.
type Host interface {
	ShowShelf()
	HideShelf()
	SetDockSide(side models.DockSide) error
	SetAutostart(enabled bool) error
	Exit()
}

// Command is a menu action.
type Command int

// Menu commands.
const (
	CmdShow Command = iota
	CmdHide
	CmdDockLeft
	CmdDockRight
	CmdToggleAutostart
	CmdExit
)

func (c Command) String() string {
	switch c {
	case CmdShow:
		return "show"
	case CmdHide:
		return "hide"
	case CmdDockLeft:
		return "dock-left"
	case CmdDockRight:
		return "dock-right"
	case CmdToggleAutostart:
		return "toggle-autostart"
	case CmdExit:
		return "exit"
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// State is what the menu displays.
type State struct {
	DockSide  models.DockSide
	Autostart bool
	Items     int
}

// Controller keeps the menu state and routes commands to the host.
type Controller struct {
	host Host

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// NewController creates a controller with an initial menu state.
func NewController(host Host, initial State) *Controller {
	return &Controller{host: host, state: initial}
}

// OnChange registers the function that redraws the menu. It is called with
// the lock released.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns the current menu state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Update changes the menu state, e.g. after the item count or the settings
// changed outside the menu.
func (c *Controller) Update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	s, notify := c.state, c.onChange
	c.mu.Unlock()
	if notify != nil {
		notify(s)
	}
}

// Handle runs a menu command. Failed setting changes leave the menu as it
// was.
func (c *Controller) Handle(cmd Command) {
	switch cmd {
	case CmdShow:
		c.host.ShowShelf()
	case CmdHide:
		c.host.HideShelf()
	case CmdDockLeft:
		c.setDock(models.DockLeft)
	case CmdDockRight:
		c.setDock(models.DockRight)
	case CmdToggleAutostart:
		enabled := !c.State().Autostart
		if err := c.host.SetAutostart(enabled); err != nil {
			log.Printf("[tray] Failed to change autostart: %v", err)
			c.Update(func(*State) {})
			return
		}
		c.Update(func(s *State) { s.Autostart = enabled })
	case CmdExit:
		c.host.Exit()
	default:
		log.Printf("[tray] Unknown command %v", cmd)
	}
}

func (c *Controller) setDock(side models.DockSide) {
	if err := c.host.SetDockSide(side); err != nil {
		log.Printf("[tray] Failed to change dock side: %v", err)
		c.Update(func(*State) {})
		return
	}
	c.Update(func(s *State) { s.DockSide = side })
}

// Tooltip formats the icon tooltip.
func Tooltip(items int) string {
	noun := "items"
	if items == 1 {
		noun = "item"
	}
	return ansi.Truncate(fmt.Sprintf("%s - %d %s", config.AppName, items, noun), maxTooltip, "...")
}
