package tray

import (
	"github.com/gen2brain/beeep"

	"github.com/edgeshelf/edgeshelf/internal/config"
)

const startupMessage = "Running in background. Right-click the tray icon to open."

// Announce shows a desktop notification that EdgeShelf is running.
func Announce() error {
	return beeep.Notify(config.AppName, startupMessage, "")
}
