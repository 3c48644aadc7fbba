package shelf

import (
	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/payload"
)

// View is the window that displays the panel.
type View interface {
	// Show makes the window visible; activate also gives it focus.
	Show(activate bool)
	Hide()
	SetOpacity(opacity float64)
	SetBounds(bounds models.Rect)
	Render(items []models.ShelfItem)
}

// Screen answers mouse and monitor queries.
type Screen interface {
	PrimaryButtonDown() (bool, error)
	CursorPos() (models.Point, error)
	MonitorWorkArea(pt models.Point) (models.Rect, error)
	PrimaryWorkArea() (models.Rect, error)
}

// Shell opens files the way Explorer would.
type Shell interface {
	OpenDefault(path string) error
	// Reveal opens the containing folder with path selected.
	Reveal(path string) error
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	Read() (payload.Payload, error)
	WriteText(text string) error
	WriteFiles(paths []string) error
}

// DragSource starts an OS drag of files out of the panel. It blocks until
// the drag ends and reports whether a target accepted the drop.
type DragSource interface {
	DragFiles(paths []string) (bool, error)
}

// Settings exposes the settings the panel reads.
type Settings interface {
	DockSide() models.DockSide
	RemoveAfterDragOut() bool
}
