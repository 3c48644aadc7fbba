package models

// DockSide is the screen edge the shelf attaches to.
type DockSide string

const (
	DockLeft  DockSide = "left"
	DockRight DockSide = "right"
)

// ParseDockSide converts user input into a DockSide.
func ParseDockSide(s string) (DockSide, bool) {
	switch DockSide(s) {
	case DockLeft, DockRight:
		return DockSide(s), true
	}
	return "", false
}

// Settings represents the persisted user settings.
// This corresponds to %APPDATA%\EdgeShelf\settings.json.
type Settings struct {
	DockSide           DockSide `json:"dock_side"`
	RemoveAfterDragOut bool     `json:"remove_after_drag_out"`
	Autostart          bool     `json:"autostart"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		DockSide:           DockRight,
		RemoveAfterDragOut: true,
		Autostart:          false,
	}
}

// Normalize replaces an unknown dock side with the default.
func (s *Settings) Normalize() {
	if _, ok := ParseDockSide(string(s.DockSide)); !ok {
		s.DockSide = DockRight
	}
}
