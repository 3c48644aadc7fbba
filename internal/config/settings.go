package config

import (
	"log"

	"github.com/edgeshelf/edgeshelf/internal/models"
)

// Store owns the settings record and persists it on every change.
// It is not safe for concurrent use; the event loop is its only caller.
type Store struct {
	path    string
	current models.Settings
}

// OpenStore loads settings from path. Load never fails: a missing or
// malformed file yields defaults, which are written back immediately.
func OpenStore(path string) *Store {
	s := &Store{path: path}
	s.current = *Load(path)
	return s
}

// Load reads settings from path, falling back to (and rewriting) defaults.
func Load(path string) *models.Settings {
	if !FileExists(path) {
		return writeDefaults(path)
	}

	// Missing keys keep their default values.
	settings := models.NewSettings()
	if err := LoadJSON(path, settings); err != nil {
		log.Printf("[config] %v; using defaults", err)
		return writeDefaults(path)
	}
	settings.Normalize()
	return settings
}

func writeDefaults(path string) *models.Settings {
	settings := models.NewSettings()
	if err := SaveJSON(path, settings); err != nil {
		log.Printf("[config] Failed to write default settings: %v", err)
	}
	return settings
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Current returns a copy of the current settings.
func (s *Store) Current() models.Settings {
	return s.current
}

// DockSide returns the configured dock side.
func (s *Store) DockSide() models.DockSide {
	return s.current.DockSide
}

// RemoveAfterDragOut reports whether dragged-out items are auto-removed.
func (s *Store) RemoveAfterDragOut() bool {
	return s.current.RemoveAfterDragOut
}

// Update applies fn to a copy of the settings and saves it. The copy only
// becomes current once it is on disk.
func (s *Store) Update(fn func(*models.Settings)) error {
	next := s.current
	fn(&next)
	next.Normalize()
	if err := SaveJSON(s.path, &next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// Reload re-reads the file after an external edit. Unlike Load, a file that
// cannot be parsed leaves the current settings untouched, so a half-written
// file never clobbers the user's edit. It reports whether anything changed.
func (s *Store) Reload() (bool, error) {
	settings := models.NewSettings()
	if err := LoadJSON(s.path, settings); err != nil {
		return false, err
	}
	settings.Normalize()
	if *settings == s.current {
		return false, nil
	}
	s.current = *settings
	return true, nil
}
