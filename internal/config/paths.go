// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

// AppName is the directory name, registry value name and window title.
const AppName = "EdgeShelf"

const (
	// LogsDirName is the name of the logs directory.
	LogsDirName = "logs"
)

// File names
const (
	SettingsFileName = "settings.json"
	TuningFileName   = "tuning.yaml"
	LogFileName      = "edgeshelf.log"
)

// Paths locates every file the application reads or writes.
type Paths struct {
	// AppDir holds settings, tuning and logs (%APPDATA%\EdgeShelf).
	AppDir string
	// TempDir receives materialized text and image files (%TEMP%\EdgeShelf).
	TempDir string
}

// DefaultPaths returns the per-user locations.
func DefaultPaths() (Paths, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return Paths{}, err
		}
		base = home
	}
	return NewPaths(filepath.Join(base, AppName), filepath.Join(os.TempDir(), AppName)), nil
}

// NewPaths builds Paths from explicit directories.
func NewPaths(appDir, tempDir string) Paths {
	return Paths{AppDir: appDir, TempDir: tempDir}
}

// SettingsFile returns the path to settings.json.
func (p Paths) SettingsFile() string {
	return filepath.Join(p.AppDir, SettingsFileName)
}

// TuningFile returns the path to tuning.yaml.
func (p Paths) TuningFile() string {
	return filepath.Join(p.AppDir, TuningFileName)
}

// LogsDir returns the path to the logs directory.
func (p Paths) LogsDir() string {
	return filepath.Join(p.AppDir, LogsDirName)
}

// LogFile returns the path to the current log file.
func (p Paths) LogFile() string {
	return filepath.Join(p.LogsDir(), LogFileName)
}

// EnsureAppDir creates the application directory if it doesn't exist.
func (p Paths) EnsureAppDir() error {
	return os.MkdirAll(p.AppDir, 0o755)
}

// EnsureLogsDir creates the logs directory if it doesn't exist.
func (p Paths) EnsureLogsDir() error {
	return os.MkdirAll(p.LogsDir(), 0o755)
}
