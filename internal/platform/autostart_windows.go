//go:build windows

package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// Autostart registers EdgeShelf under the current user's Run key.
type Autostart struct{}

// SetAutostart adds or removes the Run key value for this executable.
func (Autostart) SetAutostart(enabled bool) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()

	if !enabled {
		if err := key.DeleteValue(AutostartValueName); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return fmt.Errorf("delete run value: %w", err)
		}
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	cmd, err := AutostartCommand(exe, devSource())
	if err != nil {
		return err
	}
	if err := key.SetStringValue(AutostartValueName, cmd); err != nil {
		return fmt.Errorf("write run value: %w", err)
	}
	return nil
}

func devSource() DevSource {
	var dev DevSource
	if info, ok := debug.ReadBuildInfo(); ok {
		dev.Package = info.Path
	}
	if wd, err := os.Getwd(); err == nil {
		dev.Dir = wd
	}
	return dev
}

// AutostartEnabled reports whether a Run key value exists.
func (Autostart) AutostartEnabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()

	if _, _, err := key.GetStringValue(AutostartValueName); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
