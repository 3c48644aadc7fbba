//go:build windows

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

// OpenDefault opens path with its associated application.
func (d *Desktop) OpenDefault(path string) error {
	verb, err := windows.UTF16PtrFromString("open")
	if err != nil {
		return err
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	if err := windows.ShellExecute(windows.Handle(d.Owner), verb, file, nil, nil, windows.SW_SHOWNORMAL); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// Reveal opens an Explorer window with path selected.
func (d *Desktop) Reveal(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	explorer := filepath.Join(os.Getenv("WINDIR"), "explorer.exe")
	cmd := exec.Command(explorer)
	// Explorer parses its own command line and wants the path quoted after
	// the comma, which exec's argument escaping cannot produce.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: fmt.Sprintf(`%s /select,"%s"`, syscall.EscapeArg(explorer), abs),
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}
	go cmd.Wait() //nolint:errcheck // explorer exits with 1 even on success
	return nil
}

// ShowError shows a modal error dialog. Used before any window exists.
func ShowError(title, message string) {
	t, _ := windows.UTF16PtrFromString(title)
	m, _ := windows.UTF16PtrFromString(message)
	windows.MessageBox(0, m, t, windows.MB_OK|windows.MB_ICONERROR|windows.MB_TOPMOST|windows.MB_SETFOREGROUND) //nolint:errcheck
}

// IsElevated reports whether the process runs with an elevated token.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
