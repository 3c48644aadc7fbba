package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edgeshelf/edgeshelf/internal/config"
)

// AutostartValueName is the value written under the per-user Run key.
const AutostartValueName = config.AppName

// ErrEphemeralBinary is returned when the running executable lives in a
// go-build cache directory and no source checkout is known to rebuild it
// from.
var ErrEphemeralBinary = errors.New("executable is a temporary go run build")

// DevSource locates the checkout a go run build came from.
type DevSource struct {
	Dir     string // module root
	Package string // main package import path
}

// AutostartCommand returns the command line registered for autostart. A go
// run build cannot be relaunched from its cache directory, so it is replaced
// by a go run of the same package from dev.
func AutostartCommand(exe string, dev DevSource) (string, error) {
	if exe == "" {
		return "", errors.New("empty executable path")
	}
	if !isGoRunBuild(exe) {
		return `"` + exe + `" run`, nil
	}
	if dev.Dir == "" || dev.Package == "" {
		return "", fmt.Errorf("%s: %w", exe, ErrEphemeralBinary)
	}
	return fmt.Sprintf(`cmd.exe /c cd /d "%s" && go run %s run`, dev.Dir, dev.Package), nil
}

func isGoRunBuild(exe string) bool {
	parts := strings.FieldsFunc(exe, func(r rune) bool { return r == '/' || r == '\\' })
	for _, part := range parts {
		if strings.HasPrefix(part, "go-build") {
			return true
		}
	}
	return false
}
