//go:build !windows

package clip

import (
	"fmt"

	"github.com/edgeshelf/edgeshelf/internal/platform"
)

// File lists and images are only exchanged through the Windows clipboard.

var errUnsupported = fmt.Errorf("clipboard file list: %w", platform.ErrUnsupported)

func readFiles() ([]string, error) { return nil, nil }

func writeFiles([]string) error { return errUnsupported }

func readImage() ([]byte, error) { return nil, nil }
