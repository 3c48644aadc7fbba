// Package clip reads and writes the system clipboard in the shapes the shelf
// understands: a file list, plain text or an image.
package clip

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/edgeshelf/edgeshelf/internal/payload"
)

// Sources reads the individual clipboard formats. A nil source counts as
// empty.
type Sources struct {
	Files func() ([]string, error)
	Text  func() (string, error)
	Image func() ([]byte, error)
}

// Clipboard is the system clipboard.
type Clipboard struct {
	src       Sources
	writeText func(string) error
	writeFile func([]string) error
}

// New returns the system clipboard for this platform.
func New() *Clipboard {
	return &Clipboard{
		src: Sources{
			Files: readFiles,
			Text:  clipboard.ReadAll,
			Image: readImage,
		},
		writeText: clipboard.WriteAll,
		writeFile: writeFiles,
	}
}

// NewWithSources returns a clipboard that reads from src and cannot write.
func NewWithSources(src Sources) *Clipboard {
	return &Clipboard{src: src}
}

// Read collects every format present on the clipboard. Formats that fail to
// read are logged and left empty; Read only fails when nothing could be read
// at all.
func (c *Clipboard) Read() (payload.Payload, error) {
	var (
		pl   payload.Payload
		errs []error
	)

	if c.src.Files != nil {
		paths, err := c.src.Files()
		if err != nil {
			errs = append(errs, fmt.Errorf("files: %w", err))
		}
		pl.Paths = paths
	}
	if c.src.Text != nil {
		text, err := c.src.Text()
		if err != nil {
			errs = append(errs, fmt.Errorf("text: %w", err))
		}
		pl.Text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	if c.src.Image != nil {
		data, err := c.src.Image()
		if err != nil {
			errs = append(errs, fmt.Errorf("image: %w", err))
		} else if len(data) > 0 {
			img, err := payload.DecodeImage(data)
			if err != nil {
				errs = append(errs, err)
			} else {
				pl.Image = img
			}
		}
	}

	if pl.Empty() && len(errs) > 0 {
		return payload.Payload{}, errors.Join(errs...)
	}
	for _, err := range errs {
		log.Printf("[clip] Ignoring unreadable clipboard format: %v", err)
	}
	return pl, nil
}

// WriteText replaces the clipboard with text.
func (c *Clipboard) WriteText(text string) error {
	if c.writeText == nil {
		return errors.New("clipboard is read-only")
	}
	return c.writeText(text)
}

// WriteFiles replaces the clipboard with a file list that Explorer can paste.
func (c *Clipboard) WriteFiles(paths []string) error {
	if c.writeFile == nil {
		return errors.New("clipboard is read-only")
	}
	return c.writeFile(paths)
}
