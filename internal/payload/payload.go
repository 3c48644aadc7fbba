// Package payload interprets drop and clipboard payloads and materializes
// text and images into temp files.
package payload

import (
	"image"
	"strings"
)

// Kind is the representation chosen from a payload.
type Kind int

const (
	None Kind = iota
	Files
	Text
	Image
)

func (k Kind) String() string {
	switch k {
	case Files:
		return "files"
	case Text:
		return "text"
	case Image:
		return "image"
	default:
		return "none"
	}
}

// Payload carries every representation a drag source or the clipboard
// offered. Only one of them is used; see Resolve.
type Payload struct {
	Paths []string
	Text  string
	Image image.Image
}

// Resolve picks the representation to import: files first, then text, then
// image. Whitespace-only text does not count, and resolving stops at the
// first kind that is present even if it later imports nothing.
func (p Payload) Resolve() Kind {
	switch {
	case len(p.Paths) > 0:
		return Files
	case strings.TrimSpace(p.Text) != "":
		return Text
	case p.Image != nil && !p.Image.Bounds().Empty():
		return Image
	default:
		return None
	}
}

// Empty reports whether the payload carries nothing importable.
func (p Payload) Empty() bool {
	return p.Resolve() == None
}
