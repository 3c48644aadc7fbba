package ui

import (
	"context"
	"strings"

	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/payload"
	"github.com/edgeshelf/edgeshelf/internal/shelf"
)

// Shelf is the panel as seen from the frontend. Implementations run each
// call on the goroutine that owns the panel.
type Shelf interface {
	Items() []models.ShelfItem
	Dispatch(id string, action shelf.Action) error
	ClearUnlocked() int
	Paste() int
	Drop(pl payload.Payload) int
	DragOut(ids []string)
	CopySelection(ids []string)
	Preview(ids []string)
	Hide()
}

// Config is what the frontend needs to know at load.
type Config struct {
	DragOutDistance int `json:"dragOutDistance"`
}

// Bridge is bound into the frontend; its exported methods are callable from
// JavaScript as window.go.ui.Bridge.
type Bridge struct {
	shelf  Shelf
	config Config
	ctx    context.Context
}

// NewBridge creates a bridge to s.
func NewBridge(s Shelf, cfg Config) *Bridge {
	return &Bridge{shelf: s, config: cfg}
}

func (b *Bridge) startup(ctx context.Context) {
	b.ctx = ctx
}

// Config returns the frontend configuration.
func (b *Bridge) Config() Config {
	return b.config
}

// Items returns the current items.
func (b *Bridge) Items() []ItemView {
	return NewItemViews(b.shelf.Items())
}

// Dispatch runs a named action on an item.
func (b *Bridge) Dispatch(id, action string) error {
	a, err := shelf.ParseAction(action)
	if err != nil {
		return err
	}
	return b.shelf.Dispatch(id, a)
}

// ClearUnlocked removes every unpinned item.
func (b *Bridge) ClearUnlocked() int {
	return b.shelf.ClearUnlocked()
}

// Paste imports the clipboard.
func (b *Bridge) Paste() int {
	return b.shelf.Paste()
}

// DropText imports text dragged onto the page.
func (b *Bridge) DropText(text string) int {
	return b.shelf.Drop(payload.Payload{Text: text})
}

// DropFiles imports files dropped on the window.
func (b *Bridge) DropFiles(paths []string) int {
	clean := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			clean = append(clean, p)
		}
	}
	if len(clean) == 0 {
		return 0
	}
	return b.shelf.Drop(payload.Payload{Paths: clean})
}

// DropImage imports raw image bytes dragged onto the page without a file
// path behind them, such as an image from a browser. The frontend sends
// them base64-encoded, which the binding decodes into data.
func (b *Bridge) DropImage(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	img, err := payload.DecodeImage(data)
	if err != nil {
		return 0, err
	}
	return b.shelf.Drop(payload.Payload{Image: img}), nil
}

// BeginDragOut starts an OS drag of the given items. It returns before the
// drag ends.
func (b *Bridge) BeginDragOut(ids []string) {
	if len(ids) == 0 {
		return
	}
	b.shelf.DragOut(ids)
}

// CopySelection puts the items on the clipboard as files.
func (b *Bridge) CopySelection(ids []string) {
	b.shelf.CopySelection(ids)
}

// Preview opens the first item with its default application.
func (b *Bridge) Preview(ids []string) {
	b.shelf.Preview(ids)
}

// Hide fades the panel out.
func (b *Bridge) Hide() {
	b.shelf.Hide()
}

func (b *Bridge) onFileDrop(_, _ int, paths []string) {
	b.DropFiles(paths)
}
