// Package ui hosts the shelf panel in a frameless wails window and bridges
// it to the frontend.
package ui

import (
	"context"
	"log"
	"net/url"
	"os"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/edgeshelf/edgeshelf/internal/config"
	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/platform"
)

// Frontend event names.
const (
	EventItems   = "shelf:items"
	EventOpacity = "shelf:opacity"
)

// ItemView is an item as the frontend renders it.
type ItemView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Pinned    bool   `json:"pinned"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Missing   bool   `json:"missing"`
}

// NewItemView converts a shelf item for the frontend.
func NewItemView(item models.ShelfItem) ItemView {
	v := ItemView{
		ID:     item.ID,
		Kind:   string(item.Kind),
		Name:   item.DisplayName,
		Path:   item.SourcePath,
		Pinned: item.Pinned,
	}
	if item.ThumbnailPath != "" {
		v.Thumbnail = ThumbnailPrefix + url.PathEscape(item.ID)
	}
	if _, err := os.Stat(item.SourcePath); err != nil {
		v.Missing = true
	}
	return v
}

// NewItemViews converts items in order.
func NewItemViews(items []models.ShelfItem) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, NewItemView(item))
	}
	return views
}

// View implements the shelf view on top of the wails window. Calls made
// before the window exists only update the cached state.
type View struct {
	mu      sync.Mutex
	ctx     context.Context
	win     *platform.Window
	items   []ItemView
	opacity float64
}

// NewView creates a detached view.
func NewView() *View {
	return &View{items: []ItemView{}}
}

// Attach binds the view to the running window.
func (v *View) Attach(ctx context.Context) {
	win, err := platform.FindWindow(config.AppName)
	if err != nil {
		log.Printf("[ui] Native window not found, using wails placement: %v", err)
		win = nil
	} else {
		win.MakeToolWindow()
	}

	v.mu.Lock()
	v.ctx = ctx
	v.win = win
	items, opacity := v.items, v.opacity
	v.mu.Unlock()

	runtime.EventsEmit(ctx, EventItems, items)
	runtime.EventsEmit(ctx, EventOpacity, opacity)
}

// Handle returns the native window handle, or zero.
func (v *View) Handle() uintptr {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.win == nil {
		return 0
	}
	return v.win.Handle()
}

// Items returns the last rendered items.
func (v *View) Items() []ItemView {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.items
}

func (v *View) attached() (context.Context, *platform.Window) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctx, v.win
}

// Show makes the window visible; activate also focuses it.
func (v *View) Show(activate bool) {
	ctx, win := v.attached()
	switch {
	case win != nil:
		win.Show(activate)
	case ctx != nil:
		runtime.WindowShow(ctx)
	}
}

// Hide hides the window.
func (v *View) Hide() {
	ctx, win := v.attached()
	switch {
	case win != nil:
		win.Hide()
	case ctx != nil:
		runtime.WindowHide(ctx)
	}
}

// SetOpacity fades the page; the window itself stays opaque to the OS.
func (v *View) SetOpacity(opacity float64) {
	v.mu.Lock()
	v.opacity = opacity
	ctx := v.ctx
	v.mu.Unlock()
	if ctx != nil {
		runtime.EventsEmit(ctx, EventOpacity, opacity)
	}
}

// SetBounds places the window in virtual screen coordinates.
func (v *View) SetBounds(b models.Rect) {
	ctx, win := v.attached()
	switch {
	case win != nil:
		win.SetBounds(b)
	case ctx != nil:
		// wails positions relative to the current monitor
		runtime.WindowSetSize(ctx, b.Width, b.Height)
		runtime.WindowSetPosition(ctx, b.X, b.Y)
	}
}

// Render pushes the item list to the frontend.
func (v *View) Render(items []models.ShelfItem) {
	views := NewItemViews(items)
	v.mu.Lock()
	v.items = views
	ctx := v.ctx
	v.mu.Unlock()
	if ctx != nil {
		runtime.EventsEmit(ctx, EventItems, views)
	}
}
