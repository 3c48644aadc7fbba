// Package registry holds the in-memory list of shelf items.
package registry

import "github.com/edgeshelf/edgeshelf/internal/models"

// RemoveMode selects which removal rule applies.
type RemoveMode int

const (
	// RemoveAuto is used by automatic paths (drag-out cleanup, clear
	// unlocked, middle click). Pinned items are left alone.
	RemoveAuto RemoveMode = iota
	// RemoveForce is an explicit user action and ignores the pin.
	RemoveForce
)

// Registry maps item IDs to items and keeps insertion order for display.
// It is not safe for concurrent use.
type Registry struct {
	order []string
	items map[string]*models.ShelfItem
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{items: make(map[string]*models.ShelfItem)}
}

// Append adds an item at the end. An item whose ID is already present is
// ignored and Append returns false.
func (r *Registry) Append(item *models.ShelfItem) bool {
	if item == nil || item.ID == "" {
		return false
	}
	if _, ok := r.items[item.ID]; ok {
		return false
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return true
}

// Get returns the item with the given ID.
func (r *Registry) Get(id string) (*models.ShelfItem, bool) {
	item, ok := r.items[id]
	return item, ok
}

// Len returns the number of items.
func (r *Registry) Len() int {
	return len(r.order)
}

// Items returns a snapshot of the items in insertion order.
func (r *Registry) Items() []models.ShelfItem {
	out := make([]models.ShelfItem, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.items[id])
	}
	return out
}

// Remove deletes an item. With RemoveAuto a pinned item is kept.
// It reports whether the item was removed.
func (r *Registry) Remove(id string, mode RemoveMode) bool {
	item, ok := r.items[id]
	if !ok {
		return false
	}
	if mode == RemoveAuto && item.Pinned {
		return false
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// RemoveUnpinned deletes every item that is not pinned and returns the
// removed IDs.
func (r *Registry) RemoveUnpinned() []string {
	var removed []string
	kept := r.order[:0]
	for _, id := range r.order {
		if r.items[id].Pinned {
			kept = append(kept, id)
			continue
		}
		delete(r.items, id)
		removed = append(removed, id)
	}
	r.order = kept
	return removed
}

// TogglePin flips the pin state and returns the new value.
func (r *Registry) TogglePin(id string) (bool, bool) {
	item, ok := r.items[id]
	if !ok {
		return false, false
	}
	item.Pinned = !item.Pinned
	return item.Pinned, true
}

// SetPinned sets the pin state. It reports whether the item exists.
func (r *Registry) SetPinned(id string, pinned bool) bool {
	item, ok := r.items[id]
	if !ok {
		return false
	}
	item.Pinned = pinned
	return true
}
