package app

import (
	"log"

	"github.com/edgeshelf/edgeshelf/internal/models"
	"github.com/edgeshelf/edgeshelf/internal/payload"
	"github.com/edgeshelf/edgeshelf/internal/shelf"
)

// shelfProxy runs frontend calls on the loop. Calls that may block on the
// OS (drag-out, clipboard writes, opening files) are posted so the frontend
// is never held up.
type shelfProxy struct {
	loop  *Loop
	panel *shelf.Panel
}

func (s *shelfProxy) do(fn func()) bool {
	if err := s.loop.Do(fn); err != nil {
		log.Printf("[app] Dropped frontend call: %v", err)
		return false
	}
	return true
}

func (s *shelfProxy) Items() []models.ShelfItem {
	var items []models.ShelfItem
	s.do(func() { items = s.panel.Items() })
	return items
}

func (s *shelfProxy) Dispatch(id string, action shelf.Action) error {
	var err error
	s.do(func() { err = s.panel.Dispatch(id, action) })
	return err
}

func (s *shelfProxy) ClearUnlocked() int {
	var n int
	s.do(func() { n = s.panel.ClearUnlocked() })
	return n
}

func (s *shelfProxy) Paste() int {
	var n int
	s.do(func() { n = s.panel.Paste() })
	return n
}

func (s *shelfProxy) Drop(pl payload.Payload) int {
	var n int
	s.do(func() { n = s.panel.Drop(pl) })
	return n
}

func (s *shelfProxy) DragOut(ids []string) {
	s.loop.Post(func() { s.panel.DragOut(ids) })
}

func (s *shelfProxy) CopySelection(ids []string) {
	s.loop.Post(func() { s.panel.CopySelection(ids) })
}

func (s *shelfProxy) Preview(ids []string) {
	s.loop.Post(func() { s.panel.Preview(ids) })
}

func (s *shelfProxy) Hide() {
	s.loop.Post(s.panel.HideSoft)
}

// thumbnail resolves a thumbnail request from the asset server.
func (s *shelfProxy) thumbnail(id string) (string, bool) {
	var (
		item models.ShelfItem
		ok   bool
	)
	s.do(func() { item, ok = s.panel.Item(id) })
	if !ok || item.ThumbnailPath == "" {
		return "", false
	}
	return item.ThumbnailPath, true
}
