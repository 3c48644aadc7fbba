package ui

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/edgeshelf/edgeshelf/internal/models"
)

// ThumbnailPrefix is the asset server path thumbnails are served under.
const ThumbnailPrefix = "/thumb/"

// ThumbnailLookup returns the thumbnail file of an item.
type ThumbnailLookup func(id string) (path string, ok bool)

// NewThumbnailHandler serves item thumbnails by item id. Only image files
// are served, so an id can never expose an arbitrary path.
func NewThumbnailHandler(lookup ThumbnailLookup) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(r.URL.Path, ThumbnailPrefix) {
			http.NotFound(w, r)
			return
		}
		id, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, ThumbnailPrefix))
		if err != nil || id == "" {
			http.NotFound(w, r)
			return
		}
		path, ok := lookup(id)
		if !ok || path == "" || !models.IsImagePath(path) {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFile(w, r, path)
	})
}
