// Package models contains shared data structures used across the application.
package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ItemKind distinguishes user files from content the shelf materialized itself.
type ItemKind string

const (
	KindFile      ItemKind = "file"
	KindTextTemp  ItemKind = "text_temp"
	KindImageTemp ItemKind = "image_temp"
)

// imageExtensions are the file extensions previewed with a thumbnail.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// ShelfItem is one entry parked on the shelf.
type ShelfItem struct {
	ID            string    `json:"id"`
	Kind          ItemKind  `json:"kind"`
	SourcePath    string    `json:"source_path"`
	DisplayName   string    `json:"display_name"`
	Pinned        bool      `json:"pinned"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	AddedAt       time.Time `json:"added_at"`
}

// NewShelfItem creates an item with a fresh ID. The display name defaults to
// the basename of path.
func NewShelfItem(kind ItemKind, path, thumbnail string) *ShelfItem {
	return &ShelfItem{
		ID:            uuid.New().String(),
		Kind:          kind,
		SourcePath:    path,
		DisplayName:   filepath.Base(path),
		ThumbnailPath: thumbnail,
		AddedAt:       time.Now(),
	}
}

// NewFileItem references an existing user file. Image files get themselves
// as thumbnail.
func NewFileItem(path string) *ShelfItem {
	thumb := ""
	if IsImagePath(path) {
		thumb = path
	}
	return NewShelfItem(KindFile, path, thumb)
}

// IsImagePath reports whether path has a known image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}
