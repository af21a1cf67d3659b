package domain

import (
	"errors"
	"time"
)

var ErrBookmarkNotFound = errors.New("bookmark not found")
var ErrDuplicateBookmark = errors.New("bookmark already exists")
var ErrInvalidURL = errors.New("invalid url")
var ErrReorderMismatch = errors.New("reorder list does not match bookmark set")

// Bookmark is a saved URL owned by exactly one user.
//
// SortOrder carries the manual drag-to-reorder position. Only relative
// ordering matters; values are not required to be contiguous.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Favicon   *string   `json:"favicon"`
	Summary   *string   `json:"summary"`
	Tags      []string  `json:"tags"`
	SortOrder int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Metadata is the best-effort result of scraping a page.
type Metadata struct {
	Title       string
	Favicon     *string
	Description string
}
