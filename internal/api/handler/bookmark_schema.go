package handler

import "github.com/linksaver/linksaver/internal/core/domain"

type createBookmarkRequest struct {
	URL  string   `json:"url" validate:"required,url"`
	Tags []string `json:"tags"`
}

type updateBookmarkRequest struct {
	Title *string  `json:"title"`
	Tags  []string `json:"tags"`
}

type reorderRequest struct {
	BookmarkIDs []string `json:"bookmarkIds" validate:"required"`
}

type bookmarkResponse struct {
	Bookmark *domain.Bookmark `json:"bookmark"`
}

type bookmarkListResponse struct {
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}
