package ports

import (
	"context"

	"github.com/linksaver/linksaver/internal/core/domain"
)

// UpdateBookmarkInput carries the optional fields of a bookmark edit.
// Nil means "leave unchanged".
type UpdateBookmarkInput struct {
	Title *string
	Tags  []string
}

type BookmarkService interface {
	Create(ctx context.Context, userID, url string, tags []string) (*domain.Bookmark, error)
	List(ctx context.Context, userID string) ([]domain.Bookmark, error)
	Update(ctx context.Context, userID, id string, input UpdateBookmarkInput) (*domain.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
	Reorder(ctx context.Context, userID string, ids []string) error
	RefreshSummary(ctx context.Context, userID, id string) (*domain.Bookmark, error)
}
