package ports

import (
	"context"

	"github.com/linksaver/linksaver/internal/core/domain"
)

// BookmarkRepository defines the interface for bookmark persistence.
// All queries are scoped by owner; a lookup for a bookmark that exists
// but belongs to another user behaves exactly like a missing row.
type BookmarkRepository interface {
	Create(ctx context.Context, b *domain.Bookmark) error
	FindByID(ctx context.Context, userID, id string) (*domain.Bookmark, error)
	FindByURL(ctx context.Context, userID, url string) (*domain.Bookmark, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error)
	Update(ctx context.Context, b *domain.Bookmark) error
	UpdateSummary(ctx context.Context, userID, id, summary string) error
	Delete(ctx context.Context, userID, id string) error
	MaxSortOrder(ctx context.Context, userID string) (int, error)
	// SetSortOrders assigns sort_order = position for every id, in one
	// transaction. len(ids) must already be verified by the caller.
	SetSortOrders(ctx context.Context, userID string, ids []string) error
}
