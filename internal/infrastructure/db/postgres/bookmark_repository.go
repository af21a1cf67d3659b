package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linksaver/linksaver/internal/core/domain"
)

// BookmarkRepository persists bookmarks. Every statement carries a
// user_id predicate, so a row owned by another user is indistinguishable
// from a missing row.
type BookmarkRepository struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepository(pool *pgxpool.Pool) *BookmarkRepository {
	return &BookmarkRepository{pool: pool}
}

const bookmarkColumns = `id::text, user_id::text, url, title, favicon, summary, tags, sort_order, created_at, updated_at`

func (r *BookmarkRepository) Create(ctx context.Context, b *domain.Bookmark) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO bookmarks (id, user_id, url, title, favicon, summary, tags, sort_order, created_at, updated_at)
		 VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.UserID, b.URL, b.Title, b.Favicon, b.Summary, b.Tags, b.SortOrder, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBookmark
		}
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

func (r *BookmarkRepository) FindByID(ctx context.Context, userID, id string) (*domain.Bookmark, error) {
	return r.findOne(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID)
}

func (r *BookmarkRepository) FindByURL(ctx context.Context, userID, url string) (*domain.Bookmark, error) {
	return r.findOne(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE url = $1 AND user_id = $2::uuid`,
		url, userID)
}

func (r *BookmarkRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Bookmark
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.UserID, &b.URL, &b.Title, &b.Favicon, &b.Summary, &b.Tags, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("find bookmark: %w", err)
	}
	return &b, nil
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT `+bookmarkColumns+`
		 FROM bookmarks
		 WHERE user_id = $1::uuid
		 ORDER BY sort_order ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Bookmark, 0)
	for rows.Next() {
		var b domain.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.URL, &b.Title, &b.Favicon, &b.Summary, &b.Tags, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookmarkRepository) Update(ctx context.Context, b *domain.Bookmark) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE bookmarks
		 SET title = $1, tags = $2, updated_at = $3
		 WHERE id = $4::uuid AND user_id = $5::uuid`,
		b.Title, b.Tags, b.UpdatedAt, b.ID, b.UserID,
	)
	if err != nil {
		return fmt.Errorf("update bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepository) UpdateSummary(ctx context.Context, userID, id, summary string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE bookmarks
		 SET summary = $1, updated_at = now()
		 WHERE id = $2::uuid AND user_id = $3::uuid`,
		summary, id, userID,
	)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepository) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`DELETE FROM bookmarks WHERE id = $1::uuid AND user_id = $2::uuid`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookmarkNotFound
	}
	return nil
}

func (r *BookmarkRepository) MaxSortOrder(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(sort_order), 0) FROM bookmarks WHERE user_id = $1::uuid`,
		userID,
	).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max sort order: %w", err)
	}
	return max, nil
}

// SetSortOrders assigns sort_order = position for every id inside one
// transaction, so a failed reorder leaves the previous order intact.
func (r *BookmarkRepository) SetSortOrders(ctx context.Context, userID string, ids []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, id := range ids {
		if _, err := tx.Exec(ctx,
			`UPDATE bookmarks SET sort_order = $1, updated_at = now()
			 WHERE id = $2::uuid AND user_id = $3::uuid`,
			i, id, userID,
		); err != nil {
			return fmt.Errorf("set sort order: %w", err)
		}
	}

	return tx.Commit(ctx)
}
