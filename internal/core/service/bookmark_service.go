package service

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/linksaver/linksaver/internal/api/metrics"
	"github.com/linksaver/linksaver/internal/core/domain"
	"github.com/linksaver/linksaver/internal/core/ports"
)

// BookmarkService implements bookmark CRUD, manual reordering and
// summary refresh on top of a repository and the enrichment pipeline.
type BookmarkService struct {
	repo     ports.BookmarkRepository
	metadata ports.MetadataFetcher
	summary  ports.SummaryProvider
	logger   zerolog.Logger
}

func NewBookmarkService(repo ports.BookmarkRepository, metadata ports.MetadataFetcher, summary ports.SummaryProvider, logger zerolog.Logger) *BookmarkService {
	return &BookmarkService{repo: repo, metadata: metadata, summary: summary, logger: logger}
}

// Create saves a new bookmark. Metadata scraping and summarization run
// concurrently; the call returns once both finish. Neither can fail the
// request: both degrade to fallback values.
func (s *BookmarkService) Create(ctx context.Context, userID, rawURL string, tags []string) (*domain.Bookmark, error) {
	if !validURL(rawURL) {
		return nil, domain.ErrInvalidURL
	}

	if _, err := s.repo.FindByURL(ctx, userID, rawURL); err == nil {
		return nil, domain.ErrDuplicateBookmark
	} else if !errors.Is(err, domain.ErrBookmarkNotFound) {
		return nil, err
	}

	var (
		wg      sync.WaitGroup
		meta    domain.Metadata
		summary string
		outcome domain.SummaryOutcome
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		meta = s.metadata.Fetch(ctx, rawURL)
	}()
	go func() {
		defer wg.Done()
		summary, outcome = s.summary.Summarize(ctx, rawURL)
	}()
	wg.Wait()

	metrics.SummariesTotal.WithLabelValues(string(outcome)).Inc()

	maxOrder, err := s.repo.MaxSortOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if tags == nil {
		tags = []string{}
	}
	b := &domain.Bookmark{
		ID:        uuid.NewString(),
		UserID:    userID,
		URL:       rawURL,
		Title:     meta.Title,
		Favicon:   meta.Favicon,
		Summary:   &summary,
		Tags:      tags,
		SortOrder: maxOrder + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error().Err(err).Str("url", rawURL).Msg("failed to create bookmark")
		return nil, err
	}

	metrics.BookmarksCreatedTotal.Inc()
	s.logger.Info().Str("bookmark_id", b.ID).Str("url", rawURL).Msg("bookmark created")

	return b, nil
}

// List returns the user's bookmarks ordered by sort position.
func (s *BookmarkService) List(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update applies only the supplied fields (title and/or tags).
func (s *BookmarkService) Update(ctx context.Context, userID, id string, input ports.UpdateBookmarkInput) (*domain.Bookmark, error) {
	b, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		b.Title = *input.Title
	}
	if input.Tags != nil {
		b.Tags = input.Tags
	}
	b.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.repo.FindByID(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, id)
}

// Reorder assigns sort positions by index in ids. The submitted list
// must be exactly the caller's bookmark set; any subset, superset or
// foreign id rejects the whole request with no changes applied.
func (s *BookmarkService) Reorder(ctx context.Context, userID string, ids []string) error {
	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(ids) != len(existing) {
		return domain.ErrReorderMismatch
	}

	owned := make(map[string]bool, len(existing))
	for _, b := range existing {
		owned[b.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !owned[id] || seen[id] {
			return domain.ErrReorderMismatch
		}
		seen[id] = true
	}

	return s.repo.SetSortOrders(ctx, userID, ids)
}

// RefreshSummary reruns the summary pipeline for one bookmark. Metadata
// is left untouched.
func (s *BookmarkService) RefreshSummary(ctx context.Context, userID, id string) (*domain.Bookmark, error) {
	b, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	summary, outcome := s.summary.Summarize(ctx, b.URL)
	metrics.SummariesTotal.WithLabelValues(string(outcome)).Inc()

	if err := s.repo.UpdateSummary(ctx, userID, id, summary); err != nil {
		return nil, err
	}
	b.Summary = &summary
	b.UpdatedAt = time.Now().UTC()
	return b, nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
