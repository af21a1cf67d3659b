package service

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/linksaver/linksaver/internal/core/domain"
	"github.com/linksaver/linksaver/internal/core/ports"
)

type stubBookmarkRepo struct {
	bookmarks map[string]*domain.Bookmark
}

func newStubBookmarkRepo() *stubBookmarkRepo {
	return &stubBookmarkRepo{bookmarks: make(map[string]*domain.Bookmark)}
}

func (r *stubBookmarkRepo) Create(_ context.Context, b *domain.Bookmark) error {
	for _, existing := range r.bookmarks {
		if existing.UserID == b.UserID && existing.URL == b.URL {
			return domain.ErrDuplicateBookmark
		}
	}
	clone := *b
	r.bookmarks[b.ID] = &clone
	return nil
}

func (r *stubBookmarkRepo) FindByID(_ context.Context, userID, id string) (*domain.Bookmark, error) {
	if b, ok := r.bookmarks[id]; ok && b.UserID == userID {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBookmarkNotFound
}

func (r *stubBookmarkRepo) FindByURL(_ context.Context, userID, url string) (*domain.Bookmark, error) {
	for _, b := range r.bookmarks {
		if b.UserID == userID && b.URL == url {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBookmarkNotFound
}

func (r *stubBookmarkRepo) ListByUser(_ context.Context, userID string) ([]domain.Bookmark, error) {
	out := make([]domain.Bookmark, 0)
	for _, b := range r.bookmarks {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *stubBookmarkRepo) Update(_ context.Context, b *domain.Bookmark) error {
	if existing, ok := r.bookmarks[b.ID]; ok && existing.UserID == b.UserID {
		clone := *b
		r.bookmarks[b.ID] = &clone
		return nil
	}
	return domain.ErrBookmarkNotFound
}

func (r *stubBookmarkRepo) UpdateSummary(_ context.Context, userID, id, summary string) error {
	if b, ok := r.bookmarks[id]; ok && b.UserID == userID {
		b.Summary = &summary
		return nil
	}
	return domain.ErrBookmarkNotFound
}

func (r *stubBookmarkRepo) Delete(_ context.Context, userID, id string) error {
	if b, ok := r.bookmarks[id]; ok && b.UserID == userID {
		delete(r.bookmarks, id)
		return nil
	}
	return domain.ErrBookmarkNotFound
}

func (r *stubBookmarkRepo) MaxSortOrder(_ context.Context, userID string) (int, error) {
	max := 0
	for _, b := range r.bookmarks {
		if b.UserID == userID && b.SortOrder > max {
			max = b.SortOrder
		}
	}
	return max, nil
}

func (r *stubBookmarkRepo) SetSortOrders(_ context.Context, userID string, ids []string) error {
	for i, id := range ids {
		if b, ok := r.bookmarks[id]; ok && b.UserID == userID {
			b.SortOrder = i
		}
	}
	return nil
}

type stubFetcher struct {
	meta domain.Metadata
}

func (f *stubFetcher) Fetch(context.Context, string) domain.Metadata { return f.meta }

type stubSummary struct {
	text    string
	outcome domain.SummaryOutcome
}

func (s *stubSummary) Summarize(context.Context, string) (string, domain.SummaryOutcome) {
	return s.text, s.outcome
}

func newBookmarkService(repo ports.BookmarkRepository) *BookmarkService {
	return NewBookmarkService(repo,
		&stubFetcher{meta: domain.Metadata{Title: "Example Site"}},
		&stubSummary{text: "A short generated summary of the page.", outcome: domain.SummaryOK},
		zerolog.Nop(),
	)
}

func TestBookmarkService_Create(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := newBookmarkService(repo)

	b, err := svc.Create(context.Background(), "user-1", "https://example.com", []string{"go", "web"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.Title != "Example Site" {
		t.Fatalf("unexpected title: %q", b.Title)
	}
	if b.Summary == nil || *b.Summary != "A short generated summary of the page." {
		t.Fatalf("unexpected summary: %v", b.Summary)
	}
	if b.SortOrder != 1 {
		t.Fatalf("expected first bookmark at order 1, got %d", b.SortOrder)
	}

	second, err := svc.Create(context.Background(), "user-1", "https://example.org", nil)
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.SortOrder != 2 {
		t.Fatalf("expected order 2, got %d", second.SortOrder)
	}
	if second.Tags == nil || len(second.Tags) != 0 {
		t.Fatalf("expected empty tag list, got %v", second.Tags)
	}
}

func TestBookmarkService_Create_DuplicateURL(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := newBookmarkService(repo)

	if _, err := svc.Create(context.Background(), "user-1", "https://example.com", nil); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", "https://example.com", nil); err != domain.ErrDuplicateBookmark {
		t.Fatalf("expected ErrDuplicateBookmark, got %v", err)
	}

	// A different user may save the same URL.
	if _, err := svc.Create(context.Background(), "user-2", "https://example.com", nil); err != nil {
		t.Fatalf("other user's create failed: %v", err)
	}
}

func TestBookmarkService_Create_InvalidURL(t *testing.T) {
	svc := newBookmarkService(newStubBookmarkRepo())

	for _, raw := range []string{"", "not-a-url", "ftp://example.com", "http://"} {
		if _, err := svc.Create(context.Background(), "user-1", raw, nil); err != domain.ErrInvalidURL {
			t.Fatalf("%q: expected ErrInvalidURL, got %v", raw, err)
		}
	}
}

func TestBookmarkService_Update_PartialFields(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := newBookmarkService(repo)

	b, _ := svc.Create(context.Background(), "user-1", "https://example.com", []string{"old"})

	newTitle := "Renamed"
	updated, err := svc.Update(context.Background(), "user-1", b.ID, ports.UpdateBookmarkInput{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not applied: %q", updated.Title)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "old" {
		t.Fatalf("tags should be unchanged, got %v", updated.Tags)
	}

	updated, err = svc.Update(context.Background(), "user-1", b.ID, ports.UpdateBookmarkInput{Tags: []string{"new"}})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title should be unchanged, got %q", updated.Title)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "new" {
		t.Fatalf("tags not applied: %v", updated.Tags)
	}
}

func TestBookmarkService_Update_NotOwned(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := newBookmarkService(repo)

	b, _ := svc.Create(context.Background(), "user-1", "https://example.com", nil)

	title := "hijack"
	if _, err := svc.Update(context.Background(), "user-2", b.ID, ports.UpdateBookmarkInput{Title: &title}); err != domain.ErrBookmarkNotFound {
		t.Fatalf("expected ErrBookmarkNotFound, got %v", err)
	}
}

func TestBookmarkService_Reorder(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := newBookmarkService(repo)

	a, _ := svc.Create(context.Background(), "user-1", "https://a.example.com", nil)
	b, _ := svc.Create(context.Background(), "user-1", "https://b.example.com", nil)
	c, _ := svc.Create(context.Background(), "user-1", "https://c.example.com", nil)

	if err := svc.Reorder(context.Background(), "user-1", []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder returned error: %v", err)
	}

	list, _ := svc.List(context.Background(), "user-1")
	gotIDs := []string{list[0].ID, list[1].ID, list[2].ID}
	wantIDs := []string{c.ID, a.ID, b.ID}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("position %d: got %s, want %s", i, gotIDs[i], wantIDs[i])
		}
	}
}

func TestBookmarkService_Reorder_MismatchedSet(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := newBookmarkService(repo)

	a, _ := svc.Create(context.Background(), "user-1", "https://a.example.com", nil)
	b, _ := svc.Create(context.Background(), "user-1", "https://b.example.com", nil)

	cases := map[string][]string{
		"subset":     {a.ID},
		"superset":   {a.ID, b.ID, "extra-id"},
		"foreign id": {a.ID, "not-yours"},
		"duplicate":  {a.ID, a.ID},
	}

	for name, ids := range cases {
		if err := svc.Reorder(context.Background(), "user-1", ids); err != domain.ErrReorderMismatch {
			t.Fatalf("%s: expected ErrReorderMismatch, got %v", name, err)
		}
	}

	// Orders must be untouched after the rejections.
	list, _ := svc.List(context.Background(), "user-1")
	if list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("order changed after rejected reorder")
	}
}

func TestBookmarkService_Delete(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := newBookmarkService(repo)

	b, _ := svc.Create(context.Background(), "user-1", "https://example.com", nil)

	if err := svc.Delete(context.Background(), "user-2", b.ID); err != domain.ErrBookmarkNotFound {
		t.Fatalf("expected ErrBookmarkNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", b.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	list, _ := svc.List(context.Background(), "user-1")
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list))
	}
}

func TestBookmarkService_RefreshSummary(t *testing.T) {
	repo := newStubBookmarkRepo()
	fetcher := &stubFetcher{meta: domain.Metadata{Title: "Original Title"}}
	summary := &stubSummary{text: domain.FallbackText(domain.SummaryUpstreamError), outcome: domain.SummaryUpstreamError}
	svc := NewBookmarkService(repo, fetcher, summary, zerolog.Nop())

	b, _ := svc.Create(context.Background(), "user-1", "https://example.com", nil)
	if b.Summary == nil || !domain.IsFallbackSummary(*b.Summary) {
		t.Fatalf("expected fallback summary on create, got %v", b.Summary)
	}

	// Upstream recovered; refresh replaces the fallback, metadata stays.
	summary.text = "Now the upstream service is healthy again, so this works."
	summary.outcome = domain.SummaryOK

	refreshed, err := svc.RefreshSummary(context.Background(), "user-1", b.ID)
	if err != nil {
		t.Fatalf("RefreshSummary returned error: %v", err)
	}
	if refreshed.Summary == nil || *refreshed.Summary != summary.text {
		t.Fatalf("summary not refreshed: %v", refreshed.Summary)
	}
	if refreshed.Title != "Original Title" {
		t.Fatalf("metadata must be untouched, got title %q", refreshed.Title)
	}
}
