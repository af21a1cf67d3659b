package ports

import (
	"context"

	"github.com/linksaver/linksaver/internal/core/domain"
)

// MetadataFetcher scrapes best-effort page metadata. Implementations
// never return an error; every internal failure degrades to
// {Title: url, Favicon: nil}.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) domain.Metadata
}

// SummaryProvider runs the full summary pipeline for a URL. The string
// result is always usable: either the generated summary or one of the
// fixed fallback sentences (see domain.FallbackText).
type SummaryProvider interface {
	Summarize(ctx context.Context, url string) (string, domain.SummaryOutcome)
}

// ReaderClient fetches readable article text for a URL from the
// external reader service.
type ReaderClient interface {
	ReadPage(ctx context.Context, url string) (string, error)
}

// Summarizer condenses cleaned article text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, content string) (string, error)
	Configured() bool
}

// RateLimiter guards the shared reader-service quota. Allow both checks
// and, when permitted, records the request in one step so that
// concurrent callers cannot race past the limit.
type RateLimiter interface {
	Allow(ctx context.Context) (bool, error)
}
