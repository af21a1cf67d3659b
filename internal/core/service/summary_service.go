package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/linksaver/linksaver/internal/core/domain"
	"github.com/linksaver/linksaver/internal/core/ports"
)

const (
	// minContentLength rejects pages with nothing worth summarizing.
	minContentLength = 100
	// maxContentLength caps the text sent to the model (input budget).
	maxContentLength = 6000
	// minSummaryLength rejects empty or degenerate model output.
	minSummaryLength = 20

	// contentMarker separates the reader service's metadata header from
	// the article body in its plain-text responses.
	contentMarker = "Markdown Content:"
)

var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	headingRe = regexp.MustCompile(`#{1,6}\s`)
	linkRe    = regexp.MustCompile(`\[(.*?)\]\([^)]*\)`)
	blanksRe  = regexp.MustCompile(`\n{3,}`)
)

// SummaryService runs the summary pipeline:
//
//	RateLimitCheck → ContentFetch → ContentClean → LengthGate →
//	Truncate → Summarize → Validate → Done
//
// Every failing stage terminates the run with a SummaryOutcome; the
// caller stores domain.FallbackText(outcome) in place of a summary.
// There is no retry: the user-visible "refresh summary" action is the
// retry mechanism.
type SummaryService struct {
	limiter    ports.RateLimiter
	reader     ports.ReaderClient
	summarizer ports.Summarizer
	logger     zerolog.Logger
}

func NewSummaryService(limiter ports.RateLimiter, reader ports.ReaderClient, summarizer ports.Summarizer, logger zerolog.Logger) *SummaryService {
	return &SummaryService{limiter: limiter, reader: reader, summarizer: summarizer, logger: logger}
}

// Summarize produces a 1-2 sentence summary for url, or a fallback
// sentence. The returned string is always safe to store and display.
func (s *SummaryService) Summarize(ctx context.Context, url string) (string, domain.SummaryOutcome) {
	allowed, err := s.limiter.Allow(ctx)
	if err != nil {
		// The limiter only protects the shared quota; if the backing
		// store is unreachable the request proceeds.
		s.logger.Warn().Err(err).Msg("rate limiter unavailable, proceeding")
	} else if !allowed {
		s.logger.Warn().Str("url", url).Msg("summary rate limit reached")
		return domain.FallbackText(domain.SummaryRateLimited), domain.SummaryRateLimited
	}

	raw, err := s.reader.ReadPage(ctx, url)
	if err != nil {
		outcome := classifyReaderErr(err)
		s.logger.Warn().Err(err).Str("url", url).Str("outcome", string(outcome)).Msg("content fetch failed")
		return domain.FallbackText(outcome), outcome
	}

	content := cleanContent(raw)

	if len(content) < minContentLength {
		return domain.FallbackText(domain.SummaryShortContent), domain.SummaryShortContent
	}

	if len(content) > maxContentLength {
		content = content[:maxContentLength] + "..."
	}

	if !s.summarizer.Configured() {
		s.logger.Warn().Msg("summarizer not configured")
		return domain.FallbackText(domain.SummaryNotConfigured), domain.SummaryNotConfigured
	}

	summary, err := s.summarizer.Summarize(ctx, content)
	if err != nil {
		s.logger.Error().Err(err).Str("url", url).Msg("summarization failed")
		return domain.FallbackText(domain.SummaryUnknownError), domain.SummaryUnknownError
	}

	summary = strings.TrimSpace(summary)
	if len(summary) < minSummaryLength {
		return domain.FallbackText(domain.SummaryEmptyResult), domain.SummaryEmptyResult
	}

	return summary, domain.SummaryOK
}

func classifyReaderErr(err error) domain.SummaryOutcome {
	switch {
	case errors.Is(err, domain.ErrReaderRateLimited):
		return domain.SummaryRateLimited
	case errors.Is(err, domain.ErrReaderUnauthorized):
		return domain.SummaryUnauthorized
	case errors.Is(err, domain.ErrReaderUnavailable):
		return domain.SummaryUpstreamError
	default:
		return domain.SummaryUnknownError
	}
}

// cleanContent strips the reader's metadata header and the markdown
// syntax that survives into its plain-text output.
func cleanContent(raw string) string {
	if i := strings.Index(raw, contentMarker); i != -1 {
		raw = raw[i+len(contentMarker):]
	}

	raw = boldRe.ReplaceAllString(raw, "$1")
	raw = italicRe.ReplaceAllString(raw, "$1")
	raw = headingRe.ReplaceAllString(raw, "")
	raw = linkRe.ReplaceAllString(raw, "$1")
	raw = blanksRe.ReplaceAllString(raw, "\n\n")

	return strings.TrimSpace(raw)
}
