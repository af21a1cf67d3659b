package domain

import "errors"

// Sentinel errors for reader-service failures. The client classifies
// the HTTP status at the point of failure; nothing downstream inspects
// error messages.
var ErrReaderRateLimited = errors.New("reader service rate limited")
var ErrReaderUnauthorized = errors.New("reader service rejected credentials")
var ErrReaderUnavailable = errors.New("reader service unavailable")

// SummaryOutcome classifies how a summary-pipeline run terminated.
// Every failure path is assigned its outcome at the point of failure;
// the user-facing sentence is looked up exactly once, in FallbackText.
type SummaryOutcome string

const (
	SummaryOK            SummaryOutcome = "ok"
	SummaryRateLimited   SummaryOutcome = "rate_limited"
	SummaryUnauthorized  SummaryOutcome = "unauthorized"
	SummaryUpstreamError SummaryOutcome = "upstream_error"
	SummaryShortContent  SummaryOutcome = "short_content"
	SummaryNotConfigured SummaryOutcome = "not_configured"
	SummaryEmptyResult   SummaryOutcome = "empty_result"
	SummaryUnknownError  SummaryOutcome = "unknown_error"
)

var fallbackText = map[SummaryOutcome]string{
	SummaryRateLimited:   "Summary temporarily unavailable due to rate limiting.",
	SummaryUnauthorized:  "Summary temporarily unavailable due to authentication error.",
	SummaryUpstreamError: "Summary temporarily unavailable.",
	SummaryShortContent:  "Summary not available for this URL.",
	SummaryNotConfigured: "Summary service is not configured.",
	SummaryEmptyResult:   "Unable to generate summary for this URL.",
	SummaryUnknownError:  "Summary temporarily unavailable.",
}

// FallbackText returns the user-facing sentence stored in place of a
// summary for a failed outcome. SummaryOK has no fallback.
func FallbackText(o SummaryOutcome) string {
	if s, ok := fallbackText[o]; ok {
		return s
	}
	return fallbackText[SummaryUnknownError]
}

// IsFallbackSummary reports whether a stored summary is one of the
// fixed fallback sentences. The refresh action is keyed off this.
func IsFallbackSummary(s string) bool {
	for _, text := range fallbackText {
		if s == text {
			return true
		}
	}
	return false
}
