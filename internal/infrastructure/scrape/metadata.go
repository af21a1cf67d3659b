// Package scrape fetches best-effort page metadata (title, favicon,
// description) by downloading and parsing HTML.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/linksaver/linksaver/internal/api/metrics"
	"github.com/linksaver/linksaver/internal/core/domain"
)

const fetchTimeout = 10 * time.Second

// Sites reject unidentified clients, so the fetch presents itself as a browser.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// faviconSelectors is ordered by preference; the first match wins.
var faviconSelectors = []string{
	`link[rel="icon"]`,
	`link[rel="shortcut icon"]`,
	`link[rel="apple-touch-icon"]`,
	`link[rel="icon"][type="image/x-icon"]`,
}

// MetadataFetcher scrapes a page. Fetch never fails outward: any
// network or parse failure collapses to {Title: url, Favicon: nil}.
// Title, favicon and description extraction are independent — a favicon
// probe failure does not discard a title already found.
type MetadataFetcher struct {
	client *http.Client
}

func NewMetadataFetcher() *MetadataFetcher {
	return &MetadataFetcher{client: &http.Client{Timeout: fetchTimeout}}
}

func (f *MetadataFetcher) Fetch(ctx context.Context, pageURL string) domain.Metadata {
	timer := prometheus.NewTimer(metrics.MetadataFetchDuration)
	defer timer.ObserveDuration()

	fallback := domain.Metadata{Title: pageURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fallback
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fallback
	}

	meta := domain.Metadata{
		Title:       extractTitle(doc, pageURL),
		Favicon:     f.extractFavicon(ctx, doc, pageURL),
		Description: extractDescription(doc),
	}
	return meta
}

func extractTitle(doc *goquery.Document, pageURL string) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title, _ = doc.Find(`meta[property="og:title"]`).Attr("content")
		title = strings.TrimSpace(title)
	}
	if title == "" {
		title = pageURL
	}
	return title
}

func (f *MetadataFetcher) extractFavicon(ctx context.Context, doc *goquery.Document, pageURL string) *string {
	for _, selector := range faviconSelectors {
		href, ok := doc.Find(selector).First().Attr("href")
		if !ok || href == "" {
			continue
		}
		if resolved := resolveRef(pageURL, href); resolved != "" {
			return &resolved
		}
	}

	// No link tag matched: probe /favicon.ico at the site root and use
	// it only if the HEAD request succeeds.
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	probe := fmt.Sprintf("%s://%s/favicon.ico", base.Scheme, base.Host)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, probe, nil)
	if err != nil {
		return nil
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}
	return &probe
}

func extractDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && desc != "" {
		return desc
	}
	desc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	return desc
}

func resolveRef(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
