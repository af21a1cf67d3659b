// Package metrics defines and registers all custom Prometheus metrics
// for the LinkSaver API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "linksaver"

// BookmarksCreatedTotal counts bookmarks successfully persisted.
var BookmarksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookmarks_created_total",
		Help:      "Total number of bookmarks created.",
	},
)

// SummariesTotal counts summary-pipeline runs by terminal outcome.
// Label:
//   - outcome: "ok" or a failure kind (e.g. "rate_limited", "short_content")
var SummariesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summaries_total",
		Help:      "Total number of summary pipeline runs, by terminal outcome.",
	},
	[]string{"outcome"},
)

// MetadataFetchDuration measures how long a metadata scrape takes,
// including the favicon HEAD probe when it runs.
var MetadataFetchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "metadata_fetch_duration_seconds",
		Help:      "Duration of page metadata scraping.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ReaderRequestsTotal counts outbound reader-service calls by HTTP status class.
// Label:
//   - status: "2xx", "429", "401", "5xx", "other", "error"
var ReaderRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reader_requests_total",
		Help:      "Total number of reader-service requests, by response class.",
	},
	[]string{"status"},
)
