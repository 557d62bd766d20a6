// Package metrics holds the Prometheus collectors for the API, the catalog
// store and the library mutations.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratedeck_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratedeck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratedeck_store_operation_duration_seconds",
			Help:    "Duration of catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratedeck_store_operation_errors_total",
			Help: "Total number of failed catalog store operations",
		},
		[]string{"operation"},
	)

	// StoreDecodeFailures counts stored values that could not be decoded and
	// were replaced by their default.
	StoreDecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratedeck_store_decode_failures_total",
			Help: "Total number of stored values replaced by their default after a decode failure",
		},
		[]string{"key"},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratedeck_song_submissions_total",
			Help: "Total number of song submissions by outcome",
		},
		[]string{"outcome"}, // "accepted", "invalid", "duplicate", "error"
	)

	RatingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratedeck_ratings_total",
			Help: "Total number of ratings recorded",
		},
	)

	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ratedeck_catalog_records",
			Help: "Current number of records in the catalog",
		},
		[]string{"kind"}, // "songs", "albums", "artists"
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}

// RecordStoreOperation records the outcome of a Load, Save or Clear.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordDecodeFailure records a stored value that was discarded.
func RecordDecodeFailure(key string) {
	StoreDecodeFailures.WithLabelValues(key).Inc()
}

// RecordSubmission records a song submission outcome.
func RecordSubmission(outcome string) {
	SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordRating records one rating.
func RecordRating() {
	RatingsTotal.Inc()
}

// SetCatalogSize publishes the record counts of the current catalog.
func SetCatalogSize(songs, albums, artists int) {
	CatalogSize.WithLabelValues("songs").Set(float64(songs))
	CatalogSize.WithLabelValues("albums").Set(float64(albums))
	CatalogSize.WithLabelValues("artists").Set(float64(artists))
}
