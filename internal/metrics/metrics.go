// Package metrics exposes Prometheus instrumentation for the API, the sizing engine
// and the similarity ranker.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitscout_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitscout_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Sizing Metrics
	SizeSuggestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitscout_size_suggestions_total",
			Help: "Total number of size suggestions by category and resolution tier",
		},
		[]string{"category", "tier"},
	)

	SizeSuggestionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitscout_size_suggestion_errors_total",
			Help: "Total number of failed size suggestions",
		},
		[]string{"kind"}, // "user", "data"
	)

	SizeSuggestionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitscout_size_suggestion_confidence",
			Help:    "Confidence of returned size suggestions",
			Buckets: []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	// Ranking Metrics
	RankingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitscout_rankings_total",
			Help: "Total number of similarity rankings by strategy",
		},
		[]string{"strategy"}, // "embedding", "tags"
	)

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitscout_ranking_duration_seconds",
			Help:    "Duration of similarity rankings in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	RankingErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitscout_ranking_errors_total",
			Help: "Total number of failed similarity rankings",
		},
		[]string{"strategy"},
	)

	// Catalog Metrics
	CatalogProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitscout_catalog_products",
			Help: "Number of products in the loaded catalog",
		},
	)

	CatalogEmbeddedProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitscout_catalog_embedded_products",
			Help: "Number of catalog products that carry an embedding",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSizeSuggestion records a successful size suggestion
func RecordSizeSuggestion(category, tier string, confidence float64) {
	SizeSuggestionsTotal.WithLabelValues(category, tier).Inc()
	SizeSuggestionConfidence.Observe(confidence)
}

// RecordSizeSuggestionError records a failed size suggestion
func RecordSizeSuggestionError(userError bool) {
	kind := "data"
	if userError {
		kind = "user"
	}
	SizeSuggestionErrors.WithLabelValues(kind).Inc()
}

// RecordRanking records a ranking call. A non-nil err counts as a failure.
func RecordRanking(strategy string, duration time.Duration, err error) {
	if err != nil {
		RankingErrors.WithLabelValues(strategy).Inc()
		return
	}
	RankingsTotal.WithLabelValues(strategy).Inc()
	RankingDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// SetCatalogSize records the loaded catalog size
func SetCatalogSize(products, embedded int) {
	CatalogProducts.Set(float64(products))
	CatalogEmbeddedProducts.Set(float64(embedded))
}
