// Package metrics exposes Prometheus counters for the economy engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shell_economy"

var (
	// RecalculatedItems counts fixed items per recalculation item status
	// (economy.StatusUpdated, StatusUnchanged, StatusFailed).
	RecalculatedItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recalculated_items_total",
		Help:      "Fixed shop items processed by price recalculation, by outcome.",
	}, []string{"outcome"})

	// RecalculationDuration observes full recalculation runs.
	RecalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recalculation_duration_seconds",
		Help:      "Duration of shop price recalculation runs.",
		Buckets:   prometheus.DefBuckets,
	})

	// ApprovedHoursLookups counts approved-hours aggregations by outcome (ok, failed).
	ApprovedHoursLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approved_hours_lookups_total",
		Help:      "Approved hours aggregations per user, by outcome.",
	}, []string{"outcome"})

	// PriceSamples counts displayed prices, split by randomized pricing.
	PriceSamples = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_samples_total",
		Help:      "Prices displayed to users.",
	}, []string{"randomized"})
)

// Approved-hours lookup outcomes
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)
