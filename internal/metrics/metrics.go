// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Package metrics exposes Prometheus instrumentation for mining runs, input
// loading, the run store and the HTTP API.
//
// Batch invocations export through WriteTextfile for the node_exporter
// textfile collector; the API server serves the same registry on /metrics.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mining run metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqmine_runs_total",
			Help: "Total number of mining runs by outcome",
		},
		[]string{"status"}, // "success", "invalid_input", "invalid_config", "canceled", "error"
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seqmine_run_duration_seconds",
			Help:    "Wall time of complete mining runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10), // 10ms .. ~43min
		},
	)

	PatternsFound = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seqmine_patterns_found",
			Help: "Number of frequent patterns reported by the last run",
		},
	)

	// Per-level metrics, labeled by pattern size
	LevelCandidates = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seqmine_level_candidates",
			Help: "Candidates generated at each level of the last run",
		},
		[]string{"level"},
	)

	LevelSurvivors = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seqmine_level_survivors",
			Help: "Candidates left after apriori pruning at each level of the last run",
		},
		[]string{"level"},
	)

	LevelFrequent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seqmine_level_frequent",
			Help: "Frequent patterns at each level of the last run",
		},
		[]string{"level"},
	)

	LevelDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seqmine_level_duration_seconds",
			Help:    "Wall time of individual mining levels in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CandidatesEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seqmine_candidates_evaluated_total",
			Help: "Total number of candidate support evaluations",
		},
	)

	RefinementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seqmine_refinement_duration_seconds",
			Help:    "Wall time of exact support refinement in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Input metrics
	LoaderRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seqmine_loader_rows_total",
			Help: "Transaction rows read from input files",
		},
	)

	LoaderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seqmine_loader_duration_seconds",
			Help:    "Duration of input loading in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// Store metrics
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqmine_store_operations_total",
			Help: "Run store operations by type and outcome",
		},
		[]string{"operation", "status"},
	)

	RunCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqmine_run_cache_lookups_total",
			Help: "API run cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqmine_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seqmine_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// RecordRun records the outcome of a mining run.
func RecordRun(status string, duration time.Duration, patterns int) {
	RunsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		RunDuration.Observe(duration.Seconds())
		PatternsFound.Set(float64(patterns))
	}
}

// RecordLoad records a completed input load.
func RecordLoad(format string, rows int, duration time.Duration) {
	LoaderRows.Add(float64(rows))
	LoaderDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordStoreOperation records a run store call.
func RecordStoreOperation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperations.WithLabelValues(operation, status).Inc()
}

// RecordRunCacheLookup records one run cache lookup.
func RecordRunCacheLookup(hit bool) {
	if hit {
		RunCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	RunCacheLookups.WithLabelValues("miss").Inc()
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// ResetLevels clears per-level gauges left by a previous run.
func ResetLevels() {
	LevelCandidates.Reset()
	LevelSurvivors.Reset()
	LevelFrequent.Reset()
}

// WriteTextfile writes the default registry in the text exposition format.
// The file is written atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
