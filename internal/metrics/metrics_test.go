// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package metrics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/sequence"
)

func TestRecorderWithMiner(t *testing.T) {
	day := func(n int) time.Time { return time.Date(2024, 1, 1+n, 0, 0, 0, 0, time.UTC) }
	db := sequence.NewDatabase()
	db.Add("c1", sequence.Sequence{sequence.NewElement(day(0), "a", "b"), sequence.NewElement(day(5), "c")})
	db.Add("c2", sequence.Sequence{sequence.NewElement(day(0), "a"), sequence.NewElement(day(10), "b", "c")})

	before := testutil.ToFloat64(CandidatesEvaluated)
	miner, err := gsp.NewMiner(gsp.DefaultConfig(), zerolog.Nop(), gsp.WithObserver(NewRecorder()))
	if err != nil {
		t.Fatalf("NewMiner() error = %v", err)
	}
	if _, err := miner.Mine(context.Background(), db); err != nil {
		t.Fatalf("Mine() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"level 1 candidates", testutil.ToFloat64(LevelCandidates.WithLabelValues("1")), 3},
		{"level 2 candidates", testutil.ToFloat64(LevelCandidates.WithLabelValues("2")), 12},
		{"level 2 survivors", testutil.ToFloat64(LevelSurvivors.WithLabelValues("2")), 12},
		{"level 1 frequent", testutil.ToFloat64(LevelFrequent.WithLabelValues("1")), 3},
		{"level 2 frequent", testutil.ToFloat64(LevelFrequent.WithLabelValues("2")), 1},
		{"evaluations", testutil.ToFloat64(CandidatesEvaluated) - before, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestNewRecorderResetsLevels(t *testing.T) {
	LevelFrequent.WithLabelValues("9").Set(4)
	NewRecorder()
	if n := testutil.CollectAndCount(LevelFrequent); n != 0 {
		t.Errorf("LevelFrequent has %d series after reset, want 0", n)
	}
}

func TestRecordRun(t *testing.T) {
	successBefore := testutil.ToFloat64(RunsTotal.WithLabelValues("success"))
	failedBefore := testutil.ToFloat64(RunsTotal.WithLabelValues("invalid_input"))

	RecordRun("success", 2*time.Second, 17)
	RecordRun("invalid_input", 0, 0)

	if got := testutil.ToFloat64(RunsTotal.WithLabelValues("success")) - successBefore; got != 1 {
		t.Errorf("success runs delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RunsTotal.WithLabelValues("invalid_input")) - failedBefore; got != 1 {
		t.Errorf("invalid_input runs delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(PatternsFound); got != 17 {
		t.Errorf("PatternsFound = %v, want 17", got)
	}
}

func TestRunStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "success"},
		{"input", &gsp.InvalidInputError{CustomerID: "c1", Reason: "empty sequence"}, "invalid_input"},
		{"config", fmt.Errorf("invalid config: %w", &gsp.ConfigurationError{Field: "min_support", Reason: "must be at least 1"}), "invalid_config"},
		{"canceled", fmt.Errorf("mining canceled at level 2: %w", context.Canceled), "canceled"},
		{"deadline", context.DeadlineExceeded, "canceled"},
		{"other", errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunStatus(tt.err); got != tt.want {
				t.Errorf("RunStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordStoreOperation(t *testing.T) {
	before := testutil.ToFloat64(StoreOperations.WithLabelValues("save", "error"))
	RecordStoreOperation("save", errors.New("disk full"))
	RecordStoreOperation("save", nil)
	if got := testutil.ToFloat64(StoreOperations.WithLabelValues("save", "error")) - before; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestRecordRunCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(RunCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(RunCacheLookups.WithLabelValues("miss"))
	RecordRunCacheLookup(true)
	RecordRunCacheLookup(false)
	RecordRunCacheLookup(false)
	if got := testutil.ToFloat64(RunCacheLookups.WithLabelValues("hit")) - hits; got != 1 {
		t.Errorf("hit delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RunCacheLookups.WithLabelValues("miss")) - misses; got != 2 {
		t.Errorf("miss delta = %v, want 2", got)
	}
}

func TestRecordAPIRequestAndLoad(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/runs", 200, 3*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/runs", "200")); got < 1 {
		t.Errorf("APIRequestsTotal = %v, want >= 1", got)
	}

	before := testutil.ToFloat64(LoaderRows)
	RecordLoad("csv", 120, time.Second)
	if got := testutil.ToFloat64(LoaderRows) - before; got != 120 {
		t.Errorf("LoaderRows delta = %v, want 120", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordRun("success", time.Second, 3)
	path := filepath.Join(t.TempDir(), "seqmine.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "seqmine_runs_total") {
		t.Error("textfile missing seqmine_runs_total")
	}
}

func TestMetricsLint(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer,
		"seqmine_runs_total", "seqmine_run_duration_seconds", "seqmine_candidates_evaluated_total")
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric %s: %s", p.Metric, p.Text)
	}
}
