// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/tomtom215/seqmine/internal/gsp"
)

// Recorder is a gsp.Observer that updates the mining metrics.
type Recorder struct{}

var _ gsp.Observer = Recorder{}

// NewRecorder resets the per-level gauges and returns a Recorder.
func NewRecorder() Recorder {
	ResetLevels()
	return Recorder{}
}

// LevelStarted implements gsp.Observer.
func (Recorder) LevelStarted(level, candidates, survivors int) {
	l := strconv.Itoa(level)
	LevelCandidates.WithLabelValues(l).Set(float64(candidates))
	LevelSurvivors.WithLabelValues(l).Set(float64(survivors))
}

// CandidateEvaluated implements gsp.Observer.
func (Recorder) CandidateEvaluated(int) {
	CandidatesEvaluated.Inc()
}

// LevelCompleted implements gsp.Observer.
func (Recorder) LevelCompleted(stats gsp.LevelStats) {
	LevelFrequent.WithLabelValues(strconv.Itoa(stats.Level)).Set(float64(stats.Frequent))
	LevelDuration.Observe(stats.Duration.Seconds())
}

// RefinementCompleted implements gsp.Observer.
func (Recorder) RefinementCompleted(_ int, d time.Duration) {
	RefinementDuration.Observe(d.Seconds())
}

// RunStatus maps a Mine error to the status label of RunsTotal.
func RunStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, gsp.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, gsp.ErrConfiguration):
		return "invalid_config"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
