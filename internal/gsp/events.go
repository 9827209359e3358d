// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import "time"

// LevelStats summarizes one completed mining level.
type LevelStats struct {
	// Level is the pattern size k.
	Level int `json:"level"`

	// Candidates is the number of generated candidates.
	Candidates int `json:"candidates"`

	// Survivors is the number of candidates left after pruning.
	Survivors int `json:"survivors"`

	// Frequent is the number of survivors meeting the support threshold.
	Frequent int `json:"frequent"`

	// Duration is the wall time spent on the level.
	Duration time.Duration `json:"duration"`
}

// Observer receives progress events from a Miner.
//
// CandidateEvaluated may be called concurrently from executor goroutines.
// The other methods are called from the mining goroutine only.
type Observer interface {
	LevelStarted(level, candidates, survivors int)
	CandidateEvaluated(level int)
	LevelCompleted(stats LevelStats)
	RefinementCompleted(patterns int, d time.Duration)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) LevelStarted(int, int, int) {}
func (NopObserver) CandidateEvaluated(int) {}
func (NopObserver) LevelCompleted(LevelStats) {}
func (NopObserver) RefinementCompleted(int, time.Duration) {}

// MultiObserver forwards every event to each observer in order.
type MultiObserver []Observer

func (m MultiObserver) LevelStarted(level, candidates, survivors int) {
	for _, o := range m {
		o.LevelStarted(level, candidates, survivors)
	}
}

func (m MultiObserver) CandidateEvaluated(level int) {
	for _, o := range m {
		o.CandidateEvaluated(level)
	}
}

func (m MultiObserver) LevelCompleted(stats LevelStats) {
	for _, o := range m {
		o.LevelCompleted(stats)
	}
}

func (m MultiObserver) RefinementCompleted(patterns int, d time.Duration) {
	for _, o := range m {
		o.RefinementCompleted(patterns, d)
	}
}
