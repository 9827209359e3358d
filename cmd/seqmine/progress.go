// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tomtom215/seqmine/internal/gsp"
)

// progressObserver draws one progress bar per level.
type progressObserver struct {
	w io.Writer

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

var _ gsp.Observer = (*progressObserver)(nil)

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

func (p *progressObserver) LevelStarted(level, candidates, survivors int) {
	bar := progressbar.NewOptions(survivors,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionSetDescription(fmt.Sprintf("level %d (%d candidates)", level, candidates)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)

	p.mu.Lock()
	p.bar = bar
	p.mu.Unlock()
}

// CandidateEvaluated may be called from several workers at once.
func (p *progressObserver) CandidateEvaluated(int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progressObserver) LevelCompleted(stats gsp.LevelStats) {
	p.mu.Lock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
	p.mu.Unlock()

	if stats.Survivors > 0 {
		fmt.Fprintf(p.w, "level %d: %d frequent of %d candidates (%s)\n",
			stats.Level, stats.Frequent, stats.Candidates, stats.Duration.Round(time.Millisecond))
	}
}

func (p *progressObserver) RefinementCompleted(patterns int, d time.Duration) {
	fmt.Fprintf(p.w, "refined %d patterns (%s)\n", patterns, d.Round(time.Millisecond))
}
