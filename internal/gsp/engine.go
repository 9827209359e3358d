// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/seqmine/internal/sequence"
)

// Level holds the frequent patterns of one size, in candidate order.
type Level struct {
	// Size is the number of items in each pattern.
	Size int `json:"size"`

	// Records carry approximate counts from the search.
	Records []SupportRecord `json:"records"`
}

// Patterns returns the patterns of the level.
func (l Level) Patterns() []sequence.Pattern {
	out := make([]sequence.Pattern, len(l.Records))
	for i, r := range l.Records {
		out[i] = r.Pattern
	}
	return out
}

// Result is the outcome of a mining run.
type Result struct {
	// Levels holds the non-empty frequent levels, smallest size first.
	Levels []Level `json:"levels"`

	// Records is the concatenation of all levels. After refinement every
	// record is exact and carries its customers.
	Records []SupportRecord `json:"records"`

	// Stats has one entry per evaluated level, including the final empty one.
	Stats []LevelStats `json:"stats"`

	// Refined reports whether Records hold exact counts.
	Refined bool `json:"refined"`

	// Customers is the number of sequences mined.
	Customers int `json:"customers"`

	// Duration is the wall time of the whole run.
	Duration time.Duration `json:"duration"`
}

// Miner runs GSP over a sequence database. A Miner holds no per-run state
// and may be reused, including concurrently.
type Miner struct {
	config   *Config
	logger   zerolog.Logger
	executor Executor
	observer Observer
}

// Option configures a Miner.
type Option func(*Miner)

// WithExecutor sets how candidates of one level are evaluated.
// The default is derived from Config.Workers.
func WithExecutor(e Executor) Option {
	return func(m *Miner) { m.executor = e }
}

// WithObserver sets the receiver of progress events.
func WithObserver(o Observer) Option {
	return func(m *Miner) { m.observer = o }
}

// NewMiner creates a Miner.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMiner(cfg *Config, logger zerolog.Logger, opts ...Option) (*Miner, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m := &Miner{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "gsp").Logger(),
		executor: NewExecutor(cfg.Workers),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Config returns a copy of the miner configuration.
func (m *Miner) Config() *Config {
	return m.config.Clone()
}

// Mine validates db, searches all frequent levels and, when enabled,
// refines them into exact records.
func (m *Miner) Mine(ctx context.Context, db *sequence.Database) (*Result, error) {
	start := time.Now()
	if err := ValidateDatabase(db, m.config.Constraints); err != nil {
		return nil, err
	}

	counter := NewSupportCounter(db, m.config.Constraints)
	levels, stats, err := m.search(ctx, db, counter)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Levels:    levels,
		Stats:     stats,
		Customers: db.Len(),
	}
	if m.config.Refine {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("mining canceled before refinement: %w", err)
		}
		result.Records = m.refine(counter, levels)
		result.Refined = true
	} else {
		result.Records = flatten(levels)
	}
	result.Duration = time.Since(start)

	m.logger.Info().
		Int("customers", db.Len()).
		Int("levels", len(levels)).
		Int("patterns", len(result.Records)).
		Bool("refined", result.Refined).
		Dur("duration", result.Duration).
		Msg("mining completed")

	return result, nil
}

// Search runs the level-wise search and returns the non-empty frequent
// levels with approximate counts.
func (m *Miner) Search(ctx context.Context, db *sequence.Database) ([]Level, error) {
	if err := ValidateDatabase(db, m.config.Constraints); err != nil {
		return nil, err
	}
	levels, _, err := m.search(ctx, db, NewSupportCounter(db, m.config.Constraints))
	return levels, err
}

// Refine recomputes exact support and customer attribution for every
// pattern of levels against db.
func (m *Miner) Refine(ctx context.Context, db *sequence.Database, levels []Level) ([]SupportRecord, error) {
	if err := ValidateDatabase(db, m.config.Constraints); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.refine(NewSupportCounter(db, m.config.Constraints), levels), nil
}

func (m *Miner) search(ctx context.Context, db *sequence.Database, counter *SupportCounter) ([]Level, []LevelStats, error) {
	var (
		levels []Level
		stats  []LevelStats
	)

	candidates := singletons(db.Items())
	survivors := candidates
	for k := 1; ; k++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("mining canceled at level %d: %w", k, err)
		}
		levelStart := time.Now()

		if k > 1 {
			prev := levels[len(levels)-1].Patterns()
			var err error
			if candidates, err = GenerateCandidates(prev); err != nil {
				return nil, nil, fmt.Errorf("generate level %d: %w", k, err)
			}
			if survivors, err = PruneCandidates(candidates, prev); err != nil {
				return nil, nil, fmt.Errorf("prune level %d: %w", k, err)
			}
		}
		m.observer.LevelStarted(k, len(candidates), len(survivors))

		frequent := m.evaluate(k, counter, survivors)
		st := LevelStats{
			Level:      k,
			Candidates: len(candidates),
			Survivors:  len(survivors),
			Frequent:   len(frequent),
			Duration:   time.Since(levelStart),
		}
		stats = append(stats, st)
		m.observer.LevelCompleted(st)

		m.logger.Debug().
			Int("level", k).
			Int("candidates", st.Candidates).
			Int("survivors", st.Survivors).
			Int("frequent", st.Frequent).
			Int64("duration_ms", st.Duration.Milliseconds()).
			Msg("level completed")

		if len(frequent) == 0 {
			break
		}
		levels = append(levels, Level{Size: k, Records: frequent})
		if m.config.MaxPatternSize > 0 && k >= m.config.MaxPatternSize {
			m.logger.Debug().Int("max_pattern_size", k).Msg("pattern size limit reached")
			break
		}
	}
	return levels, stats, nil
}

// evaluate counts every survivor and returns the frequent ones in input order.
func (m *Miner) evaluate(level int, counter *SupportCounter, survivors []sequence.Pattern) []SupportRecord {
	minSupport := m.config.MinSupport
	counts := make([]int, len(survivors))
	m.executor.Map(len(survivors), func(i int) {
		counts[i] = counter.Approximate(survivors[i], minSupport)
		m.observer.CandidateEvaluated(level)
	})

	frequent := make([]SupportRecord, 0, len(survivors))
	for i, p := range survivors {
		if counts[i] >= minSupport {
			frequent = append(frequent, SupportRecord{Pattern: p, Support: counts[i]})
		}
	}
	return frequent
}

// refine recounts every pattern exactly, preserving level order.
func (m *Miner) refine(counter *SupportCounter, levels []Level) []SupportRecord {
	start := time.Now()
	patterns := flatten(levels)
	records := make([]SupportRecord, len(patterns))
	m.executor.Map(len(patterns), func(i int) {
		records[i] = counter.Exact(patterns[i].Pattern)
	})

	d := time.Since(start)
	m.observer.RefinementCompleted(len(records), d)
	m.logger.Debug().
		Int("patterns", len(records)).
		Int64("duration_ms", d.Milliseconds()).
		Msg("refinement completed")
	return records
}

func singletons(items []sequence.Item) []sequence.Pattern {
	out := make([]sequence.Pattern, len(items))
	for i, it := range items {
		out[i] = sequence.Pattern{sequence.Itemset{it}}
	}
	return out
}

func flatten(levels []Level) []SupportRecord {
	var n int
	for _, l := range levels {
		n += len(l.Records)
	}
	out := make([]SupportRecord, 0, n)
	for _, l := range levels {
		out = append(out, l.Records...)
	}
	return out
}
