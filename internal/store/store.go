// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Package store persists mining runs in BadgerDB.
//
// Each run is stored twice in one transaction: the full run under
// "run:<id>" and a small summary under "summary:<id>" so that listing does
// not decode every pattern. Values are JSON.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/metrics"
)

const (
	prefixRun     = "run:"
	prefixSummary = "summary:"
)

var (
	// ErrRunNotFound is returned for unknown run IDs.
	ErrRunNotFound = errors.New("run not found")

	// ErrStoreClosed is returned after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// Config configures the run store.
type Config struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory, for tests and dry runs.
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Compression enables Snappy block compression.
	Compression bool
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return errors.New("path is required unless in-memory")
	}
	return nil
}

// Run is a stored mining run.
type Run struct {
	ID         string              `json:"id"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at"`
	Input      string              `json:"input"`
	Params     gsp.Config          `json:"params"`
	Customers  int                 `json:"customers"`
	Refined    bool                `json:"refined"`
	Levels     []gsp.LevelStats    `json:"levels"`
	Records    []gsp.SupportRecord `json:"records"`
}

// Summary describes a run without its patterns.
type Summary struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Input      string    `json:"input"`
	MinSupport int       `json:"min_support"`
	Customers  int       `json:"customers"`
	Patterns   int       `json:"patterns"`
	Levels     int       `json:"levels"`
}

// Summarize returns the summary of r.
func (r *Run) Summarize() Summary {
	return Summary{
		ID:         r.ID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Input:      r.Input,
		MinSupport: r.Params.MinSupport,
		Customers:  r.Customers,
		Patterns:   len(r.Records),
		Levels:     len(r.Levels),
	}
}

// NewRun builds a Run from a mining result.
func NewRun(id, input string, params *gsp.Config, result *gsp.Result, startedAt time.Time) *Run {
	if id == "" {
		id = uuid.New().String()
	}
	return &Run{
		ID:         id,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(result.Duration),
		Input:      input,
		Params:     *params,
		Customers:  result.Customers,
		Refined:    result.Refined,
		Levels:     result.Stats,
		Records:    result.Records,
	}
}

// Store is a BadgerDB-backed run store. It is safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// Open opens or creates the store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg *Config, logger zerolog.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.Compression {
		opts.Compression = options.Snappy
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{db: db, logger: logger.With().Str("component", "store").Logger()}
	s.logger.Debug().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("run store opened")
	return s, nil
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	return nil
}

// SaveRun writes run, replacing any run with the same ID. An empty ID is
// filled with a new UUID.
func (s *Store) SaveRun(ctx context.Context, run *Run) (err error) {
	defer func() { metrics.RecordStoreOperation("save", err) }()
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	full, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	summary, err := json.Marshal(run.Summarize())
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(prefixRun+run.ID), full); err != nil {
			return err
		}
		return txn.Set([]byte(prefixSummary+run.ID), summary)
	})
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}

	s.logger.Debug().Str("run_id", run.ID).Int("patterns", len(run.Records)).Msg("run saved")
	return nil
}

// GetRun loads a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (run *Run, err error) {
	defer func() { metrics.RecordStoreOperation("get", ignoreNotFound(err)) }()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run = &Run{}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixRun + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRunNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, run)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns all run summaries, most recent first.
func (s *Store) ListRuns(ctx context.Context) (summaries []Summary, err error) {
	defer func() { metrics.RecordStoreOperation("list", err) }()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixSummary)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			var sum Summary
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &sum)
			}); err != nil {
				s.logger.Warn().Err(err).Str("key", string(item.Key())).Msg("skipping unreadable run summary")
				continue
			}
			summaries = append(summaries, sum)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	slices.SortFunc(summaries, func(a, b Summary) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return summaries, nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id string) (err error) {
	defer func() { metrics.RecordStoreOperation("delete", ignoreNotFound(err)) }()
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(prefixRun + id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRunNotFound
		} else if err != nil {
			return err
		}
		if err := txn.Delete([]byte(prefixRun + id)); err != nil {
			return err
		}
		return txn.Delete([]byte(prefixSummary + id))
	})
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	return nil
}

// RunGC reclaims value log space until nothing is left to rewrite.
func (s *Store) RunGC() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run GC: %w", err)
		}
	}
}

// Close closes the database. Further calls return nil.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrRunNotFound) {
		return nil
	}
	return err
}
