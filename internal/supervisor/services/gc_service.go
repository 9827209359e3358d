// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector reclaims storage. *store.Store satisfies it.
type GarbageCollector interface {
	RunGC() error
}

// GCService runs a GarbageCollector on a fixed interval.
type GCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewGCService creates the service. A non-positive interval means 10m.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *GCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &GCService{gc: gc, interval: interval, logger: logger}
}

// Serve implements suture.Service. A GC error ends the run so that the
// supervisor restarts the service with backoff.
func (s *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.RunGC(); err != nil {
				return fmt.Errorf("store GC: %w", err)
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("store GC completed")
		}
	}
}

func (s *GCService) String() string {
	return "store-gc"
}
