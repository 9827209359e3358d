// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import "golang.org/x/sync/errgroup"

// Executor runs n independent tasks and returns when all have finished.
// Task i must only write to state owned by index i.
type Executor interface {
	Map(n int, fn func(i int))
}

// SequentialExecutor runs tasks one after another on the calling goroutine.
type SequentialExecutor struct{}

// Map implements Executor.
func (SequentialExecutor) Map(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

// ParallelExecutor runs tasks on a bounded number of goroutines.
type ParallelExecutor struct {
	Workers int
}

// Map implements Executor.
func (e ParallelExecutor) Map(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(max(e.Workers, 1))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // tasks never return errors
}

// NewExecutor returns a ParallelExecutor for workers > 1 and a
// SequentialExecutor otherwise.
func NewExecutor(workers int) Executor {
	if workers > 1 {
		return ParallelExecutor{Workers: workers}
	}
	return SequentialExecutor{}
}
