// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

/*
Package gsp implements Generalized Sequential Pattern mining.

Given a database of customer sequences, the miner finds every pattern (an
ordered list of itemsets) contained as a subsequence in at least MinSupport
customer sequences, optionally under temporal gap and span constraints.

# Architecture

The package is built bottom-up from five components:

  - Matches: greedy leftmost containment test of a pattern in one sequence
  - SupportCounter: approximate (early exit) and exact (with customer
    attribution) counting over the database
  - GenerateCandidates: the size k+1 join of size k frequent patterns, with
    a dedicated bootstrap for k = 1
  - PruneCandidates: drops candidates with an infrequent direct subsequence
  - Miner: the level-wise loop and the optional exact refinement

Levels are strictly sequential. Candidates within a level are independent
and are evaluated through an Executor, sequential by default.

# Counting

The search counts with SupportCounter.Approximate, which stops scanning once
the frequent/infrequent decision is known. Its value is a bound, not the
support. Refinement recounts every frequent pattern with
SupportCounter.Exact and is enabled by default; disable it only when counts
are not reported.

# Usage

	cfg := gsp.DefaultConfig()
	cfg.MinSupport = 2
	miner, err := gsp.NewMiner(cfg, logger)
	if err != nil {
	    return err
	}
	result, err := miner.Mine(ctx, db)
	if err != nil {
	    return err
	}
	for _, r := range result.Records {
	    fmt.Println(r.Pattern, r.Support, r.Customers)
	}

# Errors

Malformed databases fail with *InvalidInputError, bad parameters with
*ConfigurationError and internal inconsistencies with
*InvariantViolationError. Each wraps a sentinel usable with errors.Is. A run
either completes or returns an error; there are no partial results.

# Thread Safety

A Miner may be shared between goroutines. The database must not be
modified while a run reads it. Cancellation is observed between levels only.
*/
package gsp
