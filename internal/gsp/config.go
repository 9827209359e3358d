// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import "fmt"

// Constraints bounds the time between matched elements of an occurrence.
// All values are in days.
type Constraints struct {
	// MinGap is the minimum distance between consecutive matched elements.
	// Default: 0.
	MinGap int `json:"min_gap"`

	// MaxGap is the maximum distance between consecutive matched elements.
	// Default: 15.
	MaxGap int `json:"max_gap"`

	// MaxSpan is the maximum distance between the first and last matched
	// elements. Default: 60.
	MaxSpan int `json:"max_span"`

	// UseTimeConstraints enables gap and span checks. When false the bounds
	// and all timestamps are ignored. Default: false.
	UseTimeConstraints bool `json:"use_time_constraints"`
}

// Config contains all parameters of a mining run.
type Config struct {
	// MinSupport is the number of customers a pattern must occur in to be
	// frequent. Default: 2.
	MinSupport int `json:"min_support"`

	// Constraints holds the temporal matching bounds.
	Constraints Constraints `json:"constraints"`

	// Workers is the number of goroutines evaluating candidates within a
	// level. Values below 2 evaluate sequentially. Default: 1.
	Workers int `json:"workers"`

	// Refine recomputes exact support and customer attribution for every
	// frequent pattern after the search. Default: true.
	Refine bool `json:"refine"`

	// MaxPatternSize stops the search after patterns of this many items.
	// Zero means unbounded. Default: 0.
	MaxPatternSize int `json:"max_pattern_size"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		MinSupport: 2,
		Constraints: Constraints{
			MinGap:  0,
			MaxGap:  15,
			MaxSpan: 60,
		},
		Workers: 1,
		Refine:  true,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MinSupport < 1 {
		return &ConfigurationError{Field: "min_support", Reason: fmt.Sprintf("must be at least 1, got %d", c.MinSupport)}
	}
	if c.Workers < 0 {
		return &ConfigurationError{Field: "workers", Reason: fmt.Sprintf("must be non-negative, got %d", c.Workers)}
	}
	if c.MaxPatternSize < 0 {
		return &ConfigurationError{Field: "max_pattern_size", Reason: fmt.Sprintf("must be non-negative, got %d", c.MaxPatternSize)}
	}
	return c.Constraints.Validate()
}

// Validate checks the temporal bounds. Bounds are only checked when time
// constraints are enabled.
func (c Constraints) Validate() error {
	if !c.UseTimeConstraints {
		return nil
	}
	if c.MinGap < 0 {
		return &ConfigurationError{Field: "min_gap", Reason: fmt.Sprintf("must be non-negative, got %d", c.MinGap)}
	}
	if c.MaxGap < 0 {
		return &ConfigurationError{Field: "max_gap", Reason: fmt.Sprintf("must be non-negative, got %d", c.MaxGap)}
	}
	if c.MaxSpan < 0 {
		return &ConfigurationError{Field: "max_span", Reason: fmt.Sprintf("must be non-negative, got %d", c.MaxSpan)}
	}
	if c.MinGap > c.MaxGap {
		return &ConfigurationError{Field: "min_gap", Reason: fmt.Sprintf("must not exceed max_gap (%d > %d)", c.MinGap, c.MaxGap)}
	}
	if c.MaxSpan < c.MaxGap {
		return &ConfigurationError{Field: "max_span", Reason: fmt.Sprintf("must be at least max_gap (%d < %d)", c.MaxSpan, c.MaxGap)}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
