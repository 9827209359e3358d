// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package config

import (
	"fmt"

	"github.com/tomtom215/seqmine/internal/validation"
)

// Validate checks field constraints and the rules that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	m := c.Mining
	if m.UseTimeConstraints {
		if m.MinGap > m.MaxGap {
			return fmt.Errorf("mining.min_gap (%d) must not exceed mining.max_gap (%d)", m.MinGap, m.MaxGap)
		}
		if m.MaxSpan < m.MaxGap {
			return fmt.Errorf("mining.max_span (%d) must be at least mining.max_gap (%d)", m.MaxSpan, m.MaxGap)
		}
		if c.Input.TimeColumn == "" {
			return fmt.Errorf("input.time_column is required when mining.use_time_constraints is set")
		}
	}
	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("store.path is required when the store is enabled")
	}
	return nil
}
