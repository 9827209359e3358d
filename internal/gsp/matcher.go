// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import (
	"time"

	"github.com/tomtom215/seqmine/internal/sequence"
)

// Matches reports whether p occurs in seq as a subsequence under c.
//
// Each itemset of p is matched, in order, to the earliest later element of
// seq that contains it. With time constraints enabled, a matched element
// whose distance from the previous match falls outside [MinGap, MaxGap], or
// whose distance from the first match exceeds MaxSpan, fails the whole match
// immediately.
func Matches(seq sequence.Sequence, p sequence.Pattern, c Constraints) bool {
	return match(seq, p, c, nil)
}

// MatchPositions is Matches that also returns the matched element indexes.
// The indexes are strictly increasing.
func MatchPositions(seq sequence.Sequence, p sequence.Pattern, c Constraints) ([]int, bool) {
	positions := make([]int, 0, len(p))
	if !match(seq, p, c, &positions) {
		return nil, false
	}
	return positions, true
}

func match(seq sequence.Sequence, p sequence.Pattern, c Constraints, positions *[]int) bool {
	if len(p) > len(seq) {
		return false
	}

	start := 0
	var first, last time.Time
	for n, want := range p {
		found := -1
		for i := start; i < len(seq); i++ {
			if seq[i].Items.Contains(want) {
				found = i
				break
			}
		}
		if found < 0 {
			return false
		}

		if c.UseTimeConstraints {
			d := seq[found].Time
			if n == 0 {
				first = d
			} else {
				gap := sequence.DaysBetween(last, d)
				if gap > c.MaxGap || gap < c.MinGap || sequence.DaysBetween(first, d) > c.MaxSpan {
					return false
				}
			}
			last = d
		}

		if positions != nil {
			*positions = append(*positions, found)
		}
		start = found + 1
	}
	return true
}
