// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import "github.com/tomtom215/seqmine/internal/sequence"

// ValidateDatabase checks that db can be mined under c. Every customer needs
// a non-empty sequence of non-empty, normalized itemsets. With time
// constraints enabled every element also needs a timestamp, in
// non-decreasing order within each sequence.
func ValidateDatabase(db *sequence.Database, c Constraints) error {
	if db == nil || db.Len() == 0 {
		return &InvalidInputError{Element: -1, Reason: "database is empty"}
	}

	for i := 0; i < db.Len(); i++ {
		id, seq := db.At(i)
		if len(seq) == 0 {
			return &InvalidInputError{CustomerID: id, Element: -1, Reason: "sequence is empty"}
		}
		for j, el := range seq {
			if len(el.Items) == 0 {
				return &InvalidInputError{CustomerID: id, Element: j, Reason: "itemset is empty"}
			}
			if !isNormalized(el.Items) {
				return &InvalidInputError{CustomerID: id, Element: j, Reason: "itemset is not sorted and distinct"}
			}
			if !c.UseTimeConstraints {
				continue
			}
			if !el.HasTime() {
				return &InvalidInputError{CustomerID: id, Element: j, Reason: "timestamp missing with time constraints enabled"}
			}
			if j > 0 && el.Time.Before(seq[j-1].Time) {
				return &InvalidInputError{CustomerID: id, Element: j, Reason: "timestamps are not in ascending order"}
			}
		}
	}
	return nil
}

func isNormalized(s sequence.Itemset) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] >= s[i] {
			return false
		}
	}
	return true
}
