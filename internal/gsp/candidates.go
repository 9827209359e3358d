// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import (
	"slices"

	"github.com/tomtom215/seqmine/internal/sequence"
)

// GenerateCandidates builds the size k+1 candidates from the frequent
// patterns of size k. The result is sorted and free of duplicates.
//
// For k = 1 every pair of frequent items a < b yields <{a,b}>, and every
// ordered pair (a, b), a = b included, yields <{a} {b}>. For k > 1 every
// ordered pair of patterns, each pattern with itself included, is joined.
func GenerateCandidates(frequent []sequence.Pattern) ([]sequence.Pattern, error) {
	if len(frequent) == 0 {
		return nil, nil
	}
	k, err := levelSize(frequent)
	if err != nil {
		return nil, err
	}

	var out []sequence.Pattern
	if k == 1 {
		out = bootstrapCandidates(frequent)
	} else {
		for _, a := range frequent {
			for _, b := range frequent {
				if c, ok := joinPair(a, b); ok {
					out = append(out, c)
				}
			}
		}
	}

	slices.SortFunc(out, sequence.Pattern.Compare)
	return slices.CompactFunc(out, sequence.Pattern.Equal), nil
}

// bootstrapCandidates builds the size 2 candidates from frequent items.
func bootstrapCandidates(frequent []sequence.Pattern) []sequence.Pattern {
	items := make([]sequence.Item, 0, len(frequent))
	for _, p := range frequent {
		items = append(items, p.Flatten()...)
	}
	slices.Sort(items)
	items = slices.Compact(items)

	out := make([]sequence.Pattern, 0, len(items)*(len(items)-1)/2+len(items)*len(items))
	for i, a := range items {
		for _, b := range items[i+1:] {
			out = append(out, sequence.Pattern{sequence.Itemset{a, b}})
		}
	}
	for _, a := range items {
		for _, b := range items {
			out = append(out, sequence.Pattern{sequence.Itemset{a}, sequence.Itemset{b}})
		}
	}
	return out
}

// joinPair joins two size k patterns into a size k+1 candidate when a
// without its first item equals b without its last item. The item dropped
// from b is appended to a: as a new itemset if it was alone in b's last
// itemset, otherwise merged into a's last itemset.
func joinPair(a, b sequence.Pattern) (sequence.Pattern, bool) {
	if !dropFirstItem(a).Equal(dropLastItem(b)) {
		return nil, false
	}

	tail := b[len(b)-1]
	item := tail[len(tail)-1]
	out := a.Clone()
	if len(tail) == 1 {
		out = append(out, sequence.Itemset{item})
	} else {
		last := len(out) - 1
		if out[last].Has(item) {
			return nil, false
		}
		out[last] = out[last].With(item)
	}
	return out, true
}

func dropFirstItem(p sequence.Pattern) sequence.Pattern {
	if len(p[0]) == 1 {
		return p[1:]
	}
	out := make(sequence.Pattern, len(p))
	copy(out, p)
	out[0] = p[0][1:]
	return out
}

func dropLastItem(p sequence.Pattern) sequence.Pattern {
	n := len(p) - 1
	if len(p[n]) == 1 {
		return p[:n]
	}
	out := make(sequence.Pattern, len(p))
	copy(out, p)
	out[n] = p[n][:len(p[n])-1]
	return out
}

// levelSize returns the common size of a level's patterns.
func levelSize(level []sequence.Pattern) (int, error) {
	k := level[0].Size()
	for _, p := range level {
		size := p.Size()
		if size == 0 {
			return 0, invariantf("empty pattern %s in candidate set", p)
		}
		if size != k {
			return 0, invariantf("pattern %s has size %d in a level of size %d", p, size, k)
		}
		for _, s := range p {
			if len(s) == 0 {
				return 0, invariantf("pattern %s contains an empty itemset", p)
			}
		}
	}
	return k, nil
}
