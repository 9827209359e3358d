// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import "github.com/tomtom215/seqmine/internal/sequence"

// DirectSubsequences returns every pattern obtained from p by deleting one
// item. A singleton itemset is removed whole. The result has p.Size()
// entries and may repeat a pattern.
func DirectSubsequences(p sequence.Pattern) []sequence.Pattern {
	out := make([]sequence.Pattern, 0, p.Size())
	for i, s := range p {
		if len(s) == 1 {
			sub := make(sequence.Pattern, 0, len(p)-1)
			sub = append(sub, p[:i]...)
			out = append(out, append(sub, p[i+1:]...))
			continue
		}
		for j := range s {
			sub := make(sequence.Pattern, len(p))
			copy(sub, p)
			sub[i] = s.Without(j)
			out = append(out, sub)
		}
	}
	return out
}

// PruneCandidates keeps the candidates whose direct subsequences are all in
// frequent. Candidates must have size k+1 where k is the size of every
// frequent pattern. Input order is preserved.
func PruneCandidates(candidates, frequent []sequence.Pattern) ([]sequence.Pattern, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if len(frequent) == 0 {
		return nil, invariantf("pruning %d candidates against an empty frequent set", len(candidates))
	}
	k, err := levelSize(frequent)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(frequent))
	for _, p := range frequent {
		known[p.Key()] = struct{}{}
	}

	survivors := make([]sequence.Pattern, 0, len(candidates))
	for _, c := range candidates {
		if size := c.Size(); size != k+1 {
			return nil, invariantf("candidate %s has size %d, expected %d", c, size, k+1)
		}
		if allKnown(DirectSubsequences(c), known) {
			survivors = append(survivors, c)
		}
	}
	return survivors, nil
}

func allKnown(subs []sequence.Pattern, known map[string]struct{}) bool {
	for _, s := range subs {
		if _, ok := known[s.Key()]; !ok {
			return false
		}
	}
	return true
}
