// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import (
	"errors"
	"slices"
	"testing"

	"github.com/tomtom215/seqmine/internal/sequence"
)

func TestDirectSubsequences(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"<{a}>", []string{"<>"}},
		{"<{a,b} {c}>", []string{"<{b} {c}>", "<{a} {c}>", "<{a,b}>"}},
		{"<{a} {b} {c}>", []string{"<{b} {c}>", "<{a} {c}>", "<{a} {b}>"}},
		{"<{a} {a}>", []string{"<{a}>", "<{a}>"}},
		{"<{a,b,c}>", []string{"<{b,c}>", "<{a,c}>", "<{a,b}>"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p := pat(tt.pattern)
			got := DirectSubsequences(p)
			if len(got) != p.Size() {
				t.Errorf("len(DirectSubsequences()) = %d, want %d", len(got), p.Size())
			}
			if s := patternStrings(got); !slices.Equal(s, tt.want) {
				t.Errorf("DirectSubsequences() = %v, want %v", s, tt.want)
			}
			if p.String() != tt.pattern {
				t.Errorf("input mutated to %s", p)
			}
		})
	}
}

func TestPruneCandidates(t *testing.T) {
	frequent := []sequence.Pattern{pat("<{a,b}>"), pat("<{a} {c}>"), pat("<{b} {c}>")}
	candidates := []sequence.Pattern{pat("<{a,b} {c}>"), pat("<{a} {b} {c}>"), pat("<{a} {c} {c}>")}

	got, err := PruneCandidates(candidates, frequent)
	if err != nil {
		t.Fatalf("PruneCandidates() error = %v", err)
	}
	want := []string{"<{a,b} {c}>"}
	if s := patternStrings(got); !slices.Equal(s, want) {
		t.Errorf("PruneCandidates() = %v, want %v", s, want)
	}
}

func TestPruneCandidatesInvariants(t *testing.T) {
	tests := []struct {
		name       string
		candidates []sequence.Pattern
		frequent   []sequence.Pattern
	}{
		{"candidate size mismatch", []sequence.Pattern{pat("<{a} {b} {c}>")}, []sequence.Pattern{pat("<{a}>")}},
		{"mixed frequent sizes", []sequence.Pattern{pat("<{a} {b}>")}, []sequence.Pattern{pat("<{a}>"), pat("<{a,b}>")}},
		{"empty frequent set", []sequence.Pattern{pat("<{a} {b}>")}, nil},
		{"empty candidate", []sequence.Pattern{{}}, []sequence.Pattern{pat("<{a}>")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PruneCandidates(tt.candidates, tt.frequent)
			if !errors.Is(err, ErrInvariantViolation) {
				t.Errorf("PruneCandidates() error = %v, want ErrInvariantViolation", err)
			}
		})
	}
}
