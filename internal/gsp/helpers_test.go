// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/seqmine/internal/sequence"
)

var day0 = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func day(n int) time.Time { return day0.AddDate(0, 0, n) }

func el(d int, items ...string) sequence.Element {
	return sequence.NewElement(day(d), items...)
}

func pat(s string) sequence.Pattern { return sequence.MustParsePattern(s) }

// scenarioDB is the two-customer database used throughout the tests:
// c1: ({a,b}, day 0), ({c}, day 5)
// c2: ({a}, day 0), ({b,c}, day 10)
func scenarioDB() *sequence.Database {
	db := sequence.NewDatabase()
	db.Add("c1", sequence.Sequence{el(0, "a", "b"), el(5, "c")})
	db.Add("c2", sequence.Sequence{el(0, "a"), el(10, "b", "c")})
	return db
}

// randomDB builds a reproducible database over a small alphabet so that
// patterns of several levels become frequent.
func randomDB(seed uint64, customers int) *sequence.Database {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	alphabet := []string{"a", "b", "c", "d", "e"}

	db := sequence.NewDatabase()
	for c := 0; c < customers; c++ {
		n := 1 + rng.IntN(6)
		seq := make(sequence.Sequence, 0, n)
		d := 0
		for i := 0; i < n; i++ {
			d += rng.IntN(8)
			size := 1 + rng.IntN(3)
			items := make([]string, size)
			for j := range items {
				items[j] = alphabet[rng.IntN(len(alphabet))]
			}
			seq = append(seq, el(d, items...))
		}
		db.Add(fmt.Sprintf("c%03d", c), seq)
	}
	return db
}

// bruteSupport counts matches without the support counter.
func bruteSupport(db *sequence.Database, p sequence.Pattern, c Constraints) int {
	n := 0
	for i := 0; i < db.Len(); i++ {
		_, seq := db.At(i)
		if Matches(seq, p, c) {
			n++
		}
	}
	return n
}

func newTestMiner(t *testing.T, cfg *Config, opts ...Option) *Miner {
	t.Helper()
	m, err := NewMiner(cfg, zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("NewMiner() error = %v", err)
	}
	return m
}

func recordKeys(records []SupportRecord) map[string]SupportRecord {
	out := make(map[string]SupportRecord, len(records))
	for _, r := range records {
		out[r.Pattern.Key()] = r
	}
	return out
}

func patternStrings(ps []sequence.Pattern) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}
