// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package sequence

import (
	"slices"
	"time"
)

// Element is one timestamped transaction in a customer's history.
type Element struct {
	// Items bought together.
	Items Itemset `json:"items"`

	// Time of the transaction. The zero value means no timestamp.
	Time time.Time `json:"time,omitzero"`
}

// NewElement builds an element from a timestamp and item names.
func NewElement(t time.Time, items ...string) Element {
	return Element{Items: ItemsetOf(items...), Time: t}
}

// HasTime reports whether the element carries a timestamp.
func (e Element) HasTime() bool { return !e.Time.IsZero() }

// Sequence is a customer's time-ordered transaction history.
type Sequence []Element

// Database maps customer identifiers to sequences and fixes the order in
// which customers are scanned.
type Database struct {
	ids  []string
	seqs map[string]Sequence
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{seqs: make(map[string]Sequence)}
}

// FromMap builds a database whose scan order is the sorted customer IDs.
func FromMap(m map[string]Sequence) *Database {
	db := &Database{
		ids:  make([]string, 0, len(m)),
		seqs: make(map[string]Sequence, len(m)),
	}
	for id, seq := range m {
		db.ids = append(db.ids, id)
		db.seqs[id] = seq
	}
	slices.Sort(db.ids)
	return db
}

// Add appends a customer. Adding an existing ID replaces its sequence
// without changing its scan position.
func (db *Database) Add(id string, seq Sequence) {
	if _, ok := db.seqs[id]; !ok {
		db.ids = append(db.ids, id)
	}
	db.seqs[id] = seq
}

// Len returns the number of customers.
func (db *Database) Len() int { return len(db.ids) }

// CustomerIDs returns the customer IDs in scan order.
func (db *Database) CustomerIDs() []string {
	return slices.Clone(db.ids)
}

// At returns the i-th customer in scan order.
func (db *Database) At(i int) (string, Sequence) {
	id := db.ids[i]
	return id, db.seqs[id]
}

// Sequence returns the history of one customer.
func (db *Database) Sequence(id string) (Sequence, bool) {
	s, ok := db.seqs[id]
	return s, ok
}

// Items returns the sorted distinct items appearing anywhere in the database.
func (db *Database) Items() []Item {
	seen := make(map[Item]struct{})
	for _, seq := range db.seqs {
		for _, el := range seq {
			for _, it := range el.Items {
				seen[it] = struct{}{}
			}
		}
	}
	out := make([]Item, 0, len(seen))
	for it := range seen {
		out = append(out, it)
	}
	slices.Sort(out)
	return out
}

// DaysBetween returns the number of calendar days from one timestamp to
// another, each taken in its own location. Time of day is ignored.
func DaysBetween(from, to time.Time) int {
	return dayNumber(to) - dayNumber(from)
}

func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
