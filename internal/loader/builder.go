// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package loader

import (
	"strings"
	"time"

	"github.com/tomtom215/seqmine/internal/sequence"
)

// builder groups transaction rows into per-customer sequences.
type builder struct {
	timed     bool
	separator string

	ids     []string
	pending map[string][]pendingElement
	rows    int
}

type pendingElement struct {
	day   time.Time
	items []sequence.Item
}

func newBuilder(timed bool, separator string) *builder {
	return &builder{
		timed:     timed,
		separator: separator,
		pending:   make(map[string][]pendingElement),
	}
}

// add appends one row. Timed rows must arrive ordered by customer and day.
func (b *builder) add(customer string, day time.Time, cell string) {
	b.rows++
	items := b.split(cell)
	if len(items) == 0 {
		return
	}

	els, seen := b.pending[customer]
	if !seen {
		b.ids = append(b.ids, customer)
	}
	if b.timed && len(els) > 0 && els[len(els)-1].day.Equal(day) {
		last := &els[len(els)-1]
		last.items = append(last.items, items...)
	} else {
		els = append(els, pendingElement{day: day, items: items})
	}
	b.pending[customer] = els
}

func (b *builder) split(cell string) []sequence.Item {
	if b.separator == "" {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return nil
		}
		return []sequence.Item{sequence.Item(cell)}
	}
	parts := strings.Split(cell, b.separator)
	out := make([]sequence.Item, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, sequence.Item(p))
		}
	}
	return out
}

func (b *builder) database() *sequence.Database {
	db := sequence.NewDatabase()
	for _, id := range b.ids {
		els := b.pending[id]
		seq := make(sequence.Sequence, len(els))
		for i, e := range els {
			seq[i] = sequence.Element{Items: sequence.NewItemset(e.items...), Time: e.day}
		}
		db.Add(id, seq)
	}
	return db
}
