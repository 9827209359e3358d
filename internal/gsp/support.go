// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import (
	"slices"

	"github.com/RoaringBitmap/roaring"

	"github.com/tomtom215/seqmine/internal/sequence"
)

// SupportRecord is a pattern with its support count.
type SupportRecord struct {
	// Pattern is the frequent sequence.
	Pattern sequence.Pattern `json:"pattern"`

	// Support is the number of matching customers. When Exact is false the
	// value is only a bound that classifies the pattern against the
	// threshold it was counted with.
	Support int `json:"support"`

	// Customers lists the matching customer IDs in database scan order.
	// Only populated for exact records.
	Customers []string `json:"customers,omitempty"`

	// Exact is true when Support is the true count.
	Exact bool `json:"exact"`
}

// SupportCounter counts pattern occurrences over a read-only database.
//
// An inverted index from item to the customers holding it restricts every
// scan to customers that own all items of the pattern. Customers outside
// that intersection cannot match, so narrowing the scan changes neither the
// exact count nor the frequent/infrequent decision of the approximate count.
type SupportCounter struct {
	db          *sequence.Database
	constraints Constraints
	index       map[sequence.Item]*roaring.Bitmap
}

// NewSupportCounter indexes db for counting under c.
func NewSupportCounter(db *sequence.Database, c Constraints) *SupportCounter {
	index := make(map[sequence.Item]*roaring.Bitmap)
	for i := 0; i < db.Len(); i++ {
		_, seq := db.At(i)
		for _, el := range seq {
			for _, it := range el.Items {
				bm, ok := index[it]
				if !ok {
					bm = roaring.New()
					index[it] = bm
				}
				bm.Add(uint32(i))
			}
		}
	}
	for _, bm := range index {
		bm.RunOptimize()
	}
	return &SupportCounter{db: db, constraints: c, index: index}
}

// ItemSupport returns the number of customers holding item anywhere in
// their history.
func (sc *SupportCounter) ItemSupport(item sequence.Item) int {
	bm, ok := sc.index[item]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// Approximate scans customers in order and stops as soon as the outcome
// against minThreshold is decided: when the running total exceeds it, or
// when the remaining customers cannot lift the total up to it.
//
// The result is >= minThreshold exactly when the true support is, but it
// is not the true support and must not be reported as such.
func (sc *SupportCounter) Approximate(p sequence.Pattern, minThreshold int) int {
	eligible := sc.eligible(p)
	remaining := int(eligible.GetCardinality())
	total := 0
	if total+remaining < minThreshold {
		return total
	}

	it := eligible.Iterator()
	for it.HasNext() {
		_, seq := sc.db.At(int(it.Next()))
		if match(seq, p, sc.constraints, nil) {
			total++
		}
		remaining--
		if total > minThreshold || total+remaining < minThreshold {
			return total
		}
	}
	return total
}

// Exact scans every eligible customer and returns the true support together
// with the matching customer IDs in scan order.
func (sc *SupportCounter) Exact(p sequence.Pattern) SupportRecord {
	matched := roaring.New()
	it := sc.eligible(p).Iterator()
	for it.HasNext() {
		idx := it.Next()
		_, seq := sc.db.At(int(idx))
		if match(seq, p, sc.constraints, nil) {
			matched.Add(idx)
		}
	}

	customers := make([]string, 0, matched.GetCardinality())
	for _, idx := range matched.ToArray() {
		id, _ := sc.db.At(int(idx))
		customers = append(customers, id)
	}
	return SupportRecord{
		Pattern:   p,
		Support:   len(customers),
		Customers: customers,
		Exact:     true,
	}
}

// eligible returns the customers holding every item of p.
func (sc *SupportCounter) eligible(p sequence.Pattern) *roaring.Bitmap {
	items := p.Flatten()
	slices.Sort(items)
	items = slices.Compact(items)

	bitmaps := make([]*roaring.Bitmap, 0, len(items))
	for _, it := range items {
		bm, ok := sc.index[it]
		if !ok {
			return roaring.New()
		}
		bitmaps = append(bitmaps, bm)
	}
	if len(bitmaps) == 0 {
		all := roaring.New()
		all.AddRange(0, uint64(sc.db.Len()))
		return all
	}

	slices.SortFunc(bitmaps, func(a, b *roaring.Bitmap) int {
		return int(a.GetCardinality()) - int(b.GetCardinality())
	})
	out := bitmaps[0].Clone()
	for _, bm := range bitmaps[1:] {
		out.And(bm)
		if out.IsEmpty() {
			break
		}
	}
	return out
}
