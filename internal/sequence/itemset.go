// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package sequence

import (
	"slices"
	"strings"
)

// Item is an opaque, totally ordered symbol.
type Item string

// Itemset is a sorted, duplicate-free set of items.
// Construct with NewItemset to establish the ordering invariant.
type Itemset []Item

// NewItemset returns the sorted, de-duplicated itemset of the given items.
// Input may be in any order and may contain repeats.
func NewItemset(items ...Item) Itemset {
	if len(items) == 0 {
		return Itemset{}
	}
	out := make(Itemset, len(items))
	copy(out, items)
	slices.Sort(out)
	return slices.Compact(out)
}

// ItemsetOf is a convenience for building an itemset from strings.
func ItemsetOf(items ...string) Itemset {
	conv := make([]Item, len(items))
	for i, s := range items {
		conv[i] = Item(s)
	}
	return NewItemset(conv...)
}

// Len returns the number of items.
func (s Itemset) Len() int { return len(s) }

// Has reports whether item is a member of the set.
func (s Itemset) Has(item Item) bool {
	_, found := slices.BinarySearch(s, item)
	return found
}

// Contains reports whether s is a superset of other.
// Both sets must be sorted; the check is a single merge walk.
func (s Itemset) Contains(other Itemset) bool {
	if len(other) > len(s) {
		return false
	}
	i := 0
	for _, want := range other {
		for i < len(s) && s[i] < want {
			i++
		}
		if i == len(s) || s[i] != want {
			return false
		}
		i++
	}
	return true
}

// Compare orders itemsets lexicographically; a proper prefix sorts first.
func (s Itemset) Compare(other Itemset) int {
	return slices.Compare(s, other)
}

// Equal reports whether both itemsets hold the same items.
func (s Itemset) Equal(other Itemset) bool {
	return slices.Equal(s, other)
}

// Clone returns an independent copy.
func (s Itemset) Clone() Itemset {
	return slices.Clone(s)
}

// Without returns a copy of s with the item at index i removed.
func (s Itemset) Without(i int) Itemset {
	out := make(Itemset, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// With returns a copy of s with item inserted at its sorted position.
// If item is already present the copy is returned unchanged.
func (s Itemset) With(item Item) Itemset {
	idx, found := slices.BinarySearch(s, item)
	out := s.Clone()
	if found {
		return out
	}
	return slices.Insert(out, idx, item)
}

// String renders the itemset as {a,b,c}.
func (s Itemset) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, it := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(it))
	}
	b.WriteByte('}')
	return b.String()
}
