// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

/*
Package sequence defines the data model shared by the miner, the loader and the
reporting layers.

# Model

A Database maps customer identifiers to Sequences. A Sequence is a time-ordered
list of Elements, and each Element is an Itemset (a sorted, duplicate-free set
of Items) with an optional timestamp. Patterns are sequences of itemsets
without timestamps.

	db := sequence.NewDatabase()
	db.Add("c1", sequence.Sequence{
	    sequence.NewElement(day0, "a", "b"),
	    sequence.NewElement(day5, "c"),
	})

	p := sequence.MustParsePattern("<{a,b} {c}>")
	fmt.Println(p.Size(), p.Len()) // 3 2

# Ordering

Items are compared byte-wise. Itemsets and Patterns compare lexicographically
element by element, with a proper prefix ordering first. This ordering is the
canonical order for candidate lists and mining output.

# Thread Safety

Values are immutable after construction by convention. A Database must not be
modified while a mining run reads it.
*/
package sequence
