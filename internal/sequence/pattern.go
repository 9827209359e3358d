// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package sequence

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Pattern is an ordered list of non-empty itemsets, with no timestamps.
type Pattern []Itemset

// Size returns the total number of items across all itemsets.
func (p Pattern) Size() int {
	n := 0
	for _, s := range p {
		n += len(s)
	}
	return n
}

// Len returns the number of itemsets.
func (p Pattern) Len() int { return len(p) }

// Clone returns a deep copy.
func (p Pattern) Clone() Pattern {
	out := make(Pattern, len(p))
	for i, s := range p {
		out[i] = s.Clone()
	}
	return out
}

// Equal reports structural equality.
func (p Pattern) Equal(other Pattern) bool {
	return slices.EqualFunc(p, other, Itemset.Equal)
}

// Compare orders patterns lexicographically by itemset.
func (p Pattern) Compare(other Pattern) int {
	return slices.CompareFunc(p, other, Itemset.Compare)
}

// Flatten returns the items of p in order, itemset by itemset.
func (p Pattern) Flatten() []Item {
	out := make([]Item, 0, p.Size())
	for _, s := range p {
		out = append(out, s...)
	}
	return out
}

// Contains reports whether sub is a subsequence of p: its itemsets are
// subsets of itemsets of p at strictly increasing positions. Time is not
// considered.
func (p Pattern) Contains(sub Pattern) bool {
	i := 0
	for _, s := range p {
		if i == len(sub) {
			break
		}
		if s.Contains(sub[i]) {
			i++
		}
	}
	return i == len(sub)
}

// Key returns a canonical string that identifies p among all patterns.
// Items are length-prefixed so arbitrary item text cannot collide.
func (p Pattern) Key() string {
	buf := make([]byte, 0, p.Size()*4+len(p))
	for i, s := range p {
		if i > 0 {
			buf = append(buf, '|')
		}
		for _, it := range s {
			buf = strconv.AppendInt(buf, int64(len(it)), 10)
			buf = append(buf, ':')
			buf = append(buf, it...)
		}
	}
	return string(buf)
}

// String renders the pattern as <{a,b} {c}>.
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return "<" + strings.Join(parts, " ") + ">"
}

// ParsePattern parses the String form of a pattern. The angle brackets are
// optional and itemsets may be separated by any amount of whitespace.
// Items cannot contain braces, commas or whitespace in this notation.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("parse pattern: empty pattern")
	}

	var out Pattern
	for s != "" {
		if s[0] != '{' {
			return nil, fmt.Errorf("parse pattern: expected '{' at %q", s)
		}
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return nil, fmt.Errorf("parse pattern: unterminated itemset %q", s)
		}
		body := strings.TrimSpace(s[1:end])
		if body == "" {
			return nil, fmt.Errorf("parse pattern: empty itemset")
		}
		fields := strings.Split(body, ",")
		items := make([]Item, 0, len(fields))
		for _, f := range fields {
			f = strings.TrimSpace(f)
			if f == "" {
				return nil, fmt.Errorf("parse pattern: empty item in %q", body)
			}
			items = append(items, Item(f))
		}
		out = append(out, NewItemset(items...))
		s = strings.TrimSpace(s[end+1:])
	}
	return out, nil
}

// MustParsePattern is ParsePattern for literals known to be valid.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

// SortPatterns sorts in canonical order.
func SortPatterns(ps []Pattern) {
	slices.SortFunc(ps, Pattern.Compare)
}
