// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package sequence

import (
	"slices"
	"testing"
	"time"
)

func TestNewItemset(t *testing.T) {
	got := ItemsetOf("c", "a", "b", "a")
	want := Itemset{"a", "b", "c"}
	if !got.Equal(want) {
		t.Errorf("ItemsetOf() = %v, want %v", got, want)
	}
	if empty := NewItemset(); empty.Len() != 0 {
		t.Errorf("NewItemset() len = %d, want 0", empty.Len())
	}
}

func TestItemsetContains(t *testing.T) {
	tests := []struct {
		name  string
		set   Itemset
		other Itemset
		want  bool
	}{
		{"equal", ItemsetOf("a", "b"), ItemsetOf("a", "b"), true},
		{"proper subset", ItemsetOf("a", "b", "c"), ItemsetOf("a", "c"), true},
		{"empty other", ItemsetOf("a"), Itemset{}, true},
		{"missing item", ItemsetOf("a", "c"), ItemsetOf("b"), false},
		{"larger other", ItemsetOf("a"), ItemsetOf("a", "b"), false},
		{"tail missing", ItemsetOf("a", "b"), ItemsetOf("b", "c"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Contains(tt.other); got != tt.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tt.set, tt.other, got, tt.want)
			}
		})
	}
}

func TestItemsetWithWithout(t *testing.T) {
	s := ItemsetOf("a", "c")
	if got := s.With("b"); !got.Equal(ItemsetOf("a", "b", "c")) {
		t.Errorf("With(b) = %v", got)
	}
	if got := s.With("a"); !got.Equal(s) {
		t.Errorf("With(a) = %v, want unchanged", got)
	}
	if got := s.Without(0); !got.Equal(ItemsetOf("c")) {
		t.Errorf("Without(0) = %v", got)
	}
	if !s.Equal(ItemsetOf("a", "c")) {
		t.Errorf("receiver mutated: %v", s)
	}
}

func TestPatternSizeAndLen(t *testing.T) {
	p := MustParsePattern("<{a,b} {c}>")
	if p.Size() != 3 {
		t.Errorf("Size() = %d, want 3", p.Size())
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
	if s := p.String(); s != "<{a,b} {c}>" {
		t.Errorf("String() = %q", s)
	}
}

func TestPatternCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"<{a}>", "<{a}>", 0},
		{"<{a}>", "<{b}>", -1},
		{"<{a}>", "<{a} {b}>", -1},
		{"<{a,b}>", "<{a} {b}>", 1},
		{"<{a} {c}>", "<{a} {b,c}>", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			got := MustParsePattern(tt.a).Compare(MustParsePattern(tt.b))
			if got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPatternKeyDistinguishesStructure(t *testing.T) {
	keys := map[string]string{}
	for _, s := range []string{"<{a,b}>", "<{a} {b}>", "<{ab}>", "<{a} {b} {c}>", "<{a,b,c}>", "<{a} {b,c}>"} {
		k := MustParsePattern(s).Key()
		if prev, dup := keys[k]; dup {
			t.Fatalf("Key collision between %s and %s", prev, s)
		}
		keys[k] = s
	}
}

func TestParsePatternErrors(t *testing.T) {
	for _, in := range []string{"", "<>", "<{}>", "<{a,}>", "<a>", "<{a>"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParsePattern(in); err == nil {
				t.Errorf("ParsePattern(%q) expected error", in)
			}
		})
	}
}

func TestPatternContains(t *testing.T) {
	p := MustParsePattern("<{a,b} {c} {d,e}>")
	tests := []struct {
		sub  string
		want bool
	}{
		{"<{a}>", true},
		{"<{a,b} {e}>", true},
		{"<{b} {c} {d}>", true},
		{"<{a} {b}>", false},
		{"<{c} {a}>", false},
		{"<{c,d}>", false},
		{"<{a} {c} {d} {e}>", false},
	}
	for _, tt := range tests {
		t.Run(tt.sub, func(t *testing.T) {
			if got := p.Contains(MustParsePattern(tt.sub)); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.sub, got, tt.want)
			}
		})
	}
	if !p.Contains(nil) {
		t.Error("Contains(nil) = false, want true")
	}
}

func TestDatabaseOrder(t *testing.T) {
	db := NewDatabase()
	db.Add("z", Sequence{})
	db.Add("a", Sequence{})
	db.Add("z", Sequence{NewElement(time.Time{}, "x")})

	if got := db.CustomerIDs(); !slices.Equal(got, []string{"z", "a"}) {
		t.Errorf("CustomerIDs() = %v, want [z a]", got)
	}
	if _, seq := db.At(0); len(seq) != 1 {
		t.Errorf("replacement not applied")
	}

	m := FromMap(map[string]Sequence{"b": nil, "a": nil, "c": nil})
	if got := m.CustomerIDs(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("FromMap order = %v", got)
	}
}

func TestDatabaseItems(t *testing.T) {
	db := FromMap(map[string]Sequence{
		"c1": {NewElement(time.Time{}, "b", "a"), NewElement(time.Time{}, "c")},
		"c2": {NewElement(time.Time{}, "a")},
	})
	if got := db.Items(); !slices.Equal(got, []Item{"a", "b", "c"}) {
		t.Errorf("Items() = %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same instant", base, 0},
		{"next morning", time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC), 1},
		{"leap day span", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), -2},
		{"sixty days", base.AddDate(0, 0, 60), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(base, tt.to); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}
