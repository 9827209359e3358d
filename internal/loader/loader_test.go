// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package loader

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/seqmine/internal/sequence"
)

func openLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := Open(zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tx.csv")
	if err := os.WriteFile(path, []byte(strings.TrimLeft(body, "\n")), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func date(d int) time.Time { return time.Date(2024, 1, 1+d, 0, 0, 0, 0, time.UTC) }

func TestLoadTimedCSV(t *testing.T) {
	path := writeCSV(t, `
customer_id,day,item
c2,2024-01-11,c
c1,2024-01-01,b
c1,2024-01-01,a
c2,2024-01-01,a
c1,2024-01-06,c
c2,2024-01-11,b
,2024-01-02,x
c3,2024-01-02,
`)
	db, err := openLoader(t).Load(context.Background(), Source{
		Path:           path,
		CustomerColumn: "customer_id",
		TimeColumn:     "day",
		ItemColumn:     "item",
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ids := db.CustomerIDs(); !slices.Equal(ids, []string{"c1", "c2"}) {
		t.Fatalf("CustomerIDs() = %v, want [c1 c2]", ids)
	}

	tests := []struct {
		customer string
		want     sequence.Sequence
	}{
		{"c1", sequence.Sequence{sequence.NewElement(date(0), "a", "b"), sequence.NewElement(date(5), "c")}},
		{"c2", sequence.Sequence{sequence.NewElement(date(0), "a"), sequence.NewElement(date(10), "b", "c")}},
	}
	for _, tt := range tests {
		t.Run(tt.customer, func(t *testing.T) {
			got, ok := db.Sequence(tt.customer)
			if !ok {
				t.Fatalf("customer %s missing", tt.customer)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if !got[i].Items.Equal(tt.want[i].Items) {
					t.Errorf("element %d items = %v, want %v", i, got[i].Items, tt.want[i].Items)
				}
				if !got[i].Time.Equal(tt.want[i].Time) {
					t.Errorf("element %d time = %v, want %v", i, got[i].Time, tt.want[i].Time)
				}
			}
		})
	}
}

func TestLoadUntimedWithSeparator(t *testing.T) {
	path := writeCSV(t, `
cust,basket
b,x+y
a,z
b,y
`)
	db, err := openLoader(t).Load(context.Background(), Source{
		Path:           path,
		Format:         "csv",
		CustomerColumn: "cust",
		ItemColumn:     "basket",
		ItemSeparator:  "+",
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ids := db.CustomerIDs(); !slices.Equal(ids, []string{"b", "a"}) {
		t.Errorf("CustomerIDs() = %v, want first-appearance order [b a]", ids)
	}
	seq, _ := db.Sequence("b")
	if len(seq) != 2 || !seq[0].Items.Equal(sequence.ItemsetOf("x", "y")) || !seq[1].Items.Equal(sequence.ItemsetOf("y")) {
		t.Errorf("sequence b = %v", seq)
	}
	if seq[0].HasTime() {
		t.Error("untimed element carries a timestamp")
	}
}

func TestLoadParquet(t *testing.T) {
	l := openLoader(t)
	path := filepath.Join(t.TempDir(), "tx.parquet")
	copyStmt := `COPY (SELECT * FROM (VALUES ('c1', DATE '2024-01-01', 'a'), ('c1', DATE '2024-01-03', 'b'))
		t(customer_id, day, item)) TO ` + quoteLiteral(path) + ` (FORMAT PARQUET)`
	if _, err := l.conn.ExecContext(context.Background(), copyStmt); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	db, err := l.Load(context.Background(), Source{
		Path:           path,
		CustomerColumn: "customer_id",
		TimeColumn:     "day",
		ItemColumn:     "item",
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	seq, ok := db.Sequence("c1")
	if !ok || len(seq) != 2 || !seq[1].Time.Equal(date(2)) {
		t.Errorf("sequence c1 = %v", seq)
	}
}

func TestLoadErrors(t *testing.T) {
	l := openLoader(t)
	csvPath := writeCSV(t, "customer_id,item\nc1,a\n")

	tests := []struct {
		name string
		src  Source
	}{
		{"missing file", Source{Path: filepath.Join(t.TempDir(), "absent.csv"), CustomerColumn: "customer_id", ItemColumn: "item"}},
		{"unknown column", Source{Path: csvPath, CustomerColumn: "nope", ItemColumn: "item"}},
		{"unknown format", Source{Path: csvPath, Format: "xlsx", CustomerColumn: "customer_id", ItemColumn: "item"}},
		{"missing column names", Source{Path: csvPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.Load(context.Background(), tt.src); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		path, format, want string
	}{
		{"a.csv", "", "csv"},
		{"a.PARQUET", "auto", "parquet"},
		{"a.txt", "auto", "csv"},
		{"a.csv", "parquet", "parquet"},
	}
	for _, tt := range tests {
		got, err := resolveFormat(Source{Path: tt.path, Format: tt.format})
		if err != nil || got != tt.want {
			t.Errorf("resolveFormat(%q, %q) = %q, %v, want %q", tt.path, tt.format, got, err, tt.want)
		}
	}
}

func TestQuoting(t *testing.T) {
	if got := quoteIdent(`we"ird`); got != `"we""ird"` {
		t.Errorf("quoteIdent() = %s", got)
	}
	if got := quoteLiteral("o'neil.csv"); got != "'o''neil.csv'" {
		t.Errorf("quoteLiteral() = %s", got)
	}
}
