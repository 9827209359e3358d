// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Package report renders mined patterns as JSON, CSV or an aligned text
// table, and filters them by support, size and content.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/sequence"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatText Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatText:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, csv or text)", s)
	}
}

// Filter selects records. Zero fields do not filter.
type Filter struct {
	MinSupport int
	MinSize    int
	MaxSize    int

	// Contains keeps only patterns that have it as a subsequence.
	Contains sequence.Pattern
}

// Apply returns the records that pass f, in their original order.
func (f Filter) Apply(records []gsp.SupportRecord) []gsp.SupportRecord {
	out := make([]gsp.SupportRecord, 0, len(records))
	for _, r := range records {
		if f.keep(&r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) keep(r *gsp.SupportRecord) bool {
	size := r.Pattern.Size()
	switch {
	case f.MinSupport > 0 && r.Support < f.MinSupport:
		return false
	case f.MinSize > 0 && size < f.MinSize:
		return false
	case f.MaxSize > 0 && size > f.MaxSize:
		return false
	case len(f.Contains) > 0 && !r.Pattern.Contains(f.Contains):
		return false
	}
	return true
}

// SortBySupport orders records by descending support, then by size and
// canonical pattern order.
func SortBySupport(records []gsp.SupportRecord) {
	slices.SortStableFunc(records, func(a, b gsp.SupportRecord) int {
		if a.Support != b.Support {
			return b.Support - a.Support
		}
		if sa, sb := a.Pattern.Size(), b.Pattern.Size(); sa != sb {
			return sa - sb
		}
		return a.Pattern.Compare(b.Pattern)
	})
}

// Document is the JSON report layout.
type Document struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Customers   int                 `json:"customers"`
	Refined     bool                `json:"refined"`
	Levels      []gsp.LevelStats    `json:"levels,omitempty"`
	Patterns    []gsp.SupportRecord `json:"patterns"`
}

// NewDocument builds a report document from a mining result.
func NewDocument(result *gsp.Result, records []gsp.SupportRecord) *Document {
	if records == nil {
		records = []gsp.SupportRecord{}
	}
	return &Document{
		GeneratedAt: time.Now().UTC(),
		Customers:   result.Customers,
		Refined:     result.Refined,
		Levels:      result.Stats,
		Patterns:    records,
	}
}

// Write renders doc to w.
func Write(w io.Writer, format Format, doc *Document) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatCSV:
		return writeCSV(w, doc.Patterns)
	case FormatText, "":
		return writeText(w, doc)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, records []gsp.SupportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"pattern", "size", "length", "support", "exact", "customers"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Pattern.String(),
			strconv.Itoa(r.Pattern.Size()),
			strconv.Itoa(r.Pattern.Len()),
			strconv.Itoa(r.Support),
			strconv.FormatBool(r.Exact),
			strings.Join(r.Customers, " "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, doc *Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(doc.Levels) > 0 {
		_, _ = fmt.Fprintln(tw, "LEVEL\tCANDIDATES\tSURVIVORS\tFREQUENT\tDURATION")
		for _, l := range doc.Levels {
			_, _ = fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n",
				l.Level, l.Candidates, l.Survivors, l.Frequent, l.Duration.Round(time.Microsecond))
		}
		_, _ = fmt.Fprintln(tw)
	}

	support := "SUPPORT"
	if !doc.Refined {
		support = "SUPPORT (bound)"
	}
	_, _ = fmt.Fprintf(tw, "PATTERN\tSIZE\t%s\n", support)
	for _, r := range doc.Patterns {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", r.Pattern, r.Pattern.Size(), r.Support)
	}
	_, _ = fmt.Fprintf(tw, "\n%d patterns over %d customers\n", len(doc.Patterns), doc.Customers)

	return tw.Flush()
}
