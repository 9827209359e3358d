// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Package loader reads transaction logs into a sequence database using an
// embedded DuckDB instance. CSV and Parquet files are supported.
//
// Each input row is one (customer, time, item) purchase. With a time column,
// rows of the same customer on the same calendar day form one element.
// Without one, every row is its own element in file order. An item cell may
// hold several items separated by Source.ItemSeparator.
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver registration
	"github.com/rs/zerolog"

	"github.com/tomtom215/seqmine/internal/metrics"
	"github.com/tomtom215/seqmine/internal/sequence"
)

// Source describes an input file and the columns to read.
type Source struct {
	Path string

	// Format is "csv", "parquet" or "auto" (by file extension).
	Format string

	CustomerColumn string

	// TimeColumn is optional. Values are cast to DATE.
	TimeColumn string

	ItemColumn string

	// ItemSeparator splits one item cell into several items. Empty keeps
	// each cell as a single item.
	ItemSeparator string
}

// Loader owns an in-memory DuckDB connection.
type Loader struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// Open starts an in-memory DuckDB instance.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(logger zerolog.Logger) (*Loader, error) {
	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}
	return &Loader{
		conn:   conn,
		logger: logger.With().Str("component", "loader").Logger(),
	}, nil
}

// Close releases the DuckDB instance.
func (l *Loader) Close() error {
	return l.conn.Close()
}

// Load reads src into a database. Rows with a NULL customer or item are
// skipped. Customers appear in ascending ID order when a time column is
// used and in order of first appearance otherwise.
func (l *Loader) Load(ctx context.Context, src Source) (*sequence.Database, error) {
	start := time.Now()
	format, err := resolveFormat(src)
	if err != nil {
		return nil, err
	}
	if src.CustomerColumn == "" || src.ItemColumn == "" {
		return nil, fmt.Errorf("customer and item columns are required")
	}

	query := buildQuery(src, format)
	rows, err := l.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", src.Path, err)
	}
	defer rows.Close()

	b := newBuilder(src.TimeColumn != "", src.ItemSeparator)
	for rows.Next() {
		var (
			customer string
			day      sql.NullTime
			item     string
		)
		if err := rows.Scan(&customer, &day, &item); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		b.add(customer, day.Time, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	db := b.database()
	elapsed := time.Since(start)
	metrics.RecordLoad(format, b.rows, elapsed)
	l.logger.Info().
		Str("path", src.Path).
		Str("format", format).
		Int("rows", b.rows).
		Int("customers", db.Len()).
		Dur("duration", elapsed).
		Msg("transactions loaded")

	return db, nil
}

func resolveFormat(src Source) (string, error) {
	switch strings.ToLower(src.Format) {
	case "csv", "parquet":
		return strings.ToLower(src.Format), nil
	case "", "auto":
		switch strings.ToLower(filepath.Ext(src.Path)) {
		case ".parquet", ".pq":
			return "parquet", nil
		default:
			return "csv", nil
		}
	default:
		return "", fmt.Errorf("unsupported input format %q", src.Format)
	}
}

func buildQuery(src Source, format string) string {
	reader := "read_csv_auto"
	if format == "parquet" {
		reader = "read_parquet"
	}

	customer := quoteIdent(src.CustomerColumn)
	item := quoteIdent(src.ItemColumn)
	timeExpr := "NULL::DATE"
	if src.TimeColumn != "" {
		timeExpr = "CAST(" + quoteIdent(src.TimeColumn) + " AS DATE)"
	}

	q := fmt.Sprintf(
		"SELECT CAST(%s AS VARCHAR), %s, CAST(%s AS VARCHAR) FROM %s(%s) WHERE %s IS NOT NULL AND %s IS NOT NULL",
		customer, timeExpr, item, reader, quoteLiteral(src.Path), customer, item,
	)
	if src.TimeColumn != "" {
		q += " ORDER BY 1, 2, 3"
	}
	return q
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
