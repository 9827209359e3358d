// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/seqmine/internal/config"
	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/loader"
	"github.com/tomtom215/seqmine/internal/logging"
	"github.com/tomtom215/seqmine/internal/metrics"
	"github.com/tomtom215/seqmine/internal/report"
	"github.com/tomtom215/seqmine/internal/store"
)

// mineOptions holds mine flags. Config values are only overridden by flags
// the user actually set.
type mineOptions struct {
	input          string
	inputFormat    string
	customerColumn string
	timeColumn     string
	itemColumn     string
	itemSeparator  string

	minSupport      int
	minGap          int
	maxGap          int
	maxSpan         int
	timeConstraints bool
	workers         int
	refine          bool
	maxPatternSize  int

	outputFormat string
	outputPath   string
	minSize      int
	sortSupport  bool

	noStore   bool
	storePath string
	progress  bool
}

func newMineCmd(a *app) *cobra.Command {
	o := &mineOptions{}
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine frequent sequential patterns from a CSV or Parquet file",
		Long: `Load transactions (customer, optional time, item) with DuckDB, group them
into per-customer sequences and mine all frequent sequential patterns.

Rows of one customer on the same day form a single transaction.

Examples:
  seqmine mine -i orders.csv --min-support 10
  seqmine mine -i orders.parquet --time-column ordered_at --time-constraints --max-gap 30
  seqmine mine -i baskets.csv --item-separator ";" -f json -o patterns.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMine(cmd, o)
		},
	}
	o.bindFlags(cmd)
	return cmd
}

func (o *mineOptions) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "", "Input file (CSV or Parquet)")
	f.StringVar(&o.inputFormat, "input-format", "", "Input format: auto, csv, parquet")
	f.StringVar(&o.customerColumn, "customer-column", "", "Customer ID column")
	f.StringVar(&o.timeColumn, "time-column", "", "Transaction time column")
	f.StringVar(&o.itemColumn, "item-column", "", "Item column")
	f.StringVar(&o.itemSeparator, "item-separator", "", "Split item cells on this separator")

	f.IntVarP(&o.minSupport, "min-support", "s", 0, "Minimum number of supporting customers")
	f.IntVar(&o.minGap, "min-gap", 0, "Minimum days between consecutive matched transactions")
	f.IntVar(&o.maxGap, "max-gap", 0, "Maximum days between consecutive matched transactions")
	f.IntVar(&o.maxSpan, "max-span", 0, "Maximum days between first and last matched transaction")
	f.BoolVar(&o.timeConstraints, "time-constraints", false, "Enforce min-gap, max-gap and max-span")
	f.IntVarP(&o.workers, "workers", "w", 0, "Goroutines evaluating candidates")
	f.BoolVar(&o.refine, "refine", true, "Recount frequent patterns exactly with customer lists")
	f.IntVar(&o.maxPatternSize, "max-pattern-size", 0, "Stop after patterns of this many items (0 = unbounded)")

	f.StringVarP(&o.outputFormat, "format", "f", "", "Report format: text, json, csv")
	f.StringVarP(&o.outputPath, "output", "o", "", "Report file (default stdout)")
	f.IntVar(&o.minSize, "min-size", 0, "Only report patterns with at least this many items")
	f.BoolVar(&o.sortSupport, "sort-support", false, "Order the report by descending support")

	f.BoolVar(&o.noStore, "no-store", false, "Do not save the run")
	f.StringVar(&o.storePath, "store-path", "", "Run store directory")
	f.BoolVar(&o.progress, "progress", true, "Show per-level progress on stderr")
}

// apply overlays explicitly set flags on cfg.
func (o *mineOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	set := cmd.Flags().Changed

	overrides := []struct {
		flag  string
		apply func()
	}{
		{"input", func() { cfg.Input.Path = o.input }},
		{"input-format", func() { cfg.Input.Format = o.inputFormat }},
		{"customer-column", func() { cfg.Input.CustomerColumn = o.customerColumn }},
		{"time-column", func() { cfg.Input.TimeColumn = o.timeColumn }},
		{"item-column", func() { cfg.Input.ItemColumn = o.itemColumn }},
		{"item-separator", func() { cfg.Input.ItemSeparator = o.itemSeparator }},
		{"min-support", func() { cfg.Mining.MinSupport = o.minSupport }},
		{"min-gap", func() { cfg.Mining.MinGap = o.minGap }},
		{"max-gap", func() { cfg.Mining.MaxGap = o.maxGap }},
		{"max-span", func() { cfg.Mining.MaxSpan = o.maxSpan }},
		{"time-constraints", func() { cfg.Mining.UseTimeConstraints = o.timeConstraints }},
		{"workers", func() { cfg.Mining.Workers = o.workers }},
		{"refine", func() { cfg.Mining.Refine = o.refine }},
		{"max-pattern-size", func() { cfg.Mining.MaxPatternSize = o.maxPatternSize }},
		{"format", func() { cfg.Output.Format = o.outputFormat }},
		{"output", func() { cfg.Output.Path = o.outputPath }},
		{"store-path", func() { cfg.Store.Path = o.storePath }},
	}
	for _, ov := range overrides {
		if set(ov.flag) {
			ov.apply()
		}
	}
	if o.noStore {
		cfg.Store.Enabled = false
	}
}

// buildMinerConfig maps application configuration to the miner's.
func buildMinerConfig(cfg *config.Config) *gsp.Config {
	return &gsp.Config{
		MinSupport: cfg.Mining.MinSupport,
		Constraints: gsp.Constraints{
			MinGap:             cfg.Mining.MinGap,
			MaxGap:             cfg.Mining.MaxGap,
			MaxSpan:            cfg.Mining.MaxSpan,
			UseTimeConstraints: cfg.Mining.UseTimeConstraints,
		},
		Workers:        cfg.Mining.Workers,
		Refine:         cfg.Mining.Refine,
		MaxPatternSize: cfg.Mining.MaxPatternSize,
	}
}

func (a *app) runMine(cmd *cobra.Command, o *mineOptions) (err error) {
	cfg := a.cfg
	o.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if cfg.Input.Path == "" {
		return errors.New("no input file: pass --input or set input.path")
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	runID := logging.NewRunID()
	ctx := logging.ContextWithRunID(cmd.Context(), runID)
	logger := logging.Ctx(ctx).With().Logger()
	started := time.Now()

	defer a.exportMetrics()

	ldr, err := loader.Open(logger)
	if err != nil {
		return err
	}
	defer func() { _ = ldr.Close() }()

	db, err := ldr.Load(ctx, loader.Source{
		Path:           cfg.Input.Path,
		Format:         cfg.Input.Format,
		CustomerColumn: cfg.Input.CustomerColumn,
		TimeColumn:     cfg.Input.TimeColumn,
		ItemColumn:     cfg.Input.ItemColumn,
		ItemSeparator:  cfg.Input.ItemSeparator,
	})
	if err != nil {
		return err
	}

	minerCfg := buildMinerConfig(cfg)
	observers := gsp.MultiObserver{metrics.NewRecorder()}
	if o.progress {
		observers = append(observers, newProgressObserver(cmd.ErrOrStderr()))
	}
	miner, err := gsp.NewMiner(minerCfg, logger, gsp.WithObserver(observers))
	if err != nil {
		metrics.RecordRun(metrics.RunStatus(err), 0, 0)
		return err
	}

	result, err := miner.Mine(ctx, db)
	if err != nil {
		metrics.RecordRun(metrics.RunStatus(err), time.Since(started), 0)
		return err
	}
	metrics.RecordRun(metrics.RunStatus(nil), time.Since(started), len(result.Records))

	records := report.Filter{MinSize: o.minSize}.Apply(result.Records)
	if o.sortSupport {
		report.SortBySupport(records)
	}
	if err := writeReport(cmd.OutOrStdout(), cfg.Output.Path, format, report.NewDocument(result, records)); err != nil {
		return err
	}

	if !cfg.Store.Enabled {
		return nil
	}
	st, err := store.Open(&store.Config{
		Path:        cfg.Store.Path,
		SyncWrites:  cfg.Store.SyncWrites,
		Compression: true,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	run := store.NewRun(runID, cfg.Input.Path, minerCfg, result, started)
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}
	logger.Info().Str("store", cfg.Store.Path).Msg("run saved")
	return nil
}

func writeReport(stdout io.Writer, path string, format report.Format, doc *report.Document) error {
	if path == "" {
		return report.Write(stdout, format, doc)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := report.Write(f, format, doc); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// exportMetrics writes the metrics textfile when configured. Failures are
// logged; they never fail the command.
func (a *app) exportMetrics() {
	path := a.cfg.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		a.logger.Warn().Err(err).Str("path", path).Msg("failed to export metrics")
	}
}
