// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/report"
	"github.com/tomtom215/seqmine/internal/store"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runs",
		Aliases: []string{"run"},
		Short:   "Inspect stored mining runs",
	}
	cmd.AddCommand(newRunsListCmd(a), newRunsShowCmd(a), newRunsDeleteCmd(a))
	return cmd
}

// openStore opens the configured run store for a runs subcommand.
func (a *app) openStore() (*store.Store, error) {
	if !a.cfg.Store.Enabled {
		return nil, fmt.Errorf("run store is disabled (store.enabled=false)")
	}
	return store.Open(&store.Config{
		Path:        a.cfg.Store.Path,
		SyncWrites:  a.cfg.Store.SyncWrites,
		Compression: true,
	}, a.logger)
}

func newRunsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs stored.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tSTARTED\tINPUT\tMIN SUPPORT\tCUSTOMERS\tPATTERNS\tDURATION")
			for _, r := range runs {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.ID,
					r.StartedAt.Local().Format(time.DateTime),
					r.Input,
					r.MinSupport,
					r.Customers,
					r.Patterns,
					r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
				)
			}
			return w.Flush()
		},
	}
}

func newRunsShowCmd(a *app) *cobra.Command {
	var (
		format      string
		minSupport  int
		minSize     int
		sortSupport bool
	)
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the report of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			records := report.Filter{MinSupport: minSupport, MinSize: minSize}.Apply(run.Records)
			if sortSupport {
				report.SortBySupport(records)
			}
			doc := report.NewDocument(&gsp.Result{
				Customers: run.Customers,
				Refined:   run.Refined,
				Stats:     run.Levels,
			}, records)
			doc.GeneratedAt = run.FinishedAt
			return report.Write(cmd.OutOrStdout(), f, doc)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Report format: text, json, csv")
	cmd.Flags().IntVar(&minSupport, "min-support", 0, "Only show patterns with at least this support")
	cmd.Flags().IntVar(&minSize, "min-size", 0, "Only show patterns with at least this many items")
	cmd.Flags().BoolVar(&sortSupport, "sort-support", false, "Order by descending support")
	return cmd
}

func newRunsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <run-id>...",
		Aliases: []string{"rm"},
		Short:   "Delete stored runs",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			for _, id := range args {
				if err := st.DeleteRun(cmd.Context(), id); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			}
			return nil
		},
	}
}
