// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Command seqmine mines frequent sequential patterns from customer
// transaction data with the GSP algorithm.
//
// # Commands
//
//	seqmine mine    load a CSV or Parquet file, mine it and print a report
//	seqmine runs    list, show or delete stored runs
//	seqmine serve   serve stored runs and inline mining over HTTP
//
// # Configuration
//
// Settings come from built-in defaults, then seqmine.yaml (or --config,
// or $SEQMINE_CONFIG), then SEQMINE_* environment variables, then command
// line flags. See internal/config for the file layout.
//
// # Example Usage
//
//	seqmine mine -i orders.csv --time-column ordered_at --item-column sku \
//	    --min-support 20 --time-constraints --max-gap 30
//
//	SEQMINE_LOG_FORMAT=console seqmine runs list
//
//	seqmine serve --config /etc/seqmine/config.yaml
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the running command. Mining stops at the next
// level boundary; serve shuts the HTTP server down gracefully.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/seqmine/internal/config"
	"github.com/tomtom215/seqmine/internal/logging"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// app carries state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "seqmine",
		Short: "Mine frequent sequential patterns from transaction data",
		Long: `seqmine finds the sequences of itemsets that occur in the purchase
histories of at least min-support customers, optionally bounded by the
time between and across transactions.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: seqmine.yaml or $SEQMINE_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format override (json, console)")

	root.AddCommand(newMineCmd(a), newRunsCmd(a), newServeCmd(a))
	return root
}

// init loads the configuration and sets up logging.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})
	a.cfg = cfg
	a.logger = logging.WithComponent("cli")
	return nil
}
