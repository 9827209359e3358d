// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/seqmine/internal/api"
	"github.com/tomtom215/seqmine/internal/logging"
	"github.com/tomtom215/seqmine/internal/store"
	"github.com/tomtom215/seqmine/internal/supervisor"
	"github.com/tomtom215/seqmine/internal/supervisor/services"
)

func newServeCmd(a *app) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored runs and inline mining over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.Server.Address = address
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "Listen address (host:port)")
	return cmd
}

func (a *app) runServe(ctx context.Context) error {
	cfg := a.cfg
	tree := supervisor.NewTree(logging.NewSlogLogger(logging.WithComponent("supervisor")), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	var runs api.RunStore
	if cfg.Store.Enabled {
		st, err := store.Open(&store.Config{
			Path:        cfg.Store.Path,
			SyncWrites:  cfg.Store.SyncWrites,
			Compression: true,
		}, a.logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				a.logger.Error().Err(err).Msg("failed to close run store")
			}
		}()
		runs = st
		tree.AddStoreService(services.NewGCService(st, cfg.Store.GCInterval, logging.WithComponent("store-gc")))
	} else {
		a.logger.Warn().Msg("run store disabled; run endpoints will answer 503")
	}

	handler := api.NewHandler(api.Config{
		Mining:        *buildMinerConfig(cfg),
		CORSOrigins:   cfg.Server.CORSOrigins,
		MineRateLimit: cfg.Server.MineRateLimit,
		MaxBodyBytes:  cfg.Server.MaxBodyBytes,
		RunCacheSize:  cfg.Server.RunCacheSize,
		RunCacheTTL:   cfg.Server.RunCacheTTL,
		Version:       version,
	}, runs, logging.Logger())

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler.Router(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	a.logger.Info().Str("addr", server.Addr).Msg("starting HTTP server")
	err := tree.Serve(ctx)

	if unstopped, rerr := tree.UnstoppedServiceReport(); rerr == nil {
		for _, svc := range unstopped {
			a.logger.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
		}
	}
	// Serve reports the cancellation that stopped it.
	if err != nil && ctx.Err() == nil {
		return err
	}
	a.logger.Info().Msg("server stopped gracefully")
	return nil
}
