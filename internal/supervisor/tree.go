// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Package supervisor runs the long-lived services of the serve command
// under a suture supervisor tree.
//
// The tree has two layers so that a failing maintenance job cannot take
// the API down with it:
//
//	seqmine
//	├── store-layer  (value log GC)
//	└── api-layer    (HTTP server)
package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig holds the restart policy.
type TreeConfig struct {
	// FailureThreshold is the number of failures before backoff. Default: 5
	FailureThreshold float64

	// FailureDecay is the failure decay rate in seconds. Default: 30
	FailureDecay float64

	// FailureBackoff is the pause once the threshold is crossed. Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout bounds the wait for each service to stop. Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's documented defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Tree is the seqmine supervisor tree.
type Tree struct {
	root  *suture.Supervisor
	store *suture.Supervisor
	api   *suture.Supervisor
}

// NewTree builds the tree. Zero fields of config take their defaults.
func NewTree(logger *slog.Logger, config TreeConfig) *Tree {
	def := DefaultTreeConfig()
	if config.FailureThreshold == 0 {
		config.FailureThreshold = def.FailureThreshold
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = def.FailureDecay
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = def.FailureBackoff
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = def.ShutdownTimeout
	}

	// MustHook has a pointer receiver.
	hook := (&sutureslog.Handler{Logger: logger}).MustHook()

	childSpec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}
	rootSpec := childSpec
	rootSpec.EventHook = hook

	t := &Tree{
		root:  suture.New("seqmine", rootSpec),
		store: suture.New("store-layer", childSpec),
		api:   suture.New("api-layer", childSpec),
	}
	t.root.Add(t.store)
	t.root.Add(t.api)
	return t
}

// AddStoreService adds a service to the store layer.
func (t *Tree) AddStoreService(svc suture.Service) suture.ServiceToken {
	return t.store.Add(svc)
}

// AddAPIService adds a service to the API layer.
func (t *Tree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground runs the tree in a goroutine. The channel yields the
// result once the tree stops.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that ignored the shutdown timeout.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
