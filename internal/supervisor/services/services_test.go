// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*GCService)(nil)
)

type mockHTTPServer struct {
	listenErr error
	started   chan struct{}
	stopCh    chan struct{}
	shutdowns atomic.Int32
}

func newMockHTTPServer(listenErr error) *mockHTTPServer {
	return &mockHTTPServer{
		listenErr: listenErr,
		started:   make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.started <- struct{}{}
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stopCh
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdowns.Add(1)
	close(m.stopCh)
	return nil
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	srv := newMockHTTPServer(nil)
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
	if got := srv.shutdowns.Load(); got != 1 {
		t.Errorf("Shutdown called %d times, want 1", got)
	}
}

func TestHTTPServerServiceListenError(t *testing.T) {
	listenErr := errors.New("address in use")
	svc := NewHTTPServerService(newMockHTTPServer(listenErr), 0)

	err := svc.Serve(context.Background())
	if !errors.Is(err, listenErr) {
		t.Errorf("Serve() error = %v, want wrapped %v", err, listenErr)
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("shutdownTimeout = %v, want default 10s", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}

type countingGC struct {
	calls atomic.Int32
	err   error
}

func (g *countingGC) RunGC() error {
	g.calls.Add(1)
	return g.err
}

func TestGCServiceRunsOnInterval(t *testing.T) {
	gc := &countingGC{}
	svc := NewGCService(gc, 5*time.Millisecond, zerolog.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want DeadlineExceeded", err)
	}
	if gc.calls.Load() == 0 {
		t.Error("RunGC was never called")
	}
}

func TestGCServiceStopsOnError(t *testing.T) {
	gcErr := errors.New("disk full")
	svc := NewGCService(&countingGC{err: gcErr}, time.Millisecond, zerolog.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, gcErr) {
		t.Errorf("Serve() error = %v, want wrapped %v", err, gcErr)
	}
}
