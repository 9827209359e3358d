// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/seqmine/internal/models"
)

// Health reports liveness. The status is "degraded" when no run store is
// configured or the store fails a listing.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	connected := false
	if h.store != nil {
		_, err := h.store.ListRuns(r.Context())
		connected = err == nil
	}

	status := "healthy"
	if !connected {
		status = "degraded"
	}

	respondSuccess(w, r, http.StatusOK, models.HealthStatus{
		Status:         status,
		Version:        h.config.Version,
		StoreConnected: connected,
		Uptime:         time.Since(h.startTime).Seconds(),
	}, start)
}
