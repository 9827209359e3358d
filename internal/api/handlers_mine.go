// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/logging"
	"github.com/tomtom215/seqmine/internal/metrics"
	"github.com/tomtom215/seqmine/internal/models"
	"github.com/tomtom215/seqmine/internal/sequence"
	"github.com/tomtom215/seqmine/internal/store"
)

// Mine runs GSP over the database in the request body and optionally
// stores the run.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.MineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "request body too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}
	if req.Save && h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "run store is disabled", nil)
		return
	}

	db, err := buildDatabase(req.Customers)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	cfg := h.mineConfig(&req)

	runID := logging.NewRunID()
	ctx := logging.ContextWithRunID(h.requestContext(r), runID)
	logger := *logging.Ctx(ctx)

	miner, err := gsp.NewMiner(cfg, logger, gsp.WithObserver(metrics.NewRecorder()))
	if err != nil {
		metrics.RecordRun(metrics.RunStatus(err), 0, 0)
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	result, err := miner.Mine(ctx, db)
	metrics.RecordRun(metrics.RunStatus(err), time.Since(start), resultPatterns(result))
	if err != nil {
		h.respondMineError(w, err)
		return
	}

	resp := models.MineResponse{
		Customers: result.Customers,
		Refined:   result.Refined,
		Levels:    result.Stats,
		Patterns:  result.Records,
	}
	if resp.Patterns == nil {
		resp.Patterns = []gsp.SupportRecord{}
	}

	if req.Save {
		run := store.NewRun(runID, "api", cfg, result, start)
		if err := h.store.SaveRun(ctx, run); err != nil {
			respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to save run", err)
			return
		}
		resp.RunID = run.ID
	}

	respondSuccess(w, r, http.StatusOK, resp, start)
}

func (h *Handler) respondMineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gsp.ErrInvalidInput), errors.Is(err, gsp.ErrConfiguration):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn().Err(err).Msg("mine request canceled")
		respondError(w, http.StatusServiceUnavailable, "CANCELED", "mining was canceled", nil)
	default:
		respondError(w, http.StatusInternalServerError, "MINING_ERROR", "mining failed", err)
	}
}

// mineConfig overlays the request parameters on the server defaults.
func (h *Handler) mineConfig(req *models.MineRequest) *gsp.Config {
	cfg := h.config.Mining.Clone()
	if req.MinSupport != nil {
		cfg.MinSupport = *req.MinSupport
	}
	if req.MinGap != nil {
		cfg.Constraints.MinGap = *req.MinGap
	}
	if req.MaxGap != nil {
		cfg.Constraints.MaxGap = *req.MaxGap
	}
	if req.MaxSpan != nil {
		cfg.Constraints.MaxSpan = *req.MaxSpan
	}
	if req.UseTimeConstraints != nil {
		cfg.Constraints.UseTimeConstraints = *req.UseTimeConstraints
	}
	if req.MaxPatternSize != nil {
		cfg.MaxPatternSize = *req.MaxPatternSize
	}
	return cfg
}

// buildDatabase converts request customers into a sequence database.
// Customer IDs must be unique.
func buildDatabase(customers []models.MineCustomer) (*sequence.Database, error) {
	db := sequence.NewDatabase()
	for _, c := range customers {
		if _, dup := db.Sequence(c.ID); dup {
			return nil, &gsp.InvalidInputError{CustomerID: c.ID, Element: -1, Reason: "duplicate customer id"}
		}
		seq := make(sequence.Sequence, 0, len(c.Elements))
		for _, e := range c.Elements {
			var t time.Time
			if e.Time != nil {
				t = *e.Time
			}
			seq = append(seq, sequence.NewElement(t, e.Items...))
		}
		db.Add(c.ID, seq)
	}
	return db, nil
}

func resultPatterns(result *gsp.Result) int {
	if result == nil {
		return 0
	}
	return len(result.Records)
}
