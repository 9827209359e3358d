// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/seqmine/internal/gsp"
	"github.com/tomtom215/seqmine/internal/metrics"
	"github.com/tomtom215/seqmine/internal/models"
	"github.com/tomtom215/seqmine/internal/report"
	"github.com/tomtom215/seqmine/internal/sequence"
	"github.com/tomtom215/seqmine/internal/store"
)

// PatternsRequest holds the query parameters of ListPatterns.
type PatternsRequest struct {
	MinSupport int    `query:"min_support" validate:"gte=0"`
	MinSize    int    `query:"min_size" validate:"gte=0"`
	MaxSize    int    `query:"max_size" validate:"omitempty,gtefield=MinSize"`
	Contains   string `query:"contains" validate:"omitempty,seqpattern"`
	Sort       string `query:"sort" validate:"oneof=support pattern"`
	Limit      int    `query:"limit" validate:"gte=1,lte=10000"`
	Offset     int    `query:"offset" validate:"gte=0"`
}

// RunDetail is a run without its patterns.
type RunDetail struct {
	store.Summary
	Params  gsp.Config       `json:"params"`
	Refined bool             `json:"refined"`
	Levels  []gsp.LevelStats `json:"levels"`
}

func (h *Handler) requireStore(w http.ResponseWriter) bool {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "run store is disabled", nil)
		return false
	}
	return true
}

// loadRun fetches the run named by the {id} path parameter, answering the
// request itself on failure. Stored runs never change, so decoded runs are
// served from the cache until deleted or expired. Callers must not modify
// the returned run.
func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	id := chi.URLParam(r, "id")
	if run, ok := h.runs.Get(id); ok {
		metrics.RecordRunCacheLookup(true)
		return run, true
	}
	metrics.RecordRunCacheLookup(false)

	run, err := h.store.GetRun(h.requestContext(r), id)
	switch {
	case errors.Is(err, store.ErrRunNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "run not found", nil)
		return nil, false
	case err != nil:
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to load run", err)
		return nil, false
	}
	h.runs.Add(id, run)
	return run, true
}

// ListRuns returns stored run summaries, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireStore(w) {
		return
	}

	runs, err := h.store.ListRuns(h.requestContext(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to list runs", err)
		return
	}
	if runs == nil {
		runs = []store.Summary{}
	}
	respondSuccess(w, r, http.StatusOK, runs, start)
}

// GetRun returns a run's parameters and level statistics.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireStore(w) {
		return
	}
	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	respondSuccess(w, r, http.StatusOK, RunDetail{
		Summary: run.Summarize(),
		Params:  run.Params,
		Refined: run.Refined,
		Levels:  run.Levels,
	}, start)
}

// DeleteRun removes a run.
func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireStore(w) {
		return
	}

	id := chi.URLParam(r, "id")
	h.runs.Remove(id)
	err := h.store.DeleteRun(h.requestContext(r), id)
	switch {
	case errors.Is(err, store.ErrRunNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "run not found", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to delete run", err)
		return
	}

	h.logger.Info().Str("run_id", sanitizeLogValue(id)).Msg("run deleted")
	respondSuccess(w, r, http.StatusOK, map[string]string{"deleted": id}, start)
}

// ListPatterns returns a filtered page of a run's patterns.
func (h *Handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.requireStore(w) {
		return
	}

	req, apiErr := parsePatternsRequest(r)
	if apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	run, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	filter := report.Filter{
		MinSupport: req.MinSupport,
		MinSize:    req.MinSize,
		MaxSize:    req.MaxSize,
	}
	if req.Contains != "" {
		// Already validated by the seqpattern tag.
		filter.Contains, _ = sequence.ParsePattern(req.Contains)
	}
	matched := filter.Apply(run.Records)
	if req.Sort == "support" {
		report.SortBySupport(matched)
	}

	page := []gsp.SupportRecord{}
	if req.Offset < len(matched) {
		end := min(req.Offset+req.Limit, len(matched))
		page = matched[req.Offset:end]
	}

	respondSuccess(w, r, http.StatusOK, models.PatternsResponse{
		RunID:    run.ID,
		Total:    len(run.Records),
		Matched:  len(matched),
		Offset:   req.Offset,
		Limit:    req.Limit,
		Patterns: page,
	}, start)
}

func parsePatternsRequest(r *http.Request) (*PatternsRequest, *models.APIError) {
	req := &PatternsRequest{
		Contains: r.URL.Query().Get("contains"),
		Sort:     r.URL.Query().Get("sort"),
	}
	if req.Sort == "" {
		req.Sort = "pattern"
	}

	ints := []struct {
		key string
		dst *int
		def int
	}{
		{"min_support", &req.MinSupport, 0},
		{"min_size", &req.MinSize, 0},
		{"max_size", &req.MaxSize, 0},
		{"limit", &req.Limit, 100},
		{"offset", &req.Offset, 0},
	}
	for _, p := range ints {
		v, err := getIntParam(r, p.key, p.def)
		if err != nil {
			return nil, &models.APIError{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
				Details: map[string]interface{}{"field": p.key},
			}
		}
		*p.dst = v
	}

	if apiErr := validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}
