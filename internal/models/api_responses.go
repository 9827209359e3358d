// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

// Package models holds the wire types of the HTTP API.
package models

import (
	"time"

	"github.com/tomtom215/seqmine/internal/gsp"
)

// APIResponse is the envelope of every API response.
//
// Successful response:
//
//	{
//	  "status": "success",
//	  "data": {"run_id": "...", "patterns": [...]},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 3}
//	}
//
// Error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "run not found"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes: VALIDATION_ERROR, NOT_FOUND, STORE_ERROR, MINING_ERROR,
// METHOD_NOT_ALLOWED, UNAVAILABLE.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoint.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	StoreConnected bool    `json:"store_connected"`
	Uptime         float64 `json:"uptime_seconds"`
}

// PatternsResponse is a filtered page of a run's patterns.
type PatternsResponse struct {
	RunID    string              `json:"run_id"`
	Total    int                 `json:"total"`
	Matched  int                 `json:"matched"`
	Offset   int                 `json:"offset"`
	Limit    int                 `json:"limit"`
	Patterns []gsp.SupportRecord `json:"patterns"`
}

// MineRequest runs the miner over an inline database. Unset parameters
// take the server defaults. Time is required on every element when time
// constraints are in effect.
type MineRequest struct {
	MinSupport         *int           `json:"min_support" validate:"omitempty,gte=1"`
	MinGap             *int           `json:"min_gap" validate:"omitempty,gte=0"`
	MaxGap             *int           `json:"max_gap" validate:"omitempty,gte=0"`
	MaxSpan            *int           `json:"max_span" validate:"omitempty,gte=0"`
	UseTimeConstraints *bool          `json:"use_time_constraints"`
	MaxPatternSize     *int           `json:"max_pattern_size" validate:"omitempty,gte=0"`
	Save               bool           `json:"save"`
	Customers          []MineCustomer `json:"customers" validate:"required,min=1,dive"`
}

// MineCustomer is one customer of a MineRequest.
type MineCustomer struct {
	ID       string        `json:"id" validate:"required"`
	Elements []MineElement `json:"elements" validate:"required,min=1,dive"`
}

// MineElement is one transaction of a MineCustomer.
type MineElement struct {
	Items []string   `json:"items" validate:"required,min=1,dive,required"`
	Time  *time.Time `json:"time,omitempty"`
}

// MineResponse is the result of an inline mining request.
type MineResponse struct {
	RunID     string              `json:"run_id,omitempty"`
	Customers int                 `json:"customers"`
	Refined   bool                `json:"refined"`
	Levels    []gsp.LevelStats    `json:"levels"`
	Patterns  []gsp.SupportRecord `json:"patterns"`
}
