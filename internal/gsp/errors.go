// Seqmine - Generalized Sequential Pattern Mining
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqmine

package gsp

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is classification.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrConfiguration      = errors.New("invalid configuration")
	ErrInvariantViolation = errors.New("invariant violation")
)

// InvalidInputError reports a malformed database.
// Element is -1 when the problem concerns the whole sequence or database.
type InvalidInputError struct {
	CustomerID string
	Element    int
	Reason     string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	switch {
	case e.CustomerID == "":
		return fmt.Sprintf("invalid input: %s", e.Reason)
	case e.Element < 0:
		return fmt.Sprintf("invalid input: customer %q: %s", e.CustomerID, e.Reason)
	default:
		return fmt.Sprintf("invalid input: customer %q element %d: %s", e.CustomerID, e.Element, e.Reason)
	}
}

// Unwrap returns ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// ConfigurationError reports an unusable mining parameter.
type ConfigurationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

// Unwrap returns ErrConfiguration.
func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// InvariantViolationError signals an internal inconsistency in candidate
// handling. It indicates a bug and aborts the run.
type InvariantViolationError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvariantViolationError) Error() string {
	return "invariant violation: " + e.Reason
}

// Unwrap returns ErrInvariantViolation.
func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }

func invariantf(format string, args ...any) error {
	return &InvariantViolationError{Reason: fmt.Sprintf(format, args...)}
}
