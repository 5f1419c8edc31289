// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrStore marks failures of the relational store (connection, query, commit).
	ErrStore = errors.New("store failure")

	// ErrUnauthorized indicates a missing or invalid owner identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation indicates malformed input rejected before touching storage.
	ErrValidation = errors.New("validation")

	// ErrInvalidTransition indicates a lifecycle move the active policy does not allow.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidProgress indicates a packing flag change that breaks pick/pack/ready ordering.
	ErrInvalidProgress = errors.New("invalid packing progress")
)
