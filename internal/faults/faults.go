// Package faults defines the sentinel error classes shared across Sahaya.
// Callers classify failures with errors.Is and map them to exit codes or
// HTTP statuses at the edge.
package faults

import "errors"

var (
	// ErrValidation marks missing or malformed caller input. Nothing was mutated.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a lookup of an unknown complaint, volunteer, or dispatch.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a rejected state transition: a null or terminal slot,
	// a backward lifecycle move, or an ambiguous assignment resolution.
	ErrConflict = errors.New("conflict")

	// ErrStorage marks a persistence failure. The enclosing operation aborted
	// without partial writes.
	ErrStorage = errors.New("storage failure")
)
