// Package service implements the group ledger and friendship operations on
// top of the repositories. Every operation takes the acting user explicitly;
// there is no ambient request state.
package service

import "errors"

// Error kinds surfaced by the services. The HTTP layer maps each kind to a
// status code; callers test with errors.Is.
var (
	// ErrInvalidInput marks missing or malformed input, such as a
	// non-positive expense amount.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced group, user or request that does not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an action the acting user is not authorized for.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict marks duplicate memberships, requests or friendships,
	// including unique-constraint violations surfaced from storage.
	ErrConflict = errors.New("conflict")
)
