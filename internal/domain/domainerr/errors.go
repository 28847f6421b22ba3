// Package domainerr defines the error taxonomy shared by repositories,
// services, and HTTP handlers. Expected business outcomes are reported
// through these sentinels and classified with errors.Is; anything else is
// treated as an internal fault and surfaces as a generic server error.
package domainerr

import "errors"

var (
	// ErrValidation covers missing or malformed input (HTTP 400).
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials covers failed credential checks (HTTP 401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned when no record matches the owner-scoped
	// lookup. An ownership mismatch is deliberately indistinguishable
	// from absence (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrDuplicateImage is returned when an image id is already present
	// in a collection (HTTP 400).
	ErrDuplicateImage = errors.New("image already exists in collection")

	// ErrImageNotInCollection is returned when a removal targets an image
	// id the collection does not contain (HTTP 404).
	ErrImageNotInCollection = errors.New("image not found in collection")

	// ErrEmailTaken is returned on registration with an email that
	// already has an account (HTTP 409).
	ErrEmailTaken = errors.New("email already registered")
)
