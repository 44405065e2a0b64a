package usecase

import "errors"

var (
	// ErrNotFound is returned when the record an operation targets does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMissingIdentity is returned when a bootstrap request names no identity.
	ErrMissingIdentity = errors.New("firebase id is required")
	// ErrInvalidIdentityToken is returned when an ID token fails verification.
	ErrInvalidIdentityToken = errors.New("invalid identity token")
	// ErrIdentityConflict is returned when an account found by email is
	// already linked to a different external identity.
	ErrIdentityConflict = errors.New("account is linked to another identity")
	// ErrNotAuthenticated is returned when a caller supplies no identity at all.
	ErrNotAuthenticated = errors.New("not authenticated")
)
