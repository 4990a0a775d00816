package feature

import "errors"

// Common store errors.
var (
	// ErrStoreExists is returned by Create when the target database file
	// already exists.
	ErrStoreExists = errors.New("database file already exists")

	// ErrStoreNotFound is returned by Open when the database file is
	// missing.
	ErrStoreNotFound = errors.New("database file not found")

	// ErrIntegrity is returned when a Parent reference does not resolve
	// to a stored feature ID.
	ErrIntegrity = errors.New("referential integrity violation")

	// ErrDuplicateID is returned when a source introduces a feature ID
	// that is already stored and the merge policy rejects collisions.
	ErrDuplicateID = errors.New("duplicate feature ID")
)
