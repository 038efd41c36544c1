package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrAlreadyExists is returned when an entity with the same key is already stored.
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrStatusConflict is returned when a payment is no longer in a state
	// that allows the requested transition.
	ErrStatusConflict = errors.New("payment status conflict")
)
