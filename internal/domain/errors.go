package domain

import "errors"

// Sentinel errors used across layers. The calculation core never returns
// errors; these cover lookups, misuse and I/O edges.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrIngredientIndex = errors.New("ingredient index out of range")
	ErrInvalidName     = errors.New("invalid ingredient name")
	ErrUnknownFormat   = errors.New("unknown output format")
)
