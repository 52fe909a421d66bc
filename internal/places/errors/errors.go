package errors

import "errors"

var (
	ErrNotFound = errors.New("place not found")

	ErrInvalidID = errors.New("invalid place ID format")

	ErrNotOwner = errors.New("place is owned by another user")
)
