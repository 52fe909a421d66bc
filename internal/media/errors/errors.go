package errors

import "errors"

var (
	ErrNotFound = errors.New("media not found")

	ErrInvalidName = errors.New("invalid media name")

	ErrUnsupportedScheme = errors.New("only http and https links are supported")

	ErrUpstream = errors.New("remote image could not be fetched")

	ErrTooLarge = errors.New("media exceeds the size limit")
)
