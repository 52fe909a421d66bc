package errors

import "errors"

var (
	ErrInvalidDate = errors.New("date must be RFC 3339 or YYYY-MM-DD")

	ErrInvalidStayRange = errors.New("check-out must be after check-in")
)
