package validator

import (
	"fmt"
	"strings"
	"time"

	bookingserrors "staybook/internal/bookings/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"
	"staybook/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const dateOnly = "2006-01-02"

type BookingValidator struct {
	validator *validator.Validate
	logger    *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validator: validation.New(),
		logger:    log,
	}
}

// Stay is a validated check-in/check-out pair.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Validate checks the request shape and parses its dates.
func (v *BookingValidator) Validate(input *model.BookingInput) (Stay, error) {
	stay, err := v.validate(input)
	if err != nil {
		v.logger.Debug("Booking input rejected", "place", input.Place, "error", err)
	}
	return stay, err
}

func (v *BookingValidator) validate(input *model.BookingInput) (Stay, error) {
	if err := validation.Struct(v.validator, input); err != nil {
		return Stay{}, err
	}

	checkIn, err := ParseDate(input.CheckIn)
	if err != nil {
		return Stay{}, validation.ValidationErrors{{Field: "checkIn", Message: err.Error()}}
	}
	checkOut, err := ParseDate(input.CheckOut)
	if err != nil {
		return Stay{}, validation.ValidationErrors{{Field: "checkOut", Message: err.Error()}}
	}

	if !checkOut.After(checkIn) {
		return Stay{}, validation.ValidationErrors{{
			Field:   "checkOut",
			Message: bookingserrors.ErrInvalidStayRange.Error(),
		}}
	}

	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// ParseDate accepts a full RFC 3339 timestamp or a calendar date, which is
// read as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", bookingserrors.ErrInvalidDate, s)
}
