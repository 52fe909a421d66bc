package service

import (
	"context"
	"errors"
	"time"

	"staybook/internal/bookings/repository"
	"staybook/internal/bookings/validator"
	placeserrors "staybook/internal/places/errors"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/kafka"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
	"staybook/pkg/validation"
)

type BookingService interface {
	Create(ctx context.Context, callerID string, input *model.BookingInput) (*model.Booking, error)
	ListForCaller(ctx context.Context, callerID string) ([]*model.Booking, error)
}

// PlaceLookup is the slice of the place store bookings need.
type PlaceLookup interface {
	FindByID(ctx context.Context, id string) (*model.Place, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	places    PlaceLookup
	validator *validator.BookingValidator
	events    kafka.Emitter
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	places PlaceLookup,
	validator *validator.BookingValidator,
	events kafka.Emitter,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		places:    places,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

type bookingCreatedEvent struct {
	BookingID      string    `json:"bookingId"`
	Place          string    `json:"place"`
	PlaceOwner     string    `json:"placeOwner"`
	User           string    `json:"user"`
	CheckIn        time.Time `json:"checkIn"`
	CheckOut       time.Time `json:"checkOut"`
	NumberOfGuests int       `json:"numberOfGuests"`
	Price          float64   `json:"price"`
}

// Create books a stay for the caller. The guest is always callerID; there is
// no way to book on behalf of someone else.
func (s *bookingService) Create(ctx context.Context, callerID string, input *model.BookingInput) (*model.Booking, error) {
	if callerID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	input.Name = sanitizer.NormalizeName(input.Name)
	stay, err := s.validator.Validate(input)
	if err != nil {
		s.cfg.Log.Warn("Booking validation failed", "user", callerID, "error", err)
		return nil, validationError(err)
	}

	place, err := s.places.FindByID(ctx, input.Place)
	if err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", input.Place)
		}
		if errors.Is(err, placeserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid place ID format")
		}
		return nil, apperrors.Internal("Failed to look up place", err)
	}

	booking := &model.Booking{
		Place:          place.ID,
		User:           callerID,
		CheckIn:        stay.CheckIn,
		CheckOut:       stay.CheckOut,
		NumberOfGuests: input.NumberOfGuests,
		Name:           input.Name,
		Phone:          sanitizer.NormalizePhone(input.Phone),
		Price:          input.Price,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "user", callerID, "place", place.ID, "error", err)
		return nil, apperrors.Validation("Failed to create booking", nil).WithCause(err)
	}

	s.events.Emit(ctx, kafka.EventBookingCreated, booking.ID, bookingCreatedEvent{
		BookingID:      booking.ID,
		Place:          booking.Place,
		PlaceOwner:     place.Owner,
		User:           booking.User,
		CheckIn:        booking.CheckIn,
		CheckOut:       booking.CheckOut,
		NumberOfGuests: booking.NumberOfGuests,
		Price:          booking.Price,
	})
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"place", booking.Place,
		"user", booking.User,
		"check_in", booking.CheckIn,
	)
	return booking, nil
}

func (s *bookingService) ListForCaller(ctx context.Context, callerID string) ([]*model.Booking, error) {
	if callerID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}

	bookings, err := s.repo.FindByUser(ctx, callerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "user", callerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid input", verrs.Details())
	}
	return apperrors.Validation("Invalid input", map[string]any{"error": err.Error()})
}
