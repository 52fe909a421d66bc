package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"staybook/internal/bookings/validator"
	placeserrors "staybook/internal/places/errors"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/logger"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ────────────────────────────────────────────────
// Mocks for testing
// ────────────────────────────────────────────────

type memoryBookingRepository struct {
	mu        sync.Mutex
	bookings  []*model.Booking
	createErr error
}

func (m *memoryBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	booking.ID = primitive.NewObjectID().Hex()
	stored := *booking
	m.bookings = append(m.bookings, &stored)
	return nil
}

func (m *memoryBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Booking{}
	for _, b := range m.bookings {
		if b.User == userID {
			found := *b
			out = append(out, &found)
		}
	}
	return out, nil
}

type stubPlaces map[string]*model.Place

func (s stubPlaces) FindByID(ctx context.Context, id string) (*model.Place, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, placeserrors.ErrInvalidID
	}
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, placeserrors.ErrNotFound
}

type recordingEmitter struct {
	events []any
}

func (e *recordingEmitter) Emit(ctx context.Context, eventType, key string, payload any) {
	e.events = append(e.events, payload)
}

const placeID = "507f1f77bcf86cd799439011"

func newTestService(t *testing.T) (BookingService, *memoryBookingRepository, *recordingEmitter) {
	t.Helper()
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	repo := &memoryBookingRepository{}
	places := stubPlaces{placeID: {ID: placeID, Owner: "host-1"}}
	events := &recordingEmitter{}
	return NewBookingService(repo, places, validator.NewBookingValidator(log), events, cfg), repo, events
}

func input() *model.BookingInput {
	return &model.BookingInput{
		Place:          placeID,
		CheckIn:        "2026-07-01",
		CheckOut:       "2026-07-04T10:00:00Z",
		NumberOfGuests: 2,
		Name:           "  Grace  Hopper ",
		Phone:          "(650) 253-0000",
		Price:          300,
	}
}

func TestCreate_UserIsAlwaysCaller(t *testing.T) {
	svc, repo, events := newTestService(t)

	booking, err := svc.Create(context.Background(), "guest-1", input())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.User != "guest-1" {
		t.Errorf("expected user guest-1, got %q", booking.User)
	}
	if booking.Place != placeID {
		t.Errorf("expected place %s, got %q", placeID, booking.Place)
	}
	if booking.Name != "Grace Hopper" {
		t.Errorf("expected normalized name, got %q", booking.Name)
	}
	if booking.Phone != "+16502530000" {
		t.Errorf("expected E.164 phone, got %q", booking.Phone)
	}
	if !booking.CheckIn.Equal(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected check-in %s", booking.CheckIn)
	}
	if len(repo.bookings) != 1 || repo.bookings[0].User != "guest-1" {
		t.Errorf("stored booking has wrong user: %+v", repo.bookings)
	}
	if len(events.events) != 1 {
		t.Fatalf("expected booking.created event, got %d", len(events.events))
	}
	if ev, ok := events.events[0].(bookingCreatedEvent); !ok || ev.PlaceOwner != "host-1" {
		t.Errorf("unexpected event payload %+v", events.events[0])
	}
}

func TestCreate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		caller     string
		mutate     func(in *model.BookingInput)
		createErr  error
		wantStatus int
	}{
		{name: "no caller", caller: "", mutate: func(*model.BookingInput) {}, wantStatus: http.StatusUnauthorized},
		{name: "unknown place", caller: "g", mutate: func(in *model.BookingInput) { in.Place = primitive.NewObjectID().Hex() }, wantStatus: http.StatusNotFound},
		{name: "malformed place id", caller: "g", mutate: func(in *model.BookingInput) { in.Place = "nope" }, wantStatus: http.StatusBadRequest},
		{name: "inverted dates", caller: "g", mutate: func(in *model.BookingInput) { in.CheckIn, in.CheckOut = in.CheckOut, in.CheckIn }, wantStatus: http.StatusUnprocessableEntity},
		{name: "missing name", caller: "g", mutate: func(in *model.BookingInput) { in.Name = "   " }, wantStatus: http.StatusUnprocessableEntity},
		{name: "store failure", caller: "g", mutate: func(*model.BookingInput) {}, createErr: errors.New("write concern"), wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, events := newTestService(t)
			repo.createErr = tt.createErr
			in := input()
			tt.mutate(in)

			_, err := svc.Create(context.Background(), tt.caller, in)
			var appErr *apperrors.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.StatusCode() != tt.wantStatus {
				t.Errorf("expected %d, got %d (%v)", tt.wantStatus, appErr.StatusCode(), err)
			}
			if len(events.events) != 0 {
				t.Error("no event expected on failure")
			}
		})
	}
}

func TestListForCaller_ScopedToCaller(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, user := range []string{"a", "b", "a"} {
		if _, err := svc.Create(ctx, user, input()); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	mine, err := svc.ListForCaller(ctx, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 bookings, got %d", len(mine))
	}
	for _, b := range mine {
		if b.User != "a" {
			t.Errorf("foreign booking returned: %+v", b)
		}
	}
}
