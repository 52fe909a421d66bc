package service

import (
	"context"
	"errors"
	"strings"

	placeserrors "staybook/internal/places/errors"
	"staybook/internal/places/repository"
	"staybook/internal/places/validator"
	"staybook/pkg/config"
	apperrors "staybook/pkg/errors"
	"staybook/pkg/kafka"
	"staybook/pkg/model"
	"staybook/pkg/sanitizer"
	"staybook/pkg/validation"
)

type PlaceService interface {
	Create(ctx context.Context, ownerID string, input *model.PlaceInput) (*model.Place, error)
	Update(ctx context.Context, callerID string, update *model.PlaceUpdate) (*model.Place, error)
	GetByID(ctx context.Context, id string) (*model.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Place, error)
	ListAll(ctx context.Context) ([]*model.Place, error)
}

type placeService struct {
	repo      repository.PlaceRepository
	validator *validator.PlaceValidator
	events    kafka.Emitter
	cfg       *config.Config
}

func NewPlaceService(
	repo repository.PlaceRepository,
	validator *validator.PlaceValidator,
	events kafka.Emitter,
	cfg *config.Config,
) PlaceService {
	return &placeService{
		repo:      repo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

type placeEvent struct {
	PlaceID string  `json:"placeId"`
	Owner   string  `json:"owner"`
	Title   string  `json:"title"`
	Price   float64 `json:"price"`
}

func (s *placeService) Create(ctx context.Context, ownerID string, input *model.PlaceInput) (*model.Place, error) {
	if ownerID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Place validation failed", "owner", ownerID, "error", err)
		return nil, validationError(err)
	}

	place := input.ToPlace(ownerID)
	s.sanitize(place)

	if err := s.repo.Create(ctx, place); err != nil {
		s.cfg.Log.Error("Failed to create place", "owner", ownerID, "error", err)
		return nil, apperrors.Validation("Failed to create place", nil).WithCause(err)
	}

	s.events.Emit(ctx, kafka.EventPlaceCreated, place.ID, placeEvent{
		PlaceID: place.ID,
		Owner:   place.Owner,
		Title:   place.Title,
		Price:   place.Price,
	})
	s.cfg.Log.Info("Place created successfully", "id", place.ID, "owner", ownerID)
	return place, nil
}

func (s *placeService) Update(ctx context.Context, callerID string, update *model.PlaceUpdate) (*model.Place, error) {
	if callerID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	update.ID = strings.TrimSpace(update.ID)
	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Place update validation failed", "id", update.ID, "error", err)
		return nil, validationError(err)
	}

	existing, err := s.repo.FindByID(ctx, update.ID)
	if err != nil {
		return nil, s.mapLookupError(err, update.ID)
	}

	if existing.Owner != callerID {
		s.cfg.Log.Warn("Rejected update of foreign place",
			"id", update.ID,
			"owner", existing.Owner,
			"caller", callerID,
		)
		return nil, apperrors.Forbidden("You do not own this place").WithCause(placeserrors.ErrNotOwner)
	}

	merged := mergePlaceUpdate(existing, update)
	s.sanitize(merged)

	updated, err := s.repo.UpdateOwned(ctx, update.ID, callerID, merged)
	if err != nil {
		if errors.Is(err, placeserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Place", update.ID)
		}
		s.cfg.Log.Error("Failed to update place", "id", update.ID, "error", err)
		return nil, apperrors.Internal("Failed to update place", err)
	}

	s.events.Emit(ctx, kafka.EventPlaceUpdated, updated.ID, placeEvent{
		PlaceID: updated.ID,
		Owner:   updated.Owner,
		Title:   updated.Title,
		Price:   updated.Price,
	})
	s.cfg.Log.Info("Place updated successfully", "id", updated.ID)
	return updated, nil
}

func (s *placeService) GetByID(ctx context.Context, id string) (*model.Place, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Place ID cannot be empty")
	}

	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}
	return place, nil
}

func (s *placeService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	places, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list places by owner", "owner", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve places", err)
	}
	return places, nil
}

func (s *placeService) ListAll(ctx context.Context) ([]*model.Place, error) {
	places, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list places", "error", err)
		return nil, apperrors.Internal("Failed to retrieve places", err)
	}
	return places, nil
}

func (s *placeService) mapLookupError(err error, id string) error {
	if errors.Is(err, placeserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Place", id)
	}
	if errors.Is(err, placeserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid place ID format")
	}
	return apperrors.Internal("Failed to retrieve place", err)
}

func (s *placeService) sanitize(place *model.Place) {
	place.Title = sanitizer.CollapseSpaces(place.Title)
	place.Address = sanitizer.CollapseSpaces(place.Address)
	place.Description = strings.TrimSpace(place.Description)
	place.ExtraInfo = strings.TrimSpace(place.ExtraInfo)
	place.CheckIn = strings.TrimSpace(place.CheckIn)
	place.CheckOut = strings.TrimSpace(place.CheckOut)
	place.Perks = sanitizer.NormalizePerks(place.Perks)
	place.Photos = sanitizer.NormalizePhotoRefs(place.Photos)
}

// mergePlaceUpdate applies the fields present in update on top of a copy of
// existing. Owner is never taken from the request.
func mergePlaceUpdate(existing *model.Place, update *model.PlaceUpdate) *model.Place {
	merged := *existing

	if update.Title != nil {
		merged.Title = *update.Title
	}
	if update.Description != nil {
		merged.Description = *update.Description
	}
	if update.Photos != nil {
		merged.Photos = *update.Photos
	}
	if update.Address != nil {
		merged.Address = *update.Address
	}
	if update.Perks != nil {
		merged.Perks = *update.Perks
	}
	if update.ExtraInfo != nil {
		merged.ExtraInfo = *update.ExtraInfo
	}
	if update.CheckIn != nil {
		merged.CheckIn = *update.CheckIn
	}
	if update.CheckOut != nil {
		merged.CheckOut = *update.CheckOut
	}
	if update.MaxGuests != nil {
		merged.MaxGuests = *update.MaxGuests
	}
	if update.Price != nil {
		merged.Price = *update.Price
	}

	return &merged
}

func validationError(err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation("Invalid input", verrs.Details())
	}
	return apperrors.Validation("Invalid input", map[string]any{"error": err.Error()})
}
