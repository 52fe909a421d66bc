package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	placeserrors "staybook/internal/places/errors"
	"staybook/pkg/config"
	mongodb "staybook/pkg/db/mongo"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Places"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	FindByID(ctx context.Context, id string) (*model.Place, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Place, error)
	FindAll(ctx context.Context) ([]*model.Place, error)
	// UpdateOwned replaces the mutable fields of the place only while it is
	// still owned by ownerID; ErrNotFound covers both a missing place and a
	// foreign owner.
	UpdateOwned(ctx context.Context, id string, ownerID string, place *model.Place) (*model.Place, error)
}

type mongoPlaceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPlaceRepository(cfg *config.Config) PlaceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPlaceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	place.CreatedAt = now
	place.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, place)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		place.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", placeserrors.ErrInvalidID, id)
	}

	var place model.Place
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&place)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, placeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find place: %w", err)
	}

	return &place, nil
}

func (r *mongoPlaceRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	return r.find(ctx, bson.M{"owner": ownerID})
}

func (r *mongoPlaceRepository) FindAll(ctx context.Context) ([]*model.Place, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoPlaceRepository) find(ctx context.Context, filter bson.M) ([]*model.Place, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []*model.Place{}
	if err = cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}

	return places, nil
}

func (r *mongoPlaceRepository) UpdateOwned(ctx context.Context, id string, ownerID string, place *model.Place) (*model.Place, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", placeserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "owner": ownerID}
	update := bson.M{
		"$set": bson.M{
			"title":       place.Title,
			"description": place.Description,
			"photos":      place.Photos,
			"address":     place.Address,
			"perks":       place.Perks,
			"extra_info":  place.ExtraInfo,
			"check_in":    place.CheckIn,
			"check_out":   place.CheckOut,
			"max_guests":  place.MaxGuests,
			"price":       place.Price,
			"updated_at":  time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Place
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, placeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	return &updated, nil
}
