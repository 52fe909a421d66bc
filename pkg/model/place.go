package model

import "time"

type Place struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Owner       string    `json:"owner" bson:"owner"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Photos      []string  `json:"photos" bson:"photos"`
	Address     string    `json:"address" bson:"address"`
	Perks       []string  `json:"perks" bson:"perks"`
	ExtraInfo   string    `json:"extraInfo" bson:"extra_info"`
	CheckIn     string    `json:"checkIn" bson:"check_in"`
	CheckOut    string    `json:"checkOut" bson:"check_out"`
	MaxGuests   int       `json:"maxGuests" bson:"max_guests"`
	Price       float64   `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// PlaceInput is the body of POST /places. Photos arrive under the
// "addedphotos" key the listing form uses.
type PlaceInput struct {
	Title       string   `json:"title" validate:"max=200"`
	Description string   `json:"description" validate:"max=10000"`
	Photos      []string `json:"addedphotos" validate:"max=100"`
	Address     string   `json:"address" validate:"max=500"`
	Perks       []string `json:"perks" validate:"max=50"`
	ExtraInfo   string   `json:"extraInfo" validate:"max=10000"`
	CheckIn     string   `json:"checkIn" validate:"max=50"`
	CheckOut    string   `json:"checkOut" validate:"max=50"`
	MaxGuests   int      `json:"maxGuests" validate:"gte=0"`
	Price       float64  `json:"price" validate:"gte=0"`
}

// PlaceUpdate is the body of PUT /places. Absent fields leave the stored
// value untouched.
type PlaceUpdate struct {
	ID          string    `json:"id" validate:"required"`
	Title       *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=10000"`
	Photos      *[]string `json:"addedphotos,omitempty" validate:"omitempty,max=100"`
	Address     *string   `json:"address,omitempty" validate:"omitempty,max=500"`
	Perks       *[]string `json:"perks,omitempty" validate:"omitempty,max=50"`
	ExtraInfo   *string   `json:"extraInfo,omitempty" validate:"omitempty,max=10000"`
	CheckIn     *string   `json:"checkIn,omitempty" validate:"omitempty,max=50"`
	CheckOut    *string   `json:"checkOut,omitempty" validate:"omitempty,max=50"`
	MaxGuests   *int      `json:"maxGuests,omitempty" validate:"omitempty,gte=0"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
}

func (p *PlaceInput) ToPlace(ownerID string) *Place {
	return &Place{
		Owner:       ownerID,
		Title:       p.Title,
		Description: p.Description,
		Photos:      p.Photos,
		Address:     p.Address,
		Perks:       p.Perks,
		ExtraInfo:   p.ExtraInfo,
		CheckIn:     p.CheckIn,
		CheckOut:    p.CheckOut,
		MaxGuests:   p.MaxGuests,
		Price:       p.Price,
	}
}
