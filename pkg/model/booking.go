package model

import "time"

type Booking struct {
	ID             string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Place          string    `json:"place" bson:"place"`
	User           string    `json:"user" bson:"user"`
	CheckIn        time.Time `json:"checkIn" bson:"check_in"`
	CheckOut       time.Time `json:"checkOut" bson:"check_out"`
	NumberOfGuests int       `json:"numberOfGuests" bson:"number_of_guests"`
	Name           string    `json:"name" bson:"name"`
	Phone          string    `json:"phone" bson:"phone"`
	Price          float64   `json:"price" bson:"price"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}

// BookingInput is the body of POST /bookings. It deliberately has no user
// field: the guest is always the authenticated caller. Dates accept RFC 3339
// or plain YYYY-MM-DD.
type BookingInput struct {
	Place          string  `json:"place" validate:"required"`
	CheckIn        string  `json:"checkIn" validate:"required"`
	CheckOut       string  `json:"checkOut" validate:"required"`
	NumberOfGuests int     `json:"numberOfGuests" validate:"gte=1"`
	Name           string  `json:"name" validate:"required,max=200"`
	Phone          string  `json:"phone" validate:"required,max=50"`
	Price          float64 `json:"price" validate:"gte=0"`
}
