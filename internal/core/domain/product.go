package domain

import (
	"errors"
	"time"
)

// Field limits enforced before anything reaches storage.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
	MaxPrice             = 1_000_000
	MaxQuantity          = 1_000_000
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuery    = errors.New("invalid query parameters")
)

// Product is a catalog entry. The identifier is assigned by storage on
// creation, is stable for the record's lifetime, and is never reused after
// deletion.
type Product struct {
	ID          int64     `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int64     `json:"quantity" bson:"quantity"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
