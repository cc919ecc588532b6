package model

import (
	"github.com/google/uuid"
)

// Product is a catalog entry. All scalar attributes are independently
// nullable; Flavors is ordered by CreatedAtOrdinal ascending.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price"`
	Description *string   `json:"description"`
	ImageKey    *string   `json:"image_key"`
	Flavors     []Flavor  `json:"flavors"`
}
