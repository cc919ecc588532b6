package model

import (
	"github.com/google/uuid"
)

// Flavor is a product variant with its own stock count. CreatedAtOrdinal
// establishes stable presentation order among flavors of the same product;
// it is assigned at creation and never mutated after.
type Flavor struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	Name             *string   `json:"name"`
	NicotineMg       *int32    `json:"nicotine_mg"`
	ColorHex         *string   `json:"color_hex"`
	Stock            int32     `json:"stock"`
	CreatedAtOrdinal int32     `json:"created_at_ordinal"`
}
