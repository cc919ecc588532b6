package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/supervape/catalog/internal/apperr"
	"github.com/supervape/catalog/internal/model"
	"github.com/supervape/catalog/internal/service"
	"github.com/supervape/catalog/pkg/validator"
)

// Request payloads. Every field is a pointer: nil means the field was absent
// and, on update, leaves the stored value unchanged. Absent and explicit null
// are indistinguishable through this model. None of the fields carry value
// constraints; notably, stock is not checked for non-negativity.

type flavorCreateRequest struct {
	Name       *string `json:"name"`
	NicotineMg *int32  `json:"nicotine_mg"`
	ColorHex   *string `json:"color_hex"`
	Stock      *int32  `json:"stock"`
}

type flavorUpdateRequest struct {
	Name       *string `json:"name"`
	NicotineMg *int32  `json:"nicotine_mg"`
	ColorHex   *string `json:"color_hex"`
	Stock      *int32  `json:"stock"`
}

type productCreateRequest struct {
	Name        *string               `json:"name"`
	Category    *string               `json:"category"`
	Price       *float64              `json:"price"`
	Description *string               `json:"description"`
	ImageKey    *string               `json:"image_key"`
	Flavors     []flavorCreateRequest `json:"flavors"`
}

type productUpdateRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImageKey    *string  `json:"image_key"`
}

// Response payloads. The flavor response carries product_id but never the
// internal ordinal; ordering is observable through list position only.

type flavorResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Name       *string   `json:"name"`
	NicotineMg *int32    `json:"nicotine_mg"`
	ColorHex   *string   `json:"color_hex"`
	Stock      int32     `json:"stock"`
}

type productResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *float64         `json:"price"`
	Description *string          `json:"description"`
	ImageKey    *string          `json:"image_key"`
	Flavors     []flavorResponse `json:"flavors"`
}

type healthResponse struct {
	OK bool `json:"ok"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

func newFlavorResponse(flavor model.Flavor) flavorResponse {
	return flavorResponse{
		ID:         flavor.ID,
		ProductID:  flavor.ProductID,
		Name:       flavor.Name,
		NicotineMg: flavor.NicotineMg,
		ColorHex:   flavor.ColorHex,
		Stock:      flavor.Stock,
	}
}

func newProductResponse(product model.Product) productResponse {
	flavors := make([]flavorResponse, 0, len(product.Flavors))
	for _, flavor := range product.Flavors {
		flavors = append(flavors, newFlavorResponse(flavor))
	}

	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Description: product.Description,
		ImageKey:    product.ImageKey,
		Flavors:     flavors,
	}
}

func (p productCreateRequest) toParams() service.CreateProductParams {
	flavors := make([]service.CreateFlavorParams, 0, len(p.Flavors))
	for _, f := range p.Flavors {
		flavors = append(flavors, service.CreateFlavorParams(f))
	}

	return service.CreateProductParams{
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Description: p.Description,
		ImageKey:    p.ImageKey,
		Flavors:     flavors,
	}
}

func (p productUpdateRequest) toParams() service.UpdateProductParams {
	return service.UpdateProductParams(p)
}

// decode unmarshals and validates a request body. Malformed JSON or a type
// mismatch surfaces as a validation error before any repository operation.
func decode(r *http.Request, v validator.Validator, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}

	if err := v.Validate(dst); err != nil {
		return err
	}

	return nil
}
