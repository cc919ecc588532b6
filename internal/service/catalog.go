package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/supervape/catalog/internal/model"
	"github.com/supervape/catalog/internal/repository"
	"github.com/supervape/catalog/internal/storage/db"
)

// CreateFlavorParams carries the acceptable input for a new flavor. Every
// field is optional; a nil Stock defaults to 0 server-side.
type CreateFlavorParams struct {
	Name       *string
	NicotineMg *int32
	ColorHex   *string
	Stock      *int32
}

// UpdateFlavorParams carries a partial flavor update. A nil field leaves the
// stored value unchanged; a field cannot be explicitly cleared to null.
type UpdateFlavorParams struct {
	Name       *string
	NicotineMg *int32
	ColorHex   *string
	Stock      *int32
}

// CreateProductParams carries the acceptable input for a new product,
// optionally with an initial batch of flavors created atomically with it.
type CreateProductParams struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	ImageKey    *string
	Flavors     []CreateFlavorParams
}

// UpdateProductParams carries a partial product update with the same
// presence semantics as UpdateFlavorParams.
type UpdateProductParams struct {
	Name        *string
	Category    *string
	Price       *float64
	Description *string
	ImageKey    *string
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	AddFlavor(ctx context.Context, productID uuid.UUID, params CreateFlavorParams) (model.Flavor, error)
	UpdateFlavor(ctx context.Context, id uuid.UUID, params UpdateFlavorParams) (model.Flavor, error)
	DeleteFlavor(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	db          db.DB
	productRepo repository.ProductRepository
	flavorRepo  repository.FlavorRepository
}

func NewCatalogService(
	db db.DB,
	productRepo repository.ProductRepository,
	flavorRepo repository.FlavorRepository,
) CatalogService {
	return &catalogService{
		db:          db,
		productRepo: productRepo,
		flavorRepo:  flavorRepo,
	}
}
