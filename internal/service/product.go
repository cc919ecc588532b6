package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/supervape/catalog/internal/model"
	"github.com/supervape/catalog/internal/storage/db"
)

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all: %w", err)
	}
	if len(products) == 0 {
		return products, nil
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}

	// One bulk query instead of a per-product lookup. Flavors arrive ordered
	// by ordinal within each product, so grouping preserves display order.
	flavors, err := s.flavorRepo.ListByProductIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("flavor repository list by product ids: %w", err)
	}

	byProduct := make(map[uuid.UUID][]model.Flavor, len(products))
	for _, flavor := range flavors {
		byProduct[flavor.ProductID] = append(byProduct[flavor.ProductID], flavor)
	}

	for i := range products {
		products[i].Flavors = byProduct[products[i].ID]
		if products[i].Flavors == nil {
			products[i].Flavors = []model.Flavor{}
		}
	}

	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get by id: %w", err)
	}

	flavors, err := s.flavorRepo.ListByProductID(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("flavor repository list by product id: %w", err)
	}
	product.Flavors = flavors

	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	product := model.Product{
		ID:          id,
		Name:        params.Name,
		Category:    params.Category,
		Price:       params.Price,
		Description: params.Description,
		ImageKey:    params.ImageKey,
		Flavors:     make([]model.Flavor, 0, len(params.Flavors)),
	}

	// The product and its initial flavors persist all-or-nothing. Supplied
	// order becomes the ordinal sequence 0..n-1.
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		if err := s.productRepo.WithDB(tx).Create(ctx, product); err != nil {
			return fmt.Errorf("product repository create: %w", err)
		}

		for i, fp := range params.Flavors {
			flavorID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generate uuid v7: %w", err)
			}

			flavor := model.Flavor{
				ID:               flavorID,
				ProductID:        product.ID,
				Name:             fp.Name,
				NicotineMg:       fp.NicotineMg,
				ColorHex:         fp.ColorHex,
				Stock:            stockOrZero(fp.Stock),
				CreatedAtOrdinal: int32(i),
			}
			if err := s.flavorRepo.WithDB(tx).Create(ctx, flavor); err != nil {
				return fmt.Errorf("flavor repository create: %w", err)
			}

			product.Flavors = append(product.Flavors, flavor)
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	var product model.Product

	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		var err error
		product, err = s.productRepo.WithDB(tx).GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository get by id: %w", err)
		}

		applyProductUpdate(&product, params)

		if err := s.productRepo.WithDB(tx).Update(ctx, product); err != nil {
			return fmt.Errorf("product repository update: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, err
	}

	flavors, err := s.flavorRepo.ListByProductID(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("flavor repository list by product id: %w", err)
	}
	product.Flavors = flavors

	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		if _, err := s.productRepo.WithDB(tx).GetByID(ctx, id); err != nil {
			return fmt.Errorf("product repository get by id: %w", err)
		}

		if err := s.productRepo.WithDB(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("product repository delete: %w", err)
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

// applyProductUpdate copies only the fields present in params onto product.
// Absent (nil) fields are untouched; explicitly clearing a field to null is
// not expressible through this model.
func applyProductUpdate(product *model.Product, params UpdateProductParams) {
	if params.Name != nil {
		product.Name = params.Name
	}
	if params.Category != nil {
		product.Category = params.Category
	}
	if params.Price != nil {
		product.Price = params.Price
	}
	if params.Description != nil {
		product.Description = params.Description
	}
	if params.ImageKey != nil {
		product.ImageKey = params.ImageKey
	}
}

func stockOrZero(stock *int32) int32 {
	if stock == nil {
		return 0
	}
	return *stock
}
