package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/supervape/catalog/internal/model"
	"github.com/supervape/catalog/internal/storage/db"
)

// addFlavorMaxRetries bounds retries of the read-ordinal-then-insert
// transaction when a concurrent addition wins the same ordinal.
const addFlavorMaxRetries = 3

func (s *catalogService) AddFlavor(ctx context.Context, productID uuid.UUID, params CreateFlavorParams) (model.Flavor, error) {
	var flavor model.Flavor

	// The next ordinal is read and the row inserted inside one transaction.
	// Two concurrent additions to the same product can compute the same
	// ordinal; the UNIQUE (product_id, created_at_ordinal) constraint rejects
	// the loser, which simply retries with a fresh read.
	backoff := retry.WithMaxRetries(addFlavorMaxRetries, retry.NewConstant(10*time.Millisecond))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := s.db.WithTx(ctx, func(tx db.DB) error {
			if _, err := s.productRepo.WithDB(tx).GetByID(ctx, productID); err != nil {
				return fmt.Errorf("product repository get by id: %w", err)
			}

			ordinal, err := s.flavorRepo.WithDB(tx).NextOrdinal(ctx, productID)
			if err != nil {
				return fmt.Errorf("flavor repository next ordinal: %w", err)
			}

			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generate uuid v7: %w", err)
			}

			flavor = model.Flavor{
				ID:               id,
				ProductID:        productID,
				Name:             params.Name,
				NicotineMg:       params.NicotineMg,
				ColorHex:         params.ColorHex,
				Stock:            stockOrZero(params.Stock),
				CreatedAtOrdinal: ordinal,
			}

			if err := s.flavorRepo.WithDB(tx).Create(ctx, flavor); err != nil {
				return fmt.Errorf("flavor repository create: %w", err)
			}

			return nil
		})
		if db.IsUniqueViolation(err) {
			return retry.RetryableError(err)
		}
		return err
	}); err != nil {
		return model.Flavor{}, err
	}

	return flavor, nil
}

func (s *catalogService) UpdateFlavor(ctx context.Context, id uuid.UUID, params UpdateFlavorParams) (model.Flavor, error) {
	var flavor model.Flavor

	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		var err error
		flavor, err = s.flavorRepo.WithDB(tx).GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("flavor repository get by id: %w", err)
		}

		applyFlavorUpdate(&flavor, params)

		if err := s.flavorRepo.WithDB(tx).Update(ctx, flavor); err != nil {
			return fmt.Errorf("flavor repository update: %w", err)
		}

		return nil
	}); err != nil {
		return model.Flavor{}, err
	}

	return flavor, nil
}

func (s *catalogService) DeleteFlavor(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		if _, err := s.flavorRepo.WithDB(tx).GetByID(ctx, id); err != nil {
			return fmt.Errorf("flavor repository get by id: %w", err)
		}

		if err := s.flavorRepo.WithDB(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("flavor repository delete: %w", err)
		}

		return nil
	}); err != nil {
		return err
	}

	return nil
}

// applyFlavorUpdate copies only the fields present in params onto flavor.
// The ordinal is never part of an update.
func applyFlavorUpdate(flavor *model.Flavor, params UpdateFlavorParams) {
	if params.Name != nil {
		flavor.Name = params.Name
	}
	if params.NicotineMg != nil {
		flavor.NicotineMg = params.NicotineMg
	}
	if params.ColorHex != nil {
		flavor.ColorHex = params.ColorHex
	}
	if params.Stock != nil {
		flavor.Stock = *params.Stock
	}
}
