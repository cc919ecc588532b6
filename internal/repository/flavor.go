package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/supervape/catalog/internal/apperr"
	"github.com/supervape/catalog/internal/model"
	"github.com/supervape/catalog/internal/storage/db"
)

type FlavorRepository interface {
	WithDB(db db.DB) FlavorRepository
	Create(ctx context.Context, flavor model.Flavor) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Flavor, error)
	Update(ctx context.Context, flavor model.Flavor) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]model.Flavor, error)
	ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]model.Flavor, error)
	NextOrdinal(ctx context.Context, productID uuid.UUID) (int32, error)
}

type flavorRepository struct {
	db db.DB
}

func NewFlavorRepository(db db.DB) FlavorRepository {
	return &flavorRepository{db: db}
}

func (r flavorRepository) WithDB(db db.DB) FlavorRepository {
	return &flavorRepository{db: db}
}

func (r flavorRepository) Create(ctx context.Context, flavor model.Flavor) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO flavors (id, product_id, name, nicotine_mg, color_hex, stock, created_at_ordinal)
		VALUES (@id, @product_id, @name, @nicotine_mg, @color_hex, @stock, @created_at_ordinal);
	`, pgx.NamedArgs{
		"id":                 flavor.ID,
		"product_id":         flavor.ProductID,
		"name":               flavor.Name,
		"nicotine_mg":        flavor.NicotineMg,
		"color_hex":          flavor.ColorHex,
		"stock":              flavor.Stock,
		"created_at_ordinal": flavor.CreatedAtOrdinal,
	})
	if err != nil {
		return fmt.Errorf("flavor create: %w", err)
	}

	return nil
}

func (r flavorRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Flavor, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, product_id, name, nicotine_mg, color_hex, stock, created_at_ordinal
		FROM flavors
		WHERE id = @id;
	`, pgx.NamedArgs{"id": id})

	flavor, err := scanFlavor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Flavor{}, apperr.FlavorNotFoundErr
		}
		return model.Flavor{}, fmt.Errorf("flavor get by id: %w", err)
	}

	return flavor, nil
}

func (r flavorRepository) Update(ctx context.Context, flavor model.Flavor) error {
	// created_at_ordinal is immutable after creation and deliberately absent here.
	_, err := r.db.Exec(ctx, `
		UPDATE flavors
		SET name        = @name,
		    nicotine_mg = @nicotine_mg,
		    color_hex   = @color_hex,
		    stock       = @stock
		WHERE id = @id;
	`, pgx.NamedArgs{
		"id":          flavor.ID,
		"name":        flavor.Name,
		"nicotine_mg": flavor.NicotineMg,
		"color_hex":   flavor.ColorHex,
		"stock":       flavor.Stock,
	})
	if err != nil {
		return fmt.Errorf("flavor update: %w", err)
	}

	return nil
}

func (r flavorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM flavors
		WHERE id = @id;
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("flavor delete: %w", err)
	}

	return nil
}

func (r flavorRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]model.Flavor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, name, nicotine_mg, color_hex, stock, created_at_ordinal
		FROM flavors
		WHERE product_id = @product_id
		ORDER BY created_at_ordinal;
	`, pgx.NamedArgs{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("flavor list by product id: %w", err)
	}
	defer rows.Close()

	return collectFlavors(rows)
}

// ListByProductIDs fetches the flavors of all given products in one query,
// ordered by ordinal within each product.
func (r flavorRepository) ListByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]model.Flavor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, name, nicotine_mg, color_hex, stock, created_at_ordinal
		FROM flavors
		WHERE product_id = ANY(@product_ids)
		ORDER BY product_id, created_at_ordinal;
	`, pgx.NamedArgs{"product_ids": productIDs})
	if err != nil {
		return nil, fmt.Errorf("flavor list by product ids: %w", err)
	}
	defer rows.Close()

	return collectFlavors(rows)
}

// NextOrdinal returns one more than the current maximum ordinal among the
// product's flavors; the first flavor of a product gets 0. The value is read
// fresh from storage every time, never cached.
func (r flavorRepository) NextOrdinal(ctx context.Context, productID uuid.UUID) (int32, error) {
	row := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(created_at_ordinal), -1) + 1
		FROM flavors
		WHERE product_id = @product_id;
	`, pgx.NamedArgs{"product_id": productID})

	var next int32
	if err := row.Scan(&next); err != nil {
		return 0, fmt.Errorf("flavor next ordinal: %w", err)
	}

	return next, nil
}

func collectFlavors(rows pgx.Rows) ([]model.Flavor, error) {
	flavors := make([]model.Flavor, 0)
	for rows.Next() {
		flavor, err := scanFlavor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flavor: %w", err)
		}
		flavors = append(flavors, flavor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("flavor rows: %w", err)
	}

	return flavors, nil
}

func scanFlavor(row pgx.Row) (model.Flavor, error) {
	var flavor model.Flavor
	err := row.Scan(
		&flavor.ID,
		&flavor.ProductID,
		&flavor.Name,
		&flavor.NicotineMg,
		&flavor.ColorHex,
		&flavor.Stock,
		&flavor.CreatedAtOrdinal,
	)
	return flavor, err
}
