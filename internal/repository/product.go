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

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	Create(ctx context.Context, product model.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Product, error)
	Update(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]model.Product, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) Create(ctx context.Context, product model.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, category, price, description, image_key)
		VALUES (@id, @name, @category, @price, @description, @image_key);
	`, pgx.NamedArgs{
		"id":          product.ID,
		"name":        product.Name,
		"category":    product.Category,
		"price":       product.Price,
		"description": product.Description,
		"image_key":   product.ImageKey,
	})
	if err != nil {
		return fmt.Errorf("product create: %w", err)
	}

	return nil
}

func (r productRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, category, price, description, image_key
		FROM products
		WHERE id = @id;
	`, pgx.NamedArgs{"id": id})

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, apperr.ProductNotFoundErr
		}
		return model.Product{}, fmt.Errorf("product get by id: %w", err)
	}

	return product, nil
}

func (r productRepository) Update(ctx context.Context, product model.Product) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products
		SET name        = @name,
		    category    = @category,
		    price       = @price,
		    description = @description,
		    image_key   = @image_key
		WHERE id = @id;
	`, pgx.NamedArgs{
		"id":          product.ID,
		"name":        product.Name,
		"category":    product.Category,
		"price":       product.Price,
		"description": product.Description,
		"image_key":   product.ImageKey,
	})
	if err != nil {
		return fmt.Errorf("product update: %w", err)
	}

	return nil
}

func (r productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Flavors go with the product via the ON DELETE CASCADE rule.
	_, err := r.db.Exec(ctx, `
		DELETE FROM products
		WHERE id = @id;
	`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("product delete: %w", err)
	}

	return nil
}

func (r productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category, price, description, image_key
		FROM products
		ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("product list all: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product rows: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var product model.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Price,
		&product.Description,
		&product.ImageKey,
	)
	return product, err
}
