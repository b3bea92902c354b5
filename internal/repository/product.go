package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenbasket/sustainability-service/internal/domain"
	"github.com/jackc/pgx/v5"
)

const productColumns = `product_id, name, category, material, weight_kg, price, emission_factor, eco_score`

// Get single product
func (r *Repository) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	p := &domain.Product{}

	err := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = $1`,
		productID,
	).Scan(&p.ProductID, &p.Name, &p.Category, &p.Material, &p.WeightKg, &p.Price, &p.EmissionFactor, &p.EcoScore)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("query product id=%s: %w", productID, err)
	}

	return p, nil
}

// Get all products in a category, case-insensitive
func (r *Repository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+`
		 FROM products
		 WHERE LOWER(category) = LOWER($1)
		 ORDER BY product_id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("query products for category %s: %w", category, err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Get the full catalog
func (r *Repository) ListAllProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY product_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query all products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ProductID, &p.Name, &p.Category, &p.Material, &p.WeightKg, &p.Price, &p.EmissionFactor, &p.EcoScore)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over products: %w", err)
	}
	return products, nil
}
