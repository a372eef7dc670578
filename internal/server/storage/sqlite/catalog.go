package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
)

// ListProducts returns the full product catalog
func (s *Storage) ListProducts(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT variant_id, product_id, name, image_url, price, available
		FROM products
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanProducts(rows)
}

// GetProductByVariantID retrieves a product by its variant ID
func (s *Storage) GetProductByVariantID(ctx context.Context, variantID string) (*models.Product, error) {
	query := `
		SELECT variant_id, product_id, name, image_url, price, available
		FROM products
		WHERE variant_id = ?
	`

	product := &models.Product{}

	err := s.db.QueryRowContext(ctx, query, variantID).Scan(
		&product.VariantID,
		&product.ProductID,
		&product.Name,
		&product.ImageURL,
		&product.Price,
		&product.Available,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// GetProductsByProductIDs retrieves products for the given product IDs.
// Missing IDs are silently omitted from the result.
func (s *Storage) GetProductsByProductIDs(ctx context.Context, productIDs []string) ([]*models.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(productIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT variant_id, product_id, name, image_url, price, available
		FROM products
		WHERE product_id IN (%s)
	`, placeholders)

	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]*models.Product, error) {
	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(
			&product.VariantID,
			&product.ProductID,
			&product.Name,
			&product.ImageURL,
			&product.Price,
			&product.Available,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return products, nil
}
