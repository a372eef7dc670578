package storage

import (
	"context"

	"github.com/sorochan/lavka/internal/models"
)

// CatalogStorage defines interface for product catalog access
type CatalogStorage interface {
	// ListProducts returns the full product catalog
	ListProducts(ctx context.Context) ([]*models.Product, error)

	// GetProductByVariantID retrieves a product by its variant ID
	// Returns ErrProductNotFound if product doesn't exist
	GetProductByVariantID(ctx context.Context, variantID string) (*models.Product, error)

	// GetProductsByProductIDs retrieves products for the given product IDs.
	// Missing IDs are silently omitted from the result.
	GetProductsByProductIDs(ctx context.Context, productIDs []string) ([]*models.Product, error)
}
