package storage

import (
	"context"

	"github.com/sorochan/lavka/internal/models"
)

// CartStorage defines interface for cart persistence.
// Позиция корзины идентифицируется парой (userID, variantID).
type CartStorage interface {
	// ListCartEntries returns all cart entries for a user
	// Returns empty slice if cart is empty
	ListCartEntries(ctx context.Context, userID string) ([]*models.CartEntry, error)

	// UpsertCartEntry inserts a new entry or adds quantity to an existing one
	UpsertCartEntry(ctx context.Context, entry *models.CartEntry) error

	// SetCartEntryQuantity sets the exact quantity of an existing entry
	// Returns ErrCartItemNotFound if entry doesn't exist
	SetCartEntryQuantity(ctx context.Context, userID, variantID string, quantity int) error

	// DeleteCartEntry removes a single entry
	// Returns ErrCartItemNotFound if entry doesn't exist
	DeleteCartEntry(ctx context.Context, userID, variantID string) error

	// ClearCart removes all entries for a user
	// Returns number of deleted entries
	ClearCart(ctx context.Context, userID string) (int, error)
}
