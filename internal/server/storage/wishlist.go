package storage

import (
	"context"

	"github.com/sorochan/lavka/internal/models"
)

// WishlistStorage defines interface for wishlist persistence.
// Wishlist пагинируется на стороне хранилища: мобильный клиент
// подгружает его постранично.
type WishlistStorage interface {
	// AddWishlistEntry adds a product to the wishlist
	// Returns ErrWishlistItemExists if product is already there
	AddWishlistEntry(ctx context.Context, entry *models.WishlistEntry) error

	// DeleteWishlistEntry removes a product from the wishlist
	// Returns ErrWishlistItemNotFound if entry doesn't exist
	DeleteWishlistEntry(ctx context.Context, userID, productID string) error

	// ListWishlistPage returns one page of wishlist entries ordered by
	// creation time (newest first) plus the total number of entries
	ListWishlistPage(ctx context.Context, userID string, offset, limit int) ([]*models.WishlistEntry, int, error)

	// CheckMembership reports which of the given product IDs are in the
	// user's wishlist. Result contains an answer for every requested ID.
	CheckMembership(ctx context.Context, userID string, productIDs []string) (map[string]bool, error)
}
