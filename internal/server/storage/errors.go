package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrInvalidToken indicates that token format is invalid
	ErrInvalidToken = errors.New("invalid token")

	// ErrProductNotFound indicates that catalog product was not found
	ErrProductNotFound = errors.New("product not found")

	// ErrCartItemNotFound indicates that cart position was not found
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrWishlistItemNotFound indicates that wishlist entry was not found
	ErrWishlistItemNotFound = errors.New("wishlist item not found")

	// ErrWishlistItemExists indicates that product is already in the wishlist
	ErrWishlistItemExists = errors.New("wishlist item already exists")
)
