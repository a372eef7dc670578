package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
)

// AddWishlistEntry adds a product to the wishlist
func (s *Storage) AddWishlistEntry(ctx context.Context, entry *models.WishlistEntry) error {
	query := `
		INSERT INTO wishlist_items (user_id, product_id, created_at)
		VALUES (?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.UserID,
		entry.ProductID,
		entry.CreatedAt,
	)

	if err != nil {
		// Повторное добавление — отдельная ошибка, клиент трактует ее
		// как benign duplicate
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrWishlistItemExists
		}
		return fmt.Errorf("failed to insert wishlist item: %w", err)
	}

	return nil
}

// DeleteWishlistEntry removes a product from the wishlist
func (s *Storage) DeleteWishlistEntry(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?`

	result, err := s.db.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrWishlistItemNotFound
	}

	return nil
}

// ListWishlistPage returns one page of wishlist entries ordered by
// creation time (newest first) plus the total number of entries
func (s *Storage) ListWishlistPage(ctx context.Context, userID string, offset, limit int) ([]*models.WishlistEntry, int, error) {
	countQuery := `SELECT COUNT(*) FROM wishlist_items WHERE user_id = ?`

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	query := `
		SELECT user_id, product_id, created_at
		FROM wishlist_items
		WHERE user_id = ?
		ORDER BY created_at DESC, product_id
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query wishlist items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*models.WishlistEntry

	for rows.Next() {
		entry := &models.WishlistEntry{}
		if err := rows.Scan(
			&entry.UserID,
			&entry.ProductID,
			&entry.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, total, nil
}

// CheckMembership reports which of the given product IDs are in the
// user's wishlist. Result contains an answer for every requested ID.
func (s *Storage) CheckMembership(ctx context.Context, userID string, productIDs []string) (map[string]bool, error) {
	membership := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		membership[id] = false
	}

	if len(productIDs) == 0 {
		return membership, nil
	}

	placeholders := strings.Repeat("?,", len(productIDs))
	placeholders = placeholders[:len(placeholders)-1]

	query := fmt.Sprintf(`
		SELECT product_id
		FROM wishlist_items
		WHERE user_id = ? AND product_id IN (%s)
	`, placeholders)

	args := make([]any, 0, len(productIDs)+1)
	args = append(args, userID)
	for _, id := range productIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist membership: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		membership[productID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return membership, nil
}
