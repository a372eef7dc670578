package sqlite

import (
	"context"
	"fmt"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
)

// ListCartEntries returns all cart entries for a user
func (s *Storage) ListCartEntries(ctx context.Context, userID string) ([]*models.CartEntry, error) {
	query := `
		SELECT user_id, variant_id, quantity, updated_at
		FROM cart_items
		WHERE user_id = ?
		ORDER BY updated_at
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*models.CartEntry

	for rows.Next() {
		entry := &models.CartEntry{}
		if err := rows.Scan(
			&entry.UserID,
			&entry.VariantID,
			&entry.Quantity,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// UpsertCartEntry inserts a new entry or adds quantity to an existing one
func (s *Storage) UpsertCartEntry(ctx context.Context, entry *models.CartEntry) error {
	query := `
		INSERT INTO cart_items (user_id, variant_id, quantity, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, variant_id)
		DO UPDATE SET quantity = quantity + excluded.quantity, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.UserID,
		entry.VariantID,
		entry.Quantity,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// SetCartEntryQuantity sets the exact quantity of an existing entry
func (s *Storage) SetCartEntryQuantity(ctx context.Context, userID, variantID string, quantity int) error {
	query := `
		UPDATE cart_items
		SET quantity = ?, updated_at = datetime('now')
		WHERE user_id = ? AND variant_id = ?
	`

	result, err := s.db.ExecContext(ctx, query, quantity, userID, variantID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCartItemNotFound
	}

	return nil
}

// DeleteCartEntry removes a single entry
func (s *Storage) DeleteCartEntry(ctx context.Context, userID, variantID string) error {
	query := `DELETE FROM cart_items WHERE user_id = ? AND variant_id = ?`

	result, err := s.db.ExecContext(ctx, query, userID, variantID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrCartItemNotFound
	}

	return nil
}

// ClearCart removes all entries for a user
func (s *Storage) ClearCart(ctx context.Context, userID string) (int, error) {
	query := `DELETE FROM cart_items WHERE user_id = ?`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
