package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
)

func addWishlistEntry(t *testing.T, ctx context.Context, s *Storage, userID, productID string, createdAt time.Time) {
	t.Helper()

	require.NoError(t, s.AddWishlistEntry(ctx, &models.WishlistEntry{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: createdAt,
	}))
}

func TestWishlistStorage_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	addWishlistEntry(t, ctx, s, userID, "prod-espresso", time.Now())

	err := s.AddWishlistEntry(ctx, &models.WishlistEntry{
		UserID:    userID,
		ProductID: "prod-espresso",
		CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, storage.ErrWishlistItemExists)
}

func TestWishlistStorage_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	err := s.DeleteWishlistEntry(ctx, userID, "prod-espresso")
	assert.ErrorIs(t, err, storage.ErrWishlistItemNotFound)

	addWishlistEntry(t, ctx, s, userID, "prod-espresso", time.Now())
	require.NoError(t, s.DeleteWishlistEntry(ctx, userID, "prod-espresso"))
}

func TestWishlistStorage_ListPage(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	base := time.Now().Add(-time.Hour)
	products := []string{"prod-a", "prod-b", "prod-c", "prod-d", "prod-e"}
	for i, productID := range products {
		addWishlistEntry(t, ctx, s, userID, productID, base.Add(time.Duration(i)*time.Minute))
	}

	// Первая страница: самые свежие
	entries, total, err := s.ListWishlistPage(ctx, userID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "prod-e", entries[0].ProductID)
	assert.Equal(t, "prod-d", entries[1].ProductID)

	// Последняя страница короче limit
	entries, total, err = s.ListWishlistPage(ctx, userID, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, entries, 1)
	assert.Equal(t, "prod-a", entries[0].ProductID)

	// За пределами диапазона — пустая страница, не ошибка
	entries, total, err = s.ListWishlistPage(ctx, userID, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, entries)
}

func TestWishlistStorage_CheckMembership(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)
	otherID := createTestUser(t, ctx, s)

	addWishlistEntry(t, ctx, s, userID, "prod-espresso", time.Now())
	addWishlistEntry(t, ctx, s, otherID, "prod-filter", time.Now())

	membership, err := s.CheckMembership(ctx, userID, []string{"prod-espresso", "prod-filter", "prod-unknown"})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{
		"prod-espresso": true,
		"prod-filter":   false, // в wishlist другого пользователя
		"prod-unknown":  false,
	}, membership)
}

func TestWishlistStorage_CheckMembership_EmptyBatch(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	membership, err := s.CheckMembership(ctx, userID, nil)
	require.NoError(t, err)
	assert.Empty(t, membership)
}
