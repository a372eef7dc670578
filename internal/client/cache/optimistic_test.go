package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorochan/lavka/internal/models"
)

func TestApplyMutation_Cart(t *testing.T) {
	base := testSnapshot("sku-1")

	tests := []struct {
		name      string
		mutation  models.Mutation
		wantKeys  []string
		wantQty   int
		wantTotal int64
	}{
		{
			name: "add new item",
			mutation: models.Mutation{
				Op:       models.OpAdd,
				Key:      "sku-2",
				Quantity: 2,
				Product:  models.ProductSummary{Name: "Cold brew", UnitPrice: 10000},
			},
			wantKeys:  []string{"sku-1", "sku-2"},
			wantQty:   3,
			wantTotal: 21000,
		},
		{
			name: "add existing item increments quantity",
			mutation: models.Mutation{
				Op:       models.OpAdd,
				Key:      "sku-1",
				Quantity: 3,
			},
			wantKeys:  []string{"sku-1"},
			wantQty:   4,
			wantTotal: 4000,
		},
		{
			name: "set quantity",
			mutation: models.Mutation{
				Op:       models.OpSetQuantity,
				Key:      "sku-1",
				Quantity: 5,
			},
			wantKeys:  []string{"sku-1"},
			wantQty:   5,
			wantTotal: 5000,
		},
		{
			name: "set quantity to zero removes item",
			mutation: models.Mutation{
				Op:       models.OpSetQuantity,
				Key:      "sku-1",
				Quantity: 0,
			},
			wantKeys: nil,
		},
		{
			name: "remove item",
			mutation: models.Mutation{
				Op:  models.OpRemove,
				Key: "sku-1",
			},
			wantKeys: nil,
		},
		{
			name: "remove unknown key is no-op",
			mutation: models.Mutation{
				Op:  models.OpRemove,
				Key: "sku-404",
			},
			wantKeys:  []string{"sku-1"},
			wantQty:   1,
			wantTotal: 1000,
		},
		{
			name:     "clear",
			mutation: models.Mutation{Op: models.OpClear},
			wantKeys: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyMutation(base.Clone(), KindCart, tt.mutation)

			keys := make([]string, 0, len(got.Items))
			for _, item := range got.Items {
				keys = append(keys, item.Key)
			}
			if tt.wantKeys == nil {
				assert.Empty(t, keys)
			} else {
				assert.Equal(t, tt.wantKeys, keys)
			}

			assert.Equal(t, tt.wantQty, got.Summary.TotalQuantity)
			assert.Equal(t, tt.wantTotal, got.Summary.TotalAmount)

			// Инварианты агрегатов для любого результата апдейтера
			assert.Equal(t, models.SummaryOf(got.Items), got.Summary)
			assert.Equal(t, len(got.Items), got.Summary.UniqueItems)
		})
	}
}

func TestApplyAdd_WishlistDuplicateIsNoop(t *testing.T) {
	base := testSnapshot("prod-1")

	got := applyAdd(base.Clone(), KindWishlist, models.Mutation{
		Op:       models.OpAdd,
		Key:      "prod-1",
		Quantity: 7,
	})

	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, base.Summary, got.Summary)
}

func TestApplyAdd_WishlistQuantityForcedToOne(t *testing.T) {
	got := applyAdd(models.Snapshot{}, KindWishlist, models.Mutation{
		Op:       models.OpAdd,
		Key:      "prod-1",
		Quantity: 7,
		Product:  models.ProductSummary{Name: "Teapot", UnitPrice: 2500},
	})

	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.Items[0].Quantity)
	assert.Equal(t, int64(2500), got.Items[0].TotalPrice)
}

func TestApplyAdd_UsesProductPlaceholder(t *testing.T) {
	got := applyAdd(models.Snapshot{}, KindCart, models.Mutation{
		Op:       models.OpAdd,
		Key:      "sku-9",
		Quantity: 2,
		Product: models.ProductSummary{
			Name:      "Espresso beans",
			ImageURL:  "https://cdn.example.com/beans.jpg",
			UnitPrice: 10000,
		},
	})

	require.Len(t, got.Items, 1)
	item := got.Items[0]
	assert.Equal(t, "Espresso beans", item.Name)
	assert.Equal(t, "https://cdn.example.com/beans.jpg", item.ImageURL)
	assert.Equal(t, int64(20000), item.TotalPrice)
	assert.Equal(t, int64(20000), got.Summary.TotalAmount)
	assert.Equal(t, 2, got.Summary.TotalQuantity)
}

func TestApplyMutation_UnavailableFlagPropagates(t *testing.T) {
	snap := applyAdd(models.Snapshot{}, KindCart, models.Mutation{
		Op:       models.OpAdd,
		Key:      "sku-1",
		Quantity: 1,
		Product:  models.ProductSummary{Name: "Discontinued", UnitPrice: 500, Unavailable: true},
	})

	assert.True(t, snap.Summary.HasUnavailable)

	snap = applyRemove(snap, "sku-1")
	assert.False(t, snap.Summary.HasUnavailable)
}
