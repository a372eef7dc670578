package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorochan/lavka/internal/client/storage"
	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/pkg/api"
)

type staticTokens struct{ token string }

func (s staticTokens) AccessToken(ctx context.Context) (string, error) {
	return s.token, nil
}

type failingTokens struct{ err error }

func (f failingTokens) AccessToken(ctx context.Context) (string, error) {
	return "", f.err
}

func TestCartCollection_TokenFailureClassification(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server when the token source fails")
	})

	tests := []struct {
		name     string
		tokenErr error
		wantKind Kind
	}{
		{
			// Сетевой сбой при refresh восстановим: сессия остается валидной,
			// классификация ошибки не должна подменяться на unauthorized.
			name:     "network refresh failure stays recoverable",
			tokenErr: fmt.Errorf("failed to refresh session: %w", &Error{Kind: KindNetwork, Message: "dial tcp: connection refused"}),
			wantKind: KindNetwork,
		},
		{
			name:     "rejected refresh token is unauthorized",
			tokenErr: fmt.Errorf("failed to refresh session: %w", &Error{Kind: KindUnauthorized, Code: api.CodeUnauthorized, Message: "invalid refresh token"}),
			wantKind: KindUnauthorized,
		},
		{
			name:     "missing session is unauthorized",
			tokenErr: fmt.Errorf("no active session: %w", storage.ErrAuthNotFound),
			wantKind: KindUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll := NewCartCollection(client, failingTokens{err: tt.tokenErr})

			snap, err := coll.ApplyMutation(context.Background(), models.Mutation{
				Op:       models.OpAdd,
				Key:      "var-1",
				Quantity: 1,
			})
			require.Error(t, err)
			assert.Nil(t, snap)
			assert.Equal(t, tt.wantKind, KindOf(err))
		})
	}
}

func TestWishlistCollection_TokenNetworkFailureStaysRecoverable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server when the token source fails")
	})

	tokenErr := fmt.Errorf("failed to refresh session: %w", &Error{Kind: KindNetwork, Message: "dial tcp: i/o timeout"})
	coll := NewWishlistCollection(client, failingTokens{err: tokenErr})

	_, err := coll.ApplyMutation(context.Background(), models.Mutation{Op: models.OpAdd, Key: "prod-1"})
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))

	_, err = coll.CheckMembership(context.Background(), []string{"prod-1"})
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestCartCollection_ApplyMutationReturnsSnapshot(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/cart/items", r.URL.Path)

		_ = json.NewEncoder(w).Encode(api.CartResponse{
			Items: []api.CartItemPayload{
				{VariantID: "var-1", Name: "Espresso", UnitPrice: 64900, Quantity: 2, TotalPrice: 129800},
			},
			TotalQuantity: 2,
			TotalAmount:   129800,
			UniqueItems:   1,
		})
	})

	coll := NewCartCollection(client, staticTokens{token: "access-1"})

	snap, err := coll.ApplyMutation(context.Background(), models.Mutation{
		Op:       models.OpAdd,
		Key:      "var-1",
		Quantity: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, snap, "cart mutations must return the full snapshot")

	require.Len(t, snap.Items, 1)
	assert.Equal(t, "var-1", snap.Items[0].Key)
	assert.Equal(t, snap.Summary, models.SummaryOf(snap.Items))
	assert.Equal(t, 1, snap.Page.Current)
}

func TestCartCollection_OpsHitExpectedEndpoints(t *testing.T) {
	tests := []struct {
		name       string
		mutation   models.Mutation
		wantMethod string
		wantPath   string
	}{
		{
			name:       "set quantity",
			mutation:   models.Mutation{Op: models.OpSetQuantity, Key: "var-1", Quantity: 3},
			wantMethod: http.MethodPut,
			wantPath:   "/api/v1/cart/items/var-1",
		},
		{
			name:       "remove",
			mutation:   models.Mutation{Op: models.OpRemove, Key: "var-1"},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v1/cart/items/var-1",
		},
		{
			name:       "clear",
			mutation:   models.Mutation{Op: models.OpClear},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v1/cart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				_ = json.NewEncoder(w).Encode(api.CartResponse{})
			})

			coll := NewCartCollection(client, staticTokens{token: "access-1"})

			_, err := coll.ApplyMutation(context.Background(), tt.mutation)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, gotMethod)
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestWishlistCollection_ApplyMutationStatusOnly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/wishlist/prod-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(api.StatusResponse{Status: "ok"})
	})

	coll := NewWishlistCollection(client, staticTokens{token: "access-1"})

	snap, err := coll.ApplyMutation(context.Background(), models.Mutation{
		Op:  models.OpAdd,
		Key: "prod-1",
	})
	require.NoError(t, err)
	assert.Nil(t, snap, "wishlist mutations are status-only")
}

func TestWishlistCollection_FetchPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		_ = json.NewEncoder(w).Encode(api.WishlistPageResponse{
			Items: []api.WishlistItemPayload{
				{ProductID: "prod-1", Name: "Espresso", UnitPrice: 64900},
				{ProductID: "prod-2", Name: "Filter", UnitPrice: 69900},
			},
			Page:       2,
			TotalPages: 3,
			TotalItems: 50,
			HasMore:    true,
		})
	})

	coll := NewWishlistCollection(client, staticTokens{token: "access-1"})

	snap, err := coll.FetchPage(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, snap.Items, 2)
	// Wishlist позиции всегда с количеством 1
	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.Equal(t, models.SummaryOf(snap.Items), snap.Summary)
	assert.Equal(t, 2, snap.Page.Current)
	assert.Equal(t, 3, snap.Page.Total)
	assert.True(t, snap.Page.HasMore)
}

func TestWishlistCollection_CheckMembership(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req api.WishlistCheckRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"prod-1", "prod-2"}, req.ProductIDs)

		_ = json.NewEncoder(w).Encode(api.WishlistCheckResponse{
			Membership: map[string]bool{"prod-1": true, "prod-2": false},
		})
	})

	coll := NewWishlistCollection(client, staticTokens{token: "access-1"})

	membership, err := coll.CheckMembership(context.Background(), []string{"prod-1", "prod-2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"prod-1": true, "prod-2": false}, membership)
}
