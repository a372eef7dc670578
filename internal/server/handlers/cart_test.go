package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/pkg/api"
)

const testUserID = "user-1"

func testCatalog() *mockCatalogStorage {
	return newMockCatalogStorage(
		&models.Product{ProductID: "prod-espresso", VariantID: "var-espresso", Name: "Espresso Blend", Price: 64900, Available: true},
		&models.Product{ProductID: "prod-filter", VariantID: "var-filter", Name: "Filter Roast", Price: 69900, Available: true},
		&models.Product{ProductID: "prod-server", VariantID: "var-server", Name: "Glass Server", Price: 159000, Available: false},
	)
}

func newCartHandler(cart *mockCartStorage) *CartHandler {
	return NewCartHandler(cart, testCatalog(), discardLogger())
}

func addCartItem(t *testing.T, h *CartHandler, variantID string, quantity int) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(api.AddCartItemRequest{VariantID: variantID, Quantity: quantity})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewReader(body))
	return doRequest(t, h.AddItem, authedRequest(req, testUserID))
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) api.CartResponse {
	t.Helper()

	var resp api.CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCartHandler_AddItemReturnsFullSnapshot(t *testing.T) {
	h := newCartHandler(newMockCartStorage())

	rec := addCartItem(t, h, "var-espresso", 2)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Espresso Blend", cart.Items[0].Name)
	assert.Equal(t, int64(64900), cart.Items[0].UnitPrice)
	assert.Equal(t, int64(129800), cart.Items[0].TotalPrice)

	// Агрегаты согласованы с позициями
	assert.Equal(t, 2, cart.TotalQuantity)
	assert.Equal(t, int64(129800), cart.TotalAmount)
	assert.Equal(t, 1, cart.UniqueItems)
	assert.False(t, cart.HasUnavailable)
}

func TestCartHandler_AddItemAccumulates(t *testing.T) {
	h := newCartHandler(newMockCartStorage())

	addCartItem(t, h, "var-espresso", 2)
	rec := addCartItem(t, h, "var-espresso", 3)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalQuantity)
}

func TestCartHandler_AddItem_Validation(t *testing.T) {
	h := newCartHandler(newMockCartStorage())

	tests := []struct {
		name       string
		variantID  string
		quantity   int
		wantStatus int
		wantCode   string
	}{
		{name: "zero quantity", variantID: "var-espresso", quantity: 0, wantStatus: http.StatusBadRequest, wantCode: api.CodeValidation},
		{name: "negative quantity", variantID: "var-espresso", quantity: -1, wantStatus: http.StatusBadRequest, wantCode: api.CodeValidation},
		{name: "empty variant", variantID: "", quantity: 1, wantStatus: http.StatusBadRequest, wantCode: api.CodeValidation},
		{name: "unknown variant", variantID: "var-unknown", quantity: 1, wantStatus: http.StatusNotFound, wantCode: api.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := addCartItem(t, h, tt.variantID, tt.quantity)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var errResp api.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantCode, errResp.Code)
		})
	}
}

func TestCartHandler_UpdateItem(t *testing.T) {
	h := newCartHandler(newMockCartStorage())
	addCartItem(t, h, "var-espresso", 2)

	body, err := json.Marshal(api.UpdateCartItemRequest{Quantity: 7})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/var-espresso", bytes.NewReader(body))
	req = withURLParam(authedRequest(req, testUserID), "variantID", "var-espresso")
	rec := doRequest(t, h.UpdateItem, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartHandler_UpdateItem_ZeroRemoves(t *testing.T) {
	h := newCartHandler(newMockCartStorage())
	addCartItem(t, h, "var-espresso", 2)

	body, err := json.Marshal(api.UpdateCartItemRequest{Quantity: 0})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/var-espresso", bytes.NewReader(body))
	req = withURLParam(authedRequest(req, testUserID), "variantID", "var-espresso")
	rec := doRequest(t, h.UpdateItem, req)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeCart(t, rec)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.TotalQuantity)
}

func TestCartHandler_RemoveItem_MissingRespondsNotFound(t *testing.T) {
	h := newCartHandler(newMockCartStorage())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/var-espresso", nil)
	req = withURLParam(authedRequest(req, testUserID), "variantID", "var-espresso")
	rec := doRequest(t, h.RemoveItem, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Код обязателен: клиент по нему распознает benign duplicate
	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, api.CodeNotFound, errResp.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	h := newCartHandler(newMockCartStorage())
	addCartItem(t, h, "var-espresso", 2)
	addCartItem(t, h, "var-filter", 1)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	rec := doRequest(t, h.Clear, authedRequest(req, testUserID))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeCart(t, rec)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0, cart.UniqueItems)
}

func TestCartHandler_UnavailableProductFlagged(t *testing.T) {
	h := newCartHandler(newMockCartStorage())

	rec := addCartItem(t, h, "var-server", 1)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Unavailable)
	assert.True(t, cart.HasUnavailable)
}

func TestCartHandler_ProductGoneFromCatalog(t *testing.T) {
	cartStore := newMockCartStorage()
	h := newCartHandler(cartStore)

	// Позиция осталась в корзине, но товара больше нет в каталоге
	require.NoError(t, cartStore.UpsertCartEntry(t.Context(), &models.CartEntry{
		UserID:    testUserID,
		VariantID: "var-discontinued",
		Quantity:  1,
		UpdatedAt: time.Now(),
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := doRequest(t, h.GetCart, authedRequest(req, testUserID))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeCart(t, rec)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.Items[0].Unavailable)
	assert.Equal(t, int64(0), cart.Items[0].UnitPrice)
}

func TestCartHandler_Unauthorized(t *testing.T) {
	h := newCartHandler(newMockCartStorage())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := doRequest(t, h.GetCart, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
