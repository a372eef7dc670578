package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
	"github.com/sorochan/lavka/internal/validation"
	"github.com/sorochan/lavka/pkg/api"
)

// CartHandler обрабатывает запросы корзины.
// Каждая мутация отвечает полным авторитетным снапшотом корзины —
// клиентский кэш использует его как точку ресинхронизации.
type CartHandler struct {
	cart    storage.CartStorage
	catalog storage.CatalogStorage
	logger  *slog.Logger
}

// NewCartHandler создает новый handler корзины
func NewCartHandler(cart storage.CartStorage, catalog storage.CatalogStorage, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:    cart,
		catalog: catalog,
		logger:  logger,
	}
}

// GetCart обрабатывает GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	h.respondWithCart(r.Context(), w, userID)
}

// AddItem обрабатывает POST /api/v1/cart/items
// Повторное добавление того же варианта суммирует количество
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	var req api.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "invalid request body")
		return
	}

	if err := validation.ValidateItemKey(req.VariantID); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}
	if err := validation.ValidateQuantity(req.Quantity); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	if _, err := h.catalog.GetProductByVariantID(r.Context(), req.VariantID); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			writeError(w, h.logger, http.StatusNotFound, api.CodeNotFound, "product not found")
			return
		}
		h.logger.Error("failed to get product", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	if err := h.cart.UpsertCartEntry(r.Context(), &models.CartEntry{
		UserID:    userID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		UpdatedAt: time.Now(),
	}); err != nil {
		h.logger.Error("failed to add cart item", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.respondWithCart(r.Context(), w, userID)
}

// UpdateItem обрабатывает PUT /api/v1/cart/items/{variantID}
// Нулевое количество трактуется как удаление позиции
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	variantID := chi.URLParam(r, "variantID")

	var req api.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "invalid request body")
		return
	}

	if req.Quantity < 0 {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "quantity cannot be negative")
		return
	}

	var err error
	if req.Quantity == 0 {
		err = h.cart.DeleteCartEntry(r.Context(), userID, variantID)
	} else {
		err = h.cart.SetCartEntryQuantity(r.Context(), userID, variantID, req.Quantity)
	}

	if err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			writeError(w, h.logger, http.StatusNotFound, api.CodeNotFound, "cart item not found")
			return
		}
		h.logger.Error("failed to update cart item", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.respondWithCart(r.Context(), w, userID)
}

// RemoveItem обрабатывает DELETE /api/v1/cart/items/{variantID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	variantID := chi.URLParam(r, "variantID")

	if err := h.cart.DeleteCartEntry(r.Context(), userID, variantID); err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			// Позиции уже нет: клиент распознает код и считает исход успешным
			writeError(w, h.logger, http.StatusNotFound, api.CodeNotFound, "cart item not found")
			return
		}
		h.logger.Error("failed to remove cart item", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.respondWithCart(r.Context(), w, userID)
}

// Clear обрабатывает DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	if _, err := h.cart.ClearCart(r.Context(), userID); err != nil {
		h.logger.Error("failed to clear cart", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.respondWithCart(r.Context(), w, userID)
}

// respondWithCart собирает и отправляет полный снапшот корзины
func (h *CartHandler) respondWithCart(ctx context.Context, w http.ResponseWriter, userID string) {
	resp, err := h.buildCartResponse(ctx, userID)
	if err != nil {
		h.logger.Error("failed to build cart response", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}

// buildCartResponse денормализует позиции корзины display-полями каталога
// и вычисляет агрегаты. Товар, пропавший из каталога, остается в корзине
// как недоступный.
func (h *CartHandler) buildCartResponse(ctx context.Context, userID string) (*api.CartResponse, error) {
	entries, err := h.cart.ListCartEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(entries))
	payloads := make([]api.CartItemPayload, 0, len(entries))

	for _, entry := range entries {
		item := models.Item{
			Key:      entry.VariantID,
			Quantity: entry.Quantity,
		}

		product, err := h.catalog.GetProductByVariantID(ctx, entry.VariantID)
		switch {
		case err == nil:
			item.Name = product.Name
			item.ImageURL = product.ImageURL
			item.UnitPrice = product.Price
			item.Unavailable = !product.Available
		case errors.Is(err, storage.ErrProductNotFound):
			item.Unavailable = true
		default:
			return nil, err
		}

		item.TotalPrice = item.UnitPrice * int64(item.Quantity)
		items = append(items, item)

		payloads = append(payloads, api.CartItemPayload{
			VariantID:   item.Key,
			Name:        item.Name,
			ImageURL:    item.ImageURL,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
			Unavailable: item.Unavailable,
		})
	}

	summary := models.SummaryOf(items)

	return &api.CartResponse{
		Items:          payloads,
		TotalQuantity:  summary.TotalQuantity,
		TotalAmount:    summary.TotalAmount,
		UniqueItems:    summary.UniqueItems,
		HasUnavailable: summary.HasUnavailable,
	}, nil
}
