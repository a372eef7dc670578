package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
	"github.com/sorochan/lavka/internal/validation"
	"github.com/sorochan/lavka/pkg/api"
)

// WishlistPageSize количество товаров на одной странице wishlist
const WishlistPageSize = 20

// MaxMembershipBatch максимальный размер батча проверки членства
const MaxMembershipBatch = 100

// WishlistHandler обрабатывает запросы wishlist.
// Мутации wishlist статусные: снапшот коллекции не возвращается,
// клиент подгружает его постранично.
type WishlistHandler struct {
	wishlist storage.WishlistStorage
	catalog  storage.CatalogStorage
	logger   *slog.Logger
}

// NewWishlistHandler создает новый handler wishlist
func NewWishlistHandler(wishlist storage.WishlistStorage, catalog storage.CatalogStorage, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		catalog:  catalog,
		logger:   logger,
	}
}

// GetPage обрабатывает GET /api/v1/wishlist?page=N
func (h *WishlistHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "invalid page number")
			return
		}
		page = parsed
	}

	offset := (page - 1) * WishlistPageSize

	entries, total, err := h.wishlist.ListWishlistPage(r.Context(), userID, offset, WishlistPageSize)
	if err != nil {
		h.logger.Error("failed to list wishlist", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	totalPages := (total + WishlistPageSize - 1) / WishlistPageSize

	items, err := h.denormalize(r, entries)
	if err != nil {
		h.logger.Error("failed to denormalize wishlist", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.WishlistPageResponse{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    page < totalPages,
	})
}

// AddItem обрабатывает POST /api/v1/wishlist/{productID}
// Повторное добавление отвечает 409 с кодом already_exists:
// клиент трактует его как успех (товар и так в wishlist)
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	productID := chi.URLParam(r, "productID")
	if err := validation.ValidateItemKey(productID); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	err := h.wishlist.AddWishlistEntry(r.Context(), &models.WishlistEntry{
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrWishlistItemExists) {
			writeError(w, h.logger, http.StatusConflict, api.CodeAlreadyExists, "product already in wishlist")
			return
		}
		h.logger.Error("failed to add wishlist item", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.StatusResponse{Status: "ok"})
}

// RemoveItem обрабатывает DELETE /api/v1/wishlist/{productID}
// Удаление отсутствующего товара отвечает 404 с кодом not_found:
// клиент трактует его как успех
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	productID := chi.URLParam(r, "productID")

	if err := h.wishlist.DeleteWishlistEntry(r.Context(), userID, productID); err != nil {
		if errors.Is(err, storage.ErrWishlistItemNotFound) {
			writeError(w, h.logger, http.StatusNotFound, api.CodeNotFound, "product not in wishlist")
			return
		}
		h.logger.Error("failed to remove wishlist item", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.StatusResponse{Status: "ok"})
}

// Check обрабатывает POST /api/v1/wishlist/check
// Батч-проверка членства: какие из запрошенных товаров в wishlist
func (h *WishlistHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	var req api.WishlistCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "invalid request body")
		return
	}

	if len(req.ProductIDs) > MaxMembershipBatch {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "batch too large")
		return
	}

	membership, err := h.wishlist.CheckMembership(r.Context(), userID, req.ProductIDs)
	if err != nil {
		h.logger.Error("failed to check membership", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.WishlistCheckResponse{Membership: membership})
}

// denormalize обогащает записи wishlist display-полями каталога
func (h *WishlistHandler) denormalize(r *http.Request, entries []*models.WishlistEntry) ([]api.WishlistItemPayload, error) {
	productIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		productIDs = append(productIDs, entry.ProductID)
	}

	products, err := h.catalog.GetProductsByProductIDs(r.Context(), productIDs)
	if err != nil {
		return nil, err
	}

	// Товар может иметь несколько вариаций: для wishlist берем первую
	byProduct := make(map[string]*models.Product, len(products))
	for _, p := range products {
		if _, ok := byProduct[p.ProductID]; !ok {
			byProduct[p.ProductID] = p
		}
	}

	items := make([]api.WishlistItemPayload, 0, len(entries))
	for _, entry := range entries {
		payload := api.WishlistItemPayload{ProductID: entry.ProductID}

		if p, ok := byProduct[entry.ProductID]; ok {
			payload.Name = p.Name
			payload.ImageURL = p.ImageURL
			payload.UnitPrice = p.Price
			payload.Unavailable = !p.Available
		} else {
			// Товар пропал из каталога
			payload.Unavailable = true
		}

		items = append(items, payload)
	}

	return items, nil
}
