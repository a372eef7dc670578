package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sorochan/lavka/internal/server/storage"
	"github.com/sorochan/lavka/pkg/api"
)

// CatalogHandler обрабатывает запросы каталога товаров
type CatalogHandler struct {
	catalog storage.CatalogStorage
	logger  *slog.Logger
}

// NewCatalogHandler создает новый handler каталога
func NewCatalogHandler(catalog storage.CatalogStorage, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts обрабатывает GET /api/v1/products
// Каталог публичный: аутентификация не требуется
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	resp := api.ProductListResponse{
		Products: make([]api.ProductPayload, 0, len(products)),
	}
	for _, p := range products {
		resp.Products = append(resp.Products, api.ProductPayload{
			ProductID: p.ProductID,
			VariantID: p.VariantID,
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			Price:     p.Price,
			Available: p.Available,
		})
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
