package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sorochan/lavka/internal/server/config"
	"github.com/sorochan/lavka/internal/server/handlers"
	"github.com/sorochan/lavka/internal/server/middleware"
	"github.com/sorochan/lavka/internal/server/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// Server представляет HTTP сервер магазина
type Server struct {
	httpServer *http.Server
	storage    *sqlite.Storage
	logger     *slog.Logger
}

// New создает сервер с полностью сконфигурированным роутером
func New(cfg *config.Config, store *sqlite.Storage, version string, logger *slog.Logger) *Server {
	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(cfg.JWTSecret),
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(store, store, jwtConfig, logger)
	catalogHandler := handlers.NewCatalogHandler(store, logger)
	cartHandler := handlers.NewCartHandler(store, store, logger)
	wishlistHandler := handlers.NewWishlistHandler(store, store, logger)
	healthHandler := handlers.NewHealthHandler(version, logger)

	r := chi.NewRouter()
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.LoggingWithSkip(logger, []string{"/api/v1/health"}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/products", catalogHandler.ListProducts)

		// Auth эндпоинты с rate limit от перебора паролей
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitMiddleware(cfg.AuthRateLimit, cfg.AuthRateWindow, logger))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.Refresh)
		})

		// Все, что ниже, требует валидный access token
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(logger, jwtConfig))

			r.Post("/auth/logout", authHandler.Logout)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.Clear)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{variantID}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{variantID}", cartHandler.RemoveItem)

			r.Get("/wishlist", wishlistHandler.GetPage)
			r.Post("/wishlist/check", wishlistHandler.Check)
			r.Post("/wishlist/{productID}", wishlistHandler.AddItem)
			r.Delete("/wishlist/{productID}", wishlistHandler.RemoveItem)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		storage: store,
		logger:  logger,
	}
}

// Run запускает сервер и блокируется до отмены контекста,
// после чего выполняет graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", slog.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
