package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorochan/lavka/internal/server/handlers"
	"github.com/sorochan/lavka/pkg/api"
)

func testJWTConfig() handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:          []byte("test-secret-key"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	cfg := testJWTConfig()

	token, _, err := handlers.GenerateAccessToken(cfg, "user-123", "shopper")
	require.NoError(t, err)

	var gotUserID, gotUsername string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(handlers.UserIDKey).(string)
		gotUsername, _ = r.Context().Value(handlers.UsernameKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(logger, cfg)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", gotUserID)
	assert.Equal(t, "shopper", gotUsername)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	cfg := testJWTConfig()

	expired := handlers.JWTConfig{
		Secret:         cfg.Secret,
		AccessTokenTTL: -time.Minute,
	}
	expiredToken, _, err := handlers.GenerateAccessToken(expired, "user-123", "shopper")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "expired token", header: "Bearer " + expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(logger, cfg)(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			// Ошибка структурирована: клиент различает ее по коду
			var errResp api.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, api.CodeUnauthorized, errResp.Code)
		})
	}
}
