package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorochan/lavka/pkg/api"
)

func TestNewRateLimiter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	limiter := NewRateLimiter(10, 1*time.Minute, logger)
	defer limiter.Stop()

	assert.NotNil(t, limiter)
	assert.Equal(t, 10, limiter.rate)
	assert.Equal(t, 1*time.Minute, limiter.window)
	assert.NotNil(t, limiter.buckets)
	assert.NotNil(t, limiter.cleanupC)
}

func TestRateLimiter_Allow(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("First requests within limit are allowed", func(t *testing.T) {
		limiter := NewRateLimiter(5, 1*time.Minute, logger)
		defer limiter.Stop()

		for i := range 5 {
			assert.True(t, limiter.Allow("192.168.1.1"), fmt.Sprintf("request %d should be allowed", i+1))
		}
	})

	t.Run("Requests over limit are denied", func(t *testing.T) {
		limiter := NewRateLimiter(3, 1*time.Minute, logger)
		defer limiter.Stop()

		for range 3 {
			assert.True(t, limiter.Allow("192.168.1.2"))
		}
		assert.False(t, limiter.Allow("192.168.1.2"))
	})

	t.Run("Keys are limited independently", func(t *testing.T) {
		limiter := NewRateLimiter(2, 1*time.Minute, logger)
		defer limiter.Stop()

		for range 2 {
			assert.True(t, limiter.Allow("192.168.1.3"))
		}
		assert.False(t, limiter.Allow("192.168.1.3"))

		// Другой ключ не задет исчерпанным bucket'ом
		assert.True(t, limiter.Allow("192.168.1.4"))
	})

	t.Run("Tokens refill after the window elapses", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond, logger)
		defer limiter.Stop()

		for range 2 {
			assert.True(t, limiter.Allow("192.168.1.5"))
		}
		assert.False(t, limiter.Allow("192.168.1.5"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("192.168.1.5"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Requests within limit pass through", func(t *testing.T) {
		handler := RateLimitMiddleware(5, 1*time.Minute, logger)(okHandler)

		for range 5 {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("Request over limit gets structured 429", func(t *testing.T) {
		handler := RateLimitMiddleware(1, 1*time.Minute, logger)(okHandler)

		req1 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req1.RemoteAddr = "192.168.1.2:12345"
		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		req2 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req2.RemoteAddr = "192.168.1.2:12345"
		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)

		var errResp api.ErrorResponse
		require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &errResp))
		assert.Equal(t, api.CodeRateLimited, errResp.Code)
	})

	t.Run("Different IPs have separate limits", func(t *testing.T) {
		handler := RateLimitMiddleware(1, 1*time.Minute, logger)(okHandler)

		req1 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
		req1.RemoteAddr = "192.168.1.3:12345"
		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, req1)
		assert.Equal(t, http.StatusOK, w1.Code)

		req2 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
		req2.RemoteAddr = "192.168.1.4:12345"
		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, req2)
		assert.Equal(t, http.StatusOK, w2.Code)
	})
}

func TestRateLimiter_CleanupOldBuckets(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	limiter := NewRateLimiter(10, 50*time.Millisecond, logger)
	defer limiter.Stop()

	limiter.Allow("192.168.1.1")
	limiter.Allow("192.168.1.2")

	limiter.mu.RLock()
	assert.Len(t, limiter.buckets, 2)
	limiter.mu.RUnlock()

	// После двух окон неактивности bucket'ы подлежат удалению
	time.Sleep(120 * time.Millisecond)
	limiter.cleanupOldBuckets()

	limiter.mu.RLock()
	assert.Empty(t, limiter.buckets)
	limiter.mu.RUnlock()
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "RemoteAddr only",
			remoteAddr: "192.168.1.1:12345",
			want:       "192.168.1.1:12345",
		},
		{
			name:       "X-Forwarded-For single IP",
			remoteAddr: "10.0.0.1:12345",
			xff:        "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "X-Forwarded-For takes first IP from list",
			remoteAddr: "10.0.0.1:12345",
			xff:        "203.0.113.7, 10.0.0.2, 10.0.0.3",
			want:       "203.0.113.7",
		},
		{
			name:       "X-Real-IP fallback",
			remoteAddr: "10.0.0.1:12345",
			xri:        "203.0.113.9",
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
