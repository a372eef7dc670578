package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sorochan/lavka/internal/client/api"
	"github.com/sorochan/lavka/internal/client/storage"
	"github.com/sorochan/lavka/internal/validation"
	pkgapi "github.com/sorochan/lavka/pkg/api"
)

// refreshLeeway запас до истечения access token, после которого
// токен считается подлежащим обновлению
const refreshLeeway = 30 * time.Second

// Session содержит данные активной сессии покупателя
type Session struct {
	Username  string
	UserID    string
	ExpiresAt int64 // unix time истечения access token
}

// service реализует Service поверх API клиента и шифрованного хранилища
type service struct {
	apiClient *api.Client
	store     *Store
	logger    *slog.Logger
	now       func() time.Time
}

var _ Service = (*service)(nil)

// NewService создает сервис сессии
func NewService(apiClient *api.Client, store *Store, logger *slog.Logger) Service {
	return &service{
		apiClient: apiClient,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// Register регистрирует нового покупателя и сразу выполняет вход
func (s *service) Register(ctx context.Context, username, password string) (*Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	_, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return s.Login(ctx, username, password)
}

// Login выполняет аутентификацию и сохраняет сессию локально
func (s *service) Login(ctx context.Context, username, password string) (*Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	expiresAt := s.now().Unix() + resp.ExpiresIn
	auth := &storage.AuthData{
		Username:     username,
		UserID:       resp.UserID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiresAt,
	}
	if err := s.store.Save(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &Session{Username: username, UserID: resp.UserID, ExpiresAt: expiresAt}, nil
}

// Logout отзывает refresh token на сервере (best effort)
// и удаляет локальные данные сессии
func (s *service) Logout(ctx context.Context) error {
	auth, err := s.store.Get(ctx)
	if err != nil {
		s.logger.Debug("no session found during logout", "error", err)
	} else {
		req := pkgapi.LogoutRequest{RefreshToken: auth.RefreshToken}
		if logoutErr := s.apiClient.Logout(ctx, auth.AccessToken, req); logoutErr != nil {
			// Не прерываем процесс, если сервер недоступен
			s.logger.Warn("failed to logout on server", "error", logoutErr)
		}
	}

	return s.SignOut(ctx)
}

// SignOut удаляет только локальные данные сессии
func (s *service) SignOut(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// IsAuthenticated проверяет наличие валидной сессии.
// Истекший access token не делает сессию невалидной:
// ее можно продлить по refresh token.
func (s *service) IsAuthenticated(ctx context.Context) (bool, error) {
	_, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// AccessToken возвращает актуальный access token.
// Токен с истекающим сроком действия прозрачно обновляется по refresh token;
// при отказе refresh сессия сносится — клиенту нужен повторный вход.
func (s *service) AccessToken(ctx context.Context) (string, error) {
	auth, err := s.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("no active session: %w", err)
	}

	if s.now().Add(refreshLeeway).Unix() < auth.ExpiresAt {
		return auth.AccessToken, nil
	}

	resp, err := s.apiClient.Refresh(ctx, pkgapi.RefreshRequest{RefreshToken: auth.RefreshToken})
	if err != nil {
		if api.KindOf(err) == api.KindUnauthorized {
			s.logger.Warn("refresh token rejected, clearing session")
			if delErr := s.store.Delete(ctx); delErr != nil {
				s.logger.Error("failed to delete session", "error", delErr)
			}
		}
		return "", fmt.Errorf("failed to refresh session: %w", err)
	}

	auth.AccessToken = resp.AccessToken
	auth.RefreshToken = resp.RefreshToken
	auth.ExpiresAt = s.now().Unix() + resp.ExpiresIn
	if err := s.store.Save(ctx, auth); err != nil {
		return "", fmt.Errorf("failed to save refreshed session: %w", err)
	}

	return auth.AccessToken, nil
}

// CurrentUser возвращает данные текущей сессии
func (s *service) CurrentUser(ctx context.Context) (*storage.AuthData, error) {
	return s.store.Get(ctx)
}
