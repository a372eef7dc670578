package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sorochan/lavka/internal/crypto"
	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
	"github.com/sorochan/lavka/internal/validation"
	"github.com/sorochan/lavka/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	logger       *slog.Logger
	jwtConfig    JWTConfig
}

// NewAuthHandler создает новый handler аутентификации
func NewAuthHandler(userStorage storage.UserStorage, tokenStorage storage.TokenStorage, jwtConfig JWTConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		jwtConfig:    jwtConfig,
		logger:       logger,
	}
}

// Register обрабатывает POST /api/v1/auth/register
// Регистрирует нового покупателя. Пароль хешируется Argon2id,
// в базе хранятся только хеш и соль.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "invalid request body")
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		h.logger.Error("failed to generate salt", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password, salt)
	if err != nil {
		h.logger.Error("failed to hash password", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		PasswordSalt: base64.StdEncoding.EncodeToString(salt),
		CreatedAt:    time.Now(),
	}

	if err := h.userStorage.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			writeError(w, h.logger, http.StatusConflict, api.CodeAlreadyExists, "username already taken")
			return
		}
		h.logger.Error("failed to create user", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	h.logger.Info("user registered", slog.String("user_id", user.ID), slog.String("username", user.Username))

	writeJSON(w, h.logger, http.StatusCreated, api.RegisterResponse{
		UserID:  user.ID,
		Message: "user registered successfully",
	})
}

// Login обрабатывает POST /api/v1/auth/login
// Проверяет пароль и выдает пару access/refresh токенов
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "invalid request body")
		return
	}

	user, err := h.userStorage.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Не раскрываем, существует ли username
			writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "invalid username or password")
			return
		}
		h.logger.Error("failed to get user", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	salt, err := base64.StdEncoding.DecodeString(user.PasswordSalt)
	if err != nil {
		h.logger.Error("corrupted password salt", slog.String("user_id", user.ID))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	if err := crypto.VerifyPassword(req.Password, salt, user.PasswordHash); err != nil {
		h.logger.Warn("login failed", slog.String("username", req.Username))
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "invalid username or password")
		return
	}

	tokens, err := h.issueTokens(r, user)
	if err != nil {
		h.logger.Error("failed to issue tokens", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	// Не критично для логина
	if err := h.userStorage.UpdateLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		h.logger.Warn("failed to update last login", slog.Any("error", err))
	}

	h.logger.Info("user logged in", slog.String("user_id", user.ID))

	writeJSON(w, h.logger, http.StatusOK, tokens)
}

// Refresh обрабатывает POST /api/v1/auth/refresh
// Меняет валидный refresh token на новую пару токенов (ротация)
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "refresh token required")
		return
	}

	tokenHash, err := crypto.HashToken(req.RefreshToken)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, api.CodeValidation, "invalid refresh token")
		return
	}

	stored, err := h.tokenStorage.GetRefreshToken(r.Context(), tokenHash)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "invalid refresh token")
			return
		}
		h.logger.Error("failed to get refresh token", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = h.tokenStorage.DeleteRefreshToken(r.Context(), tokenHash)
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "refresh token expired")
		return
	}

	user, err := h.userStorage.GetUserByID(r.Context(), stored.UserID)
	if err != nil {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "user not found")
		return
	}

	// Ротация: старый токен отзывается до выдачи нового
	if err := h.tokenStorage.DeleteRefreshToken(r.Context(), tokenHash); err != nil {
		h.logger.Error("failed to rotate refresh token", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	tokens, err := h.issueTokens(r, user)
	if err != nil {
		h.logger.Error("failed to issue tokens", slog.Any("error", err))
		writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, tokens)
}

// Logout обрабатывает POST /api/v1/auth/logout
// Требует валидный access token (auth middleware) и отзывает refresh token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r)
	if !ok {
		writeError(w, h.logger, http.StatusUnauthorized, api.CodeUnauthorized, "unauthorized")
		return
	}

	var req api.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		// Без refresh token отзываем все сессии пользователя
		if _, err := h.tokenStorage.DeleteUserTokens(r.Context(), userID); err != nil {
			h.logger.Error("failed to delete user tokens", slog.Any("error", err))
			writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	tokenHash, err := crypto.HashToken(req.RefreshToken)
	if err == nil {
		if err := h.tokenStorage.DeleteRefreshToken(r.Context(), tokenHash); err != nil &&
			!errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.Error("failed to delete refresh token", slog.Any("error", err))
			writeError(w, h.logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
			return
		}
	}

	h.logger.Info("user logged out", slog.String("user_id", userID))

	w.WriteHeader(http.StatusNoContent)
}

// issueTokens выдает пару access/refresh, сохраняя хеш refresh токена
func (h *AuthHandler) issueTokens(r *http.Request, user *models.User) (*api.TokenResponse, error) {
	accessToken, expiresIn, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiresAt, err := GenerateRefreshToken(h.jwtConfig)
	if err != nil {
		return nil, err
	}

	refreshHash, err := crypto.HashToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if err := h.tokenStorage.SaveRefreshToken(r.Context(), &models.RefreshToken{
		TokenHash: refreshHash,
		UserID:    user.ID,
		ExpiresAt: refreshExpiresAt,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	return &api.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		ExpiresIn:    expiresIn,
	}, nil
}
