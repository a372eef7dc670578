package models

import "time"

// User представляет зарегистрированного покупателя на сервере.
// Пароль хранится только в виде Argon2id хеша с индивидуальной солью.
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login"`
	ID           string    `json:"id"`            // UUID
	Username     string    `json:"username"`      // уникальный username
	PasswordHash string    `json:"password_hash"` // Argon2id хеш пароля (base64)
	PasswordSalt string    `json:"password_salt"` // соль (base64)
}

// RefreshToken представляет refresh token в базе.
// Хранится только SHA256 хеш токена: утечка базы не дает доступ к сессиям.
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	TokenHash string    `json:"token_hash"` // SHA256 хеш токена (hex)
	UserID    string    `json:"user_id"`
}

// Product представляет товар каталога.
// VariantID — ключ позиции корзины, ProductID — ключ wishlist.
type Product struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Price     int64  `json:"price"` // минорные единицы валюты
	Available bool   `json:"available"`
}

// CartEntry представляет позицию корзины пользователя
type CartEntry struct {
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	VariantID string    `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

// WishlistEntry представляет товар в wishlist пользователя
type WishlistEntry struct {
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
}
