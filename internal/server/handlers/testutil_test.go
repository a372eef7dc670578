package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/server/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:          []byte("test-secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}
}

// authedRequest кладет user ID в context так же, как auth middleware
func authedRequest(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDKey, userID)
	return r.WithContext(ctx)
}

// withURLParam добавляет chi route параметр в request context
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func doRequest(t *testing.T, handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler(rec, r)
	return rec
}

// mockUserStorage is an in-memory implementation of UserStorage for testing
type mockUserStorage struct {
	users    map[string]*models.User // username -> User
	getError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	for _, user := range m.users {
		if user.ID == userID {
			user.LastLogin = lastLogin
			return nil
		}
	}
	return storage.ErrUserNotFound
}

// mockTokenStorage is an in-memory implementation of TokenStorage for testing
type mockTokenStorage struct {
	tokens map[string]*models.RefreshToken // tokenHash -> token
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	token, ok := m.tokens[tokenHash]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return token, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	if _, ok := m.tokens[tokenHash]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, tokenHash)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	deleted := 0
	for hash, token := range m.tokens {
		if token.UserID == userID {
			delete(m.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context) (int, error) {
	deleted := 0
	now := time.Now()
	for hash, token := range m.tokens {
		if token.ExpiresAt.Before(now) {
			delete(m.tokens, hash)
			deleted++
		}
	}
	return deleted, nil
}

// mockCatalogStorage is an in-memory implementation of CatalogStorage for testing
type mockCatalogStorage struct {
	products map[string]*models.Product // variantID -> product
}

func newMockCatalogStorage(products ...*models.Product) *mockCatalogStorage {
	m := &mockCatalogStorage{products: make(map[string]*models.Product)}
	for _, p := range products {
		m.products[p.VariantID] = p
	}
	return m
}

func (m *mockCatalogStorage) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (m *mockCatalogStorage) GetProductByVariantID(ctx context.Context, variantID string) (*models.Product, error) {
	p, ok := m.products[variantID]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	return p, nil
}

func (m *mockCatalogStorage) GetProductsByProductIDs(ctx context.Context, productIDs []string) ([]*models.Product, error) {
	wanted := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = true
	}
	var products []*models.Product
	for _, p := range m.products {
		if wanted[p.ProductID] {
			products = append(products, p)
		}
	}
	return products, nil
}

// mockCartStorage is an in-memory implementation of CartStorage for testing
type mockCartStorage struct {
	entries map[string]map[string]*models.CartEntry // userID -> variantID -> entry
}

func newMockCartStorage() *mockCartStorage {
	return &mockCartStorage{entries: make(map[string]map[string]*models.CartEntry)}
}

func (m *mockCartStorage) userEntries(userID string) map[string]*models.CartEntry {
	if m.entries[userID] == nil {
		m.entries[userID] = make(map[string]*models.CartEntry)
	}
	return m.entries[userID]
}

func (m *mockCartStorage) ListCartEntries(ctx context.Context, userID string) ([]*models.CartEntry, error) {
	cart := m.userEntries(userID)
	entries := make([]*models.CartEntry, 0, len(cart))
	for _, entry := range cart {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].VariantID < entries[j].VariantID })
	return entries, nil
}

func (m *mockCartStorage) UpsertCartEntry(ctx context.Context, entry *models.CartEntry) error {
	cart := m.userEntries(entry.UserID)
	if existing, ok := cart[entry.VariantID]; ok {
		existing.Quantity += entry.Quantity
		existing.UpdatedAt = entry.UpdatedAt
		return nil
	}
	clone := *entry
	cart[entry.VariantID] = &clone
	return nil
}

func (m *mockCartStorage) SetCartEntryQuantity(ctx context.Context, userID, variantID string, quantity int) error {
	cart := m.userEntries(userID)
	entry, ok := cart[variantID]
	if !ok {
		return storage.ErrCartItemNotFound
	}
	entry.Quantity = quantity
	return nil
}

func (m *mockCartStorage) DeleteCartEntry(ctx context.Context, userID, variantID string) error {
	cart := m.userEntries(userID)
	if _, ok := cart[variantID]; !ok {
		return storage.ErrCartItemNotFound
	}
	delete(cart, variantID)
	return nil
}

func (m *mockCartStorage) ClearCart(ctx context.Context, userID string) (int, error) {
	cart := m.userEntries(userID)
	deleted := len(cart)
	m.entries[userID] = make(map[string]*models.CartEntry)
	return deleted, nil
}

// mockWishlistStorage is an in-memory implementation of WishlistStorage for testing
type mockWishlistStorage struct {
	entries map[string][]*models.WishlistEntry // userID -> entries, newest first
}

func newMockWishlistStorage() *mockWishlistStorage {
	return &mockWishlistStorage{entries: make(map[string][]*models.WishlistEntry)}
}

func (m *mockWishlistStorage) AddWishlistEntry(ctx context.Context, entry *models.WishlistEntry) error {
	for _, e := range m.entries[entry.UserID] {
		if e.ProductID == entry.ProductID {
			return storage.ErrWishlistItemExists
		}
	}
	clone := *entry
	m.entries[entry.UserID] = append([]*models.WishlistEntry{&clone}, m.entries[entry.UserID]...)
	return nil
}

func (m *mockWishlistStorage) DeleteWishlistEntry(ctx context.Context, userID, productID string) error {
	entries := m.entries[userID]
	for i, e := range entries {
		if e.ProductID == productID {
			m.entries[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return storage.ErrWishlistItemNotFound
}

func (m *mockWishlistStorage) ListWishlistPage(ctx context.Context, userID string, offset, limit int) ([]*models.WishlistEntry, int, error) {
	entries := m.entries[userID]
	total := len(entries)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return entries[offset:end], total, nil
}

func (m *mockWishlistStorage) CheckMembership(ctx context.Context, userID string, productIDs []string) (map[string]bool, error) {
	membership := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		membership[id] = false
	}
	for _, e := range m.entries[userID] {
		if _, ok := membership[e.ProductID]; ok {
			membership[e.ProductID] = true
		}
	}
	return membership, nil
}
