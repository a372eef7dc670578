package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sorochan/lavka/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером магазина
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Register регистрирует нового покупателя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh обновляет access token по refresh token
func (c *Client) Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// Logout отзывает refresh token на сервере
func (c *Client) Logout(ctx context.Context, accessToken string, req api.LogoutRequest) error {
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/logout", accessToken, req, nil)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// ListProducts возвращает каталог товаров
func (c *Client) ListProducts(ctx context.Context) (*api.ProductListResponse, error) {
	var resp api.ProductListResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/products", "", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list products request failed: %w", err)
	}
	return &resp, nil
}

// GetCart возвращает полный снапшот корзины
func (c *Client) GetCart(ctx context.Context, accessToken string) (*api.CartResponse, error) {
	var resp api.CartResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/cart", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get cart request failed: %w", err)
	}
	return &resp, nil
}

// AddCartItem добавляет позицию в корзину, возвращает полный снапшот корзины
func (c *Client) AddCartItem(ctx context.Context, accessToken string, req api.AddCartItemRequest) (*api.CartResponse, error) {
	var resp api.CartResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/cart/items", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("add cart item request failed: %w", err)
	}
	return &resp, nil
}

// UpdateCartItem изменяет количество позиции, возвращает полный снапшот корзины
func (c *Client) UpdateCartItem(ctx context.Context, accessToken, variantID string, req api.UpdateCartItemRequest) (*api.CartResponse, error) {
	var resp api.CartResponse
	path := "/api/v1/cart/items/" + url.PathEscape(variantID)
	err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update cart item request failed: %w", err)
	}
	return &resp, nil
}

// RemoveCartItem удаляет позицию, возвращает полный снапшот корзины
func (c *Client) RemoveCartItem(ctx context.Context, accessToken, variantID string) (*api.CartResponse, error) {
	var resp api.CartResponse
	path := "/api/v1/cart/items/" + url.PathEscape(variantID)
	err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("remove cart item request failed: %w", err)
	}
	return &resp, nil
}

// ClearCart очищает корзину, возвращает пустой снапшот корзины
func (c *Client) ClearCart(ctx context.Context, accessToken string) (*api.CartResponse, error) {
	var resp api.CartResponse
	err := c.doRequest(ctx, http.MethodDelete, "/api/v1/cart", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("clear cart request failed: %w", err)
	}
	return &resp, nil
}

// GetWishlist возвращает страницу wishlist
func (c *Client) GetWishlist(ctx context.Context, accessToken string, page int) (*api.WishlistPageResponse, error) {
	var resp api.WishlistPageResponse
	path := "/api/v1/wishlist?page=" + strconv.Itoa(page)
	err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get wishlist request failed: %w", err)
	}
	return &resp, nil
}

// AddWishlistItem добавляет товар в wishlist; ответ статусный, без снапшота
func (c *Client) AddWishlistItem(ctx context.Context, accessToken, productID string) error {
	path := "/api/v1/wishlist/" + url.PathEscape(productID)
	var resp api.StatusResponse
	err := c.doRequest(ctx, http.MethodPost, path, accessToken, nil, &resp)
	if err != nil {
		return fmt.Errorf("add wishlist item request failed: %w", err)
	}
	return nil
}

// RemoveWishlistItem удаляет товар из wishlist; ответ статусный, без снапшота
func (c *Client) RemoveWishlistItem(ctx context.Context, accessToken, productID string) error {
	path := "/api/v1/wishlist/" + url.PathEscape(productID)
	var resp api.StatusResponse
	err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, &resp)
	if err != nil {
		return fmt.Errorf("remove wishlist item request failed: %w", err)
	}
	return nil
}

// CheckWishlist выполняет батч-проверку членства товаров в wishlist
func (c *Client) CheckWishlist(ctx context.Context, accessToken string, req api.WishlistCheckRequest) (*api.WishlistCheckResponse, error) {
	var resp api.WishlistCheckResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/wishlist/check", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("wishlist check request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос и классифицирует ошибки в *Error
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to read response body: %v", err)}
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &Error{Kind: KindNetwork, Message: fmt.Sprintf("failed to decode response: %v", err)}
		}
	}

	return nil
}

// classifyStatus превращает неуспешный HTTP ответ в классифицированную *Error
func classifyStatus(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		apiErr.Code = errResp.Code
		apiErr.Message = errResp.Message
		if apiErr.Message == "" {
			apiErr.Message = errResp.Error
		}
	} else {
		apiErr.Message = string(body)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Kind = KindUnauthorized
	case status == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case status >= 400 && status < 500:
		apiErr.Kind = KindBadRequest
	default:
		apiErr.Kind = KindServer
	}

	return apiErr
}
