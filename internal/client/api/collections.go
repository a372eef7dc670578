package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/sorochan/lavka/internal/client/storage"
	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/pkg/api"
)

// TokenSource выдает актуальный access token для авторизованных запросов.
// Реализуется auth сервисом; при истекшем access token он сам выполняет refresh.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// accessToken достает токен из источника. Отсутствие сохраненной сессии —
// это unauthorized. Любой другой отказ (например, сетевая ошибка при refresh)
// сохраняет собственную классификацию: такой сбой восстановим и не должен
// приводить к сбросу сессии.
func accessToken(ctx context.Context, tokens TokenSource) (string, error) {
	token, err := tokens.AccessToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return "", &Error{Kind: KindUnauthorized, Message: err.Error()}
		}
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	return token, nil
}

// CartCollection адаптирует REST API корзины под интерфейс коллекции,
// который реконсилирует оптимистичный кэш. Все мутации корзины возвращают
// полный авторитетный снапшот.
type CartCollection struct {
	client *Client
	tokens TokenSource
}

// NewCartCollection создает адаптер корзины
func NewCartCollection(client *Client, tokens TokenSource) *CartCollection {
	return &CartCollection{client: client, tokens: tokens}
}

// FetchPage загружает авторитетный снапшот корзины.
// Корзина не пагинируется, номер страницы игнорируется.
func (c *CartCollection) FetchPage(ctx context.Context, page int) (*models.Snapshot, error) {
	token, err := accessToken(ctx, c.tokens)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	snap := snapshotFromCart(resp)
	return &snap, nil
}

// ApplyMutation выполняет мутацию корзины на сервере.
// Возвращаемый снапшот всегда не-nil: сервер отдает полную корзину.
func (c *CartCollection) ApplyMutation(ctx context.Context, m models.Mutation) (*models.Snapshot, error) {
	token, err := accessToken(ctx, c.tokens)
	if err != nil {
		return nil, err
	}

	var resp *api.CartResponse
	switch m.Op {
	case models.OpAdd:
		resp, err = c.client.AddCartItem(ctx, token, api.AddCartItemRequest{
			VariantID: m.Key,
			Quantity:  m.Quantity,
		})
	case models.OpSetQuantity:
		resp, err = c.client.UpdateCartItem(ctx, token, m.Key, api.UpdateCartItemRequest{
			Quantity: m.Quantity,
		})
	case models.OpRemove:
		resp, err = c.client.RemoveCartItem(ctx, token, m.Key)
	case models.OpClear:
		resp, err = c.client.ClearCart(ctx, token)
	default:
		return nil, fmt.Errorf("unknown cart mutation op: %s", m.Op)
	}
	if err != nil {
		return nil, err
	}

	snap := snapshotFromCart(resp)
	return &snap, nil
}

// WishlistCollection адаптирует REST API wishlist под интерфейсы коллекции
// и батч-проверки членства. Мутации wishlist статусные: сервер подтверждает
// операцию, но снапшот не возвращает.
type WishlistCollection struct {
	client *Client
	tokens TokenSource
}

// NewWishlistCollection создает адаптер wishlist
func NewWishlistCollection(client *Client, tokens TokenSource) *WishlistCollection {
	return &WishlistCollection{client: client, tokens: tokens}
}

// FetchPage загружает страницу wishlist
func (c *WishlistCollection) FetchPage(ctx context.Context, page int) (*models.Snapshot, error) {
	token, err := accessToken(ctx, c.tokens)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}

	resp, err := c.client.GetWishlist(ctx, token, page)
	if err != nil {
		return nil, err
	}

	snap := snapshotFromWishlist(resp)
	return &snap, nil
}

// ApplyMutation выполняет мутацию wishlist на сервере.
// Возвращает nil снапшот: статусный ответ означает, что провизорное
// состояние кэша становится зафиксированным.
func (c *WishlistCollection) ApplyMutation(ctx context.Context, m models.Mutation) (*models.Snapshot, error) {
	token, err := accessToken(ctx, c.tokens)
	if err != nil {
		return nil, err
	}

	switch m.Op {
	case models.OpAdd:
		err = c.client.AddWishlistItem(ctx, token, m.Key)
	case models.OpRemove:
		err = c.client.RemoveWishlistItem(ctx, token, m.Key)
	default:
		return nil, fmt.Errorf("unsupported wishlist mutation op: %s", m.Op)
	}
	if err != nil {
		return nil, err
	}

	return nil, nil
}

// CheckMembership выполняет батч-проверку членства товаров в wishlist
func (c *WishlistCollection) CheckMembership(ctx context.Context, keys []string) (map[string]bool, error) {
	token, err := accessToken(ctx, c.tokens)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.CheckWishlist(ctx, token, api.WishlistCheckRequest{ProductIDs: keys})
	if err != nil {
		return nil, err
	}

	return resp.Membership, nil
}

// snapshotFromCart конвертирует ответ сервера в доменный снапшот.
// Summary берется из ответа как есть: сервер авторитетен.
func snapshotFromCart(resp *api.CartResponse) models.Snapshot {
	items := make([]models.Item, 0, len(resp.Items))
	for _, p := range resp.Items {
		items = append(items, models.Item{
			Key:         p.VariantID,
			Name:        p.Name,
			ImageURL:    p.ImageURL,
			UnitPrice:   p.UnitPrice,
			Quantity:    p.Quantity,
			TotalPrice:  p.TotalPrice,
			Unavailable: p.Unavailable,
		})
	}

	return models.Snapshot{
		Items: items,
		Summary: models.Summary{
			TotalQuantity:  resp.TotalQuantity,
			TotalAmount:    resp.TotalAmount,
			UniqueItems:    resp.UniqueItems,
			HasUnavailable: resp.HasUnavailable,
		},
		Page: models.PageInfo{Current: 1, Total: 1},
	}
}

// snapshotFromWishlist конвертирует страницу wishlist в доменный снапшот
func snapshotFromWishlist(resp *api.WishlistPageResponse) models.Snapshot {
	items := make([]models.Item, 0, len(resp.Items))
	for _, p := range resp.Items {
		items = append(items, models.Item{
			Key:         p.ProductID,
			Name:        p.Name,
			ImageURL:    p.ImageURL,
			UnitPrice:   p.UnitPrice,
			Quantity:    1,
			TotalPrice:  p.UnitPrice,
			Unavailable: p.Unavailable,
		})
	}

	return models.Snapshot{
		Items:   items,
		Summary: models.SummaryOf(items),
		Page: models.PageInfo{
			Current: resp.Page,
			Total:   resp.TotalPages,
			HasMore: resp.HasMore,
		},
	}
}
