package api

// WishlistItemPayload представляет один товар wishlist в ответе сервера
type WishlistItemPayload struct {
	ProductID   string `json:"product_id"`            // внешний ключ (товар)
	Name        string `json:"name"`                  // название товара
	ImageURL    string `json:"image_url,omitempty"`   // ссылка на изображение
	UnitPrice   int64  `json:"unit_price"`            // цена в минорных единицах валюты
	Unavailable bool   `json:"unavailable,omitempty"` // товар недоступен к заказу
}

// WishlistPageResponse представляет одну страницу wishlist
type WishlistPageResponse struct {
	Items      []WishlistItemPayload `json:"items"`
	Page       int                   `json:"page"`        // номер текущей страницы (с 1)
	TotalPages int                   `json:"total_pages"` // всего страниц
	TotalItems int                   `json:"total_items"` // всего товаров в wishlist
	HasMore    bool                  `json:"has_more"`    // есть ли следующая страница
}

// WishlistCheckRequest представляет батч-запрос проверки членства:
// "какие из этих товаров находятся в wishlist пользователя"
type WishlistCheckRequest struct {
	ProductIDs []string `json:"product_ids"`
}

// WishlistCheckResponse представляет ответ батч-проверки.
// Ключи, отсутствующие в Membership, считаются непроверенными —
// клиент повторит их в следующем батче.
type WishlistCheckResponse struct {
	Membership map[string]bool `json:"membership"`
}
