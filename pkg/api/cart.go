package api

// CartItemPayload представляет одну позицию корзины в ответе сервера
type CartItemPayload struct {
	VariantID   string `json:"variant_id"`           // внешний ключ позиции (вариация товара)
	Name        string `json:"name"`                 // название товара
	ImageURL    string `json:"image_url,omitempty"`  // ссылка на изображение
	UnitPrice   int64  `json:"unit_price"`           // цена за единицу в минорных единицах валюты
	Quantity    int    `json:"quantity"`             // количество
	TotalPrice  int64  `json:"total_price"`          // unit_price * quantity
	Unavailable bool   `json:"unavailable,omitempty"` // товар недоступен к заказу
}

// CartResponse представляет полный авторитетный снапшот корзины.
// Каждая мутация корзины возвращает его целиком — это точка ресинхронизации
// для оптимистичного кэша клиента.
type CartResponse struct {
	Items          []CartItemPayload `json:"items"`
	TotalQuantity  int               `json:"total_quantity"`
	TotalAmount    int64             `json:"total_amount"`
	UniqueItems    int               `json:"unique_items"`
	HasUnavailable bool              `json:"has_unavailable"`
}

// AddCartItemRequest представляет запрос на добавление позиции в корзину
type AddCartItemRequest struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest представляет запрос на изменение количества позиции
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
