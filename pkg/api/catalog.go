package api

// ProductPayload представляет товар каталога
type ProductPayload struct {
	ProductID string `json:"product_id"`           // ID товара
	VariantID string `json:"variant_id"`           // ID вариации (ключ позиции корзины)
	Name      string `json:"name"`                 // название товара
	ImageURL  string `json:"image_url,omitempty"`  // ссылка на изображение
	Price     int64  `json:"price"`                // цена в минорных единицах валюты
	Available bool   `json:"available"`            // доступен ли к заказу
}

// ProductListResponse представляет список товаров каталога
type ProductListResponse struct {
	Products []ProductPayload `json:"products"`
}
