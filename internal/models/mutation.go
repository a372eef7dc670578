package models

// Op тип операции мутации коллекции
type Op string

const (
	// OpAdd добавляет позицию (или увеличивает количество в корзине)
	OpAdd Op = "add"
	// OpSetQuantity устанавливает количество позиции; qty <= 0 эквивалентно OpRemove
	OpSetQuantity Op = "set_quantity"
	// OpRemove удаляет позицию
	OpRemove Op = "remove"
	// OpClear очищает коллекцию целиком
	OpClear Op = "clear"
)

// ProductSummary содержит display-поля товара, известные вызывающей стороне.
// Используется оптимистичным апдейтером как placeholder для новой позиции
// до прихода авторитетного ответа сервера.
type ProductSummary struct {
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	UnitPrice   int64  `json:"unit_price"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// Mutation представляет намерение изменить коллекцию
type Mutation struct {
	Op       Op             `json:"op"`
	Key      string         `json:"key,omitempty"`      // внешний ключ позиции; пуст для OpClear
	Quantity int            `json:"quantity,omitempty"` // для OpAdd и OpSetQuantity
	Product  ProductSummary `json:"product,omitempty"`  // placeholder для OpAdd
}
