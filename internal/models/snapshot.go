package models

// Item представляет одну позицию серверной коллекции (корзины или wishlist).
// Идентифицируется внешним стабильным ключом: variant_id для корзины,
// product_id для wishlist. Display-поля (Name, ImageURL, UnitPrice) —
// денормализованные read-only копии: их обновляет только авторитетный
// ответ сервера, оптимистичные правки их не трогают.
type Item struct {
	Key         string `json:"key"`                   // внешний ключ позиции
	Name        string `json:"name"`                  // название товара
	ImageURL    string `json:"image_url,omitempty"`   // ссылка на изображение
	UnitPrice   int64  `json:"unit_price"`            // цена за единицу в минорных единицах валюты
	Quantity    int    `json:"quantity"`              // количество (для wishlist всегда 1)
	TotalPrice  int64  `json:"total_price"`           // UnitPrice * Quantity
	Unavailable bool   `json:"unavailable,omitempty"` // товар недоступен к заказу
}

// Summary содержит агрегаты коллекции, производные от Items.
// Кэшируется для отображения, но источником истины всегда остаются Items:
// для каждого зафиксированного снапшота Summary == SummaryOf(Items).
type Summary struct {
	TotalQuantity  int   `json:"total_quantity"`  // сумма Quantity по всем позициям
	TotalAmount    int64 `json:"total_amount"`    // сумма TotalPrice по всем позициям
	UniqueItems    int   `json:"unique_items"`    // количество позиций
	HasUnavailable bool  `json:"has_unavailable"` // есть ли недоступные товары
}

// PageInfo описывает курсор пагинации коллекции.
// Для непагинируемой корзины всегда одна страница.
type PageInfo struct {
	Current int  `json:"current"`  // номер текущей страницы (с 1)
	Total   int  `json:"total"`    // всего страниц
	HasMore bool `json:"has_more"` // есть ли следующая страница
}

// Snapshot представляет состояние серверной коллекции на момент времени:
// авторитетное (получено от сервера) либо провизорное (оптимистичная правка,
// еще не подтвержденная сервером).
type Snapshot struct {
	Items   []Item   `json:"items"`
	Summary Summary  `json:"summary"`
	Page    PageInfo `json:"page"`
}

// SummaryOf вычисляет агрегаты по списку позиций.
// Единственная точка деривации Summary — ею пользуются и оптимистичный
// апдейтер клиента, и хендлеры сервера.
func SummaryOf(items []Item) Summary {
	s := Summary{UniqueItems: len(items)}
	for i := range items {
		s.TotalQuantity += items[i].Quantity
		s.TotalAmount += items[i].TotalPrice
		if items[i].Unavailable {
			s.HasUnavailable = true
		}
	}
	return s
}

// FindItem возвращает индекс позиции с заданным ключом или -1.
func (s *Snapshot) FindItem(key string) int {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return i
		}
	}
	return -1
}

// Contains проверяет наличие позиции с заданным ключом.
func (s *Snapshot) Contains(key string) bool {
	return s.FindItem(key) >= 0
}

// Clone возвращает глубокую копию снапшота.
// Снапшоты передаются подписчикам по значению — копия гарантирует,
// что читатель никогда не увидит частично обновленное состояние.
func (s *Snapshot) Clone() Snapshot {
	clone := *s
	clone.Items = make([]Item, len(s.Items))
	copy(clone.Items, s.Items)
	return clone
}
