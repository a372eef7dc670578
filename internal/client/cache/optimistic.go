package cache

import "github.com/sorochan/lavka/internal/models"

// Kind определяет семантику коллекции
type Kind int

const (
	// KindCart корзина: порядок позиций значим, позиции имеют количество,
	// мутации возвращают полный снапшот
	KindCart Kind = iota
	// KindWishlist wishlist: членство булево, коллекция пагинируется,
	// мутации статусные
	KindWishlist
)

// String возвращает имя коллекции для логов и уведомлений
func (k Kind) String() string {
	if k == KindWishlist {
		return "wishlist"
	}
	return "cart"
}

// applyMutation синхронно вычисляет провизорный снапшот из намерения мутации.
// Никогда не ходит в сеть и не блокирует. Display-поля существующих позиций
// не трогает — их обновляет только авторитетный ответ сервера.
func applyMutation(snap models.Snapshot, kind Kind, m models.Mutation) models.Snapshot {
	switch m.Op {
	case models.OpAdd:
		return applyAdd(snap, kind, m)
	case models.OpSetQuantity:
		return applySetQuantity(snap, m)
	case models.OpRemove:
		return applyRemove(snap, m.Key)
	case models.OpClear:
		return applyClear(snap)
	default:
		return snap
	}
}

// applyAdd добавляет позицию. Для корзины повторное добавление увеличивает
// количество; для wishlist членство булево и дубликат — no-op.
// Display-поля новой позиции берутся из переданного ProductSummary
// как placeholder до прихода ответа сервера.
func applyAdd(snap models.Snapshot, kind Kind, m models.Mutation) models.Snapshot {
	if i := snap.FindItem(m.Key); i >= 0 {
		if kind == KindWishlist {
			return snap
		}
		item := &snap.Items[i]
		item.Quantity += m.Quantity
		item.TotalPrice = item.UnitPrice * int64(item.Quantity)
		snap.Summary = models.SummaryOf(snap.Items)
		return snap
	}

	qty := m.Quantity
	if kind == KindWishlist {
		qty = 1
	}

	snap.Items = append(snap.Items, models.Item{
		Key:         m.Key,
		Name:        m.Product.Name,
		ImageURL:    m.Product.ImageURL,
		UnitPrice:   m.Product.UnitPrice,
		Quantity:    qty,
		TotalPrice:  m.Product.UnitPrice * int64(qty),
		Unavailable: m.Product.Unavailable,
	})
	snap.Summary = models.SummaryOf(snap.Items)
	return snap
}

// applySetQuantity устанавливает количество позиции.
// Количество <= 0 выражается удалением: позиция с нулевым количеством
// не должна появиться ни в одном снапшоте.
func applySetQuantity(snap models.Snapshot, m models.Mutation) models.Snapshot {
	if m.Quantity <= 0 {
		return applyRemove(snap, m.Key)
	}

	i := snap.FindItem(m.Key)
	if i < 0 {
		return snap
	}

	item := &snap.Items[i]
	item.Quantity = m.Quantity
	item.TotalPrice = item.UnitPrice * int64(m.Quantity)
	snap.Summary = models.SummaryOf(snap.Items)
	return snap
}

// applyRemove удаляет позицию с заданным ключом
func applyRemove(snap models.Snapshot, key string) models.Snapshot {
	i := snap.FindItem(key)
	if i < 0 {
		return snap
	}

	snap.Items = append(snap.Items[:i], snap.Items[i+1:]...)
	snap.Summary = models.SummaryOf(snap.Items)
	return snap
}

// applyClear опустошает коллекцию
func applyClear(snap models.Snapshot) models.Snapshot {
	snap.Items = nil
	snap.Summary = models.Summary{}
	return snap
}
