package cache

import (
	"context"
	"fmt"

	"github.com/sorochan/lavka/internal/client/api"
	"github.com/sorochan/lavka/internal/models"
	pkgapi "github.com/sorochan/lavka/pkg/api"
)

// reconcile сводит исход серверного вызова с провизорным состоянием.
//
// Возможные исходы:
//   - авторитетный снапшот: перезаписывает провизорный (побеждает
//     последний пришедший ответ, порядок отправки не важен);
//   - статусный успех без снапшота: провизорное состояние фиксируется;
//   - доброкачественный дубль: сервер уже в желаемом состоянии,
//     трактуется как успех без перезагрузки;
//   - потеря авторизации: сессия сносится целиком, откат не нужен —
//     перелогин приводит кэш в порядок с нуля;
//   - настоящий отказ: полный рефетч текущей страницы вместо точечного
//     обратного патча, который был бы неверен при конкурентных мутациях.
func (c *Cache) reconcile(ctx context.Context, m models.Mutation, authoritative *models.Snapshot, callErr error) error {
	if callErr == nil {
		if authoritative != nil {
			c.store.Write(*authoritative)
		} else if c.kind == KindWishlist {
			c.index.MarkChecked(m.Key, m.Op != models.OpRemove)
		}
		c.notifier.Success(successMessage(c.kind, m.Op))
		return nil
	}

	if isBenignDuplicate(m.Op, callErr) {
		if c.kind == KindWishlist {
			c.index.MarkChecked(m.Key, m.Op != models.OpRemove)
		}
		c.notifier.Info(benignMessage(c.kind, m.Op))
		return nil
	}

	if api.KindOf(callErr) == api.KindUnauthorized {
		c.logger.Warn("session rejected during mutation", "collection", c.kind.String(), "op", m.Op)
		if err := c.session.SignOut(ctx); err != nil {
			c.logger.Error("failed to sign out", "error", err)
		}
		c.notifier.Error("session expired, please sign in again")
		return fmt.Errorf("%s %s rejected: %w", c.kind, m.Op, callErr)
	}

	// Откат: провизорное состояние больше не заслуживает доверия
	c.logger.Warn("mutation failed, reloading",
		"collection", c.kind.String(), "op", m.Op, "key", m.Key, "error", callErr)

	if c.kind == KindWishlist && m.Key != "" {
		c.index.Invalidate(m.Key)
	}

	// Сначала уведомление об отказе мутации; исход перезагрузки —
	// отдельное событие со своим собственным уведомлением
	c.notifier.Error(failureMessage(c.kind, m.Op))

	page := c.store.Read().Page.Current
	if page < 1 {
		page = 1
	}

	fresh, reloadErr := c.remote.FetchPage(ctx, page)
	if reloadErr != nil {
		c.logger.Error("rollback reload failed", "collection", c.kind.String(), "error", reloadErr)
		c.notifier.Error(fmt.Sprintf("failed to reload %s, pull to refresh", c.kind))
		return fmt.Errorf("%s %s failed: %w", c.kind, m.Op, callErr)
	}

	c.store.Write(*fresh)
	if c.kind == KindWishlist {
		for i := range fresh.Items {
			c.index.MarkChecked(fresh.Items[i].Key, true)
		}
	}

	return fmt.Errorf("%s %s failed: %w", c.kind, m.Op, callErr)
}

// isBenignDuplicate распознает отказ, означающий, что сервер уже в
// состоянии, которого добивалась мутация. Различение идет по
// структурным кодам ошибки, а не по подстрокам сообщений.
func isBenignDuplicate(op models.Op, err error) bool {
	switch op {
	case models.OpAdd:
		return api.CodeOf(err) == pkgapi.CodeAlreadyExists
	case models.OpRemove:
		return api.CodeOf(err) == pkgapi.CodeNotFound || api.KindOf(err) == api.KindNotFound
	default:
		return false
	}
}

func successMessage(kind Kind, op models.Op) string {
	switch op {
	case models.OpAdd:
		return fmt.Sprintf("added to %s", kind)
	case models.OpSetQuantity:
		return "quantity updated"
	case models.OpRemove:
		return fmt.Sprintf("removed from %s", kind)
	case models.OpClear:
		return fmt.Sprintf("%s cleared", kind)
	default:
		return "done"
	}
}

func benignMessage(kind Kind, op models.Op) string {
	switch op {
	case models.OpAdd:
		return fmt.Sprintf("already in %s", kind)
	default:
		return fmt.Sprintf("already removed from %s", kind)
	}
}

func failureMessage(kind Kind, op models.Op) string {
	switch op {
	case models.OpAdd:
		return fmt.Sprintf("failed to add to %s", kind)
	case models.OpSetQuantity:
		return "failed to update quantity"
	case models.OpRemove:
		return fmt.Sprintf("failed to remove from %s", kind)
	case models.OpClear:
		return fmt.Sprintf("failed to clear %s", kind)
	default:
		return fmt.Sprintf("%s update failed", kind)
	}
}
