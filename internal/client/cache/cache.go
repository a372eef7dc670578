package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sorochan/lavka/internal/client/notify"
	"github.com/sorochan/lavka/internal/client/storage"
	"github.com/sorochan/lavka/internal/models"
	"github.com/sorochan/lavka/internal/validation"
)

// ErrNotAuthenticated возвращается мутацией, отклоненной локально
// из-за отсутствия валидной сессии
var ErrNotAuthenticated = errors.New("not authenticated")

// Cache — оптимистичный кэш серверной коллекции (корзины или wishlist).
//
// Мутация проходит две фазы. Первая — синхронная: из намерения вычисляется
// провизорный снапшот и немедленно записывается в хранилище, пользователь
// видит результат без ожидания сети. Вторая — асинхронная реконсиляция
// ответа сервера против провизорного состояния:
//
//	Idle -> OptimisticallyMutated -> Reconciled | RolledBack | AuthTornDown
//
// После завершения реконсиляции ключ покидает множество in-flight и
// коллекция возвращается в Idle для этого ключа.
//
// Экземпляр кэша монопольно владеет своим снапшотом и множеством in-flight;
// потребители получают состояние только через Snapshot и Subscribe.
type Cache struct {
	store    *SnapshotStore
	index    *MembershipIndex
	checker  *BatchChecker
	remote   Collection
	session  Session
	notifier notify.Notifier
	fallback storage.MembershipStorage
	logger   *slog.Logger
	kind     Kind
}

// Option настраивает кэш при создании
type Option func(*Cache)

// WithMembershipChecker включает батч-проверку членства (wishlist).
// При nil timer используется time.AfterFunc, при нулевой задержке — DefaultCheckDelay.
func WithMembershipChecker(remote MembershipAPI, delay time.Duration, timer TimerFunc) Option {
	return func(c *Cache) {
		c.checker = NewBatchChecker(remote, c.index, delay, timer, c.logger)
	}
}

// WithLocalFallback переводит кэш в режим деградации: серверный API
// недоступен, коллекция сводится к локальному множеству ключей,
// реконсиляция с сервером не выполняется.
func WithLocalFallback(store storage.MembershipStorage) Option {
	return func(c *Cache) {
		c.fallback = store
	}
}

// New создает кэш коллекции
func New(kind Kind, remote Collection, session Session, notifier notify.Notifier, logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		store:    NewSnapshotStore(),
		index:    NewMembershipIndex(),
		remote:   remote,
		session:  session,
		notifier: notifier,
		logger:   logger,
		kind:     kind,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot возвращает копию текущего снапшота —
// зафиксированного или провизорного
func (c *Cache) Snapshot() models.Snapshot {
	return c.store.Read()
}

// Subscribe регистрирует подписчика на каждую запись снапшота
// и возвращает функцию отписки
func (c *Cache) Subscribe(fn SubscriberFunc) (cancel func()) {
	return c.store.Subscribe(fn)
}

// IsPending проверяет, есть ли у ключа мутация в полете.
// Используется потребителями для по-позиционного (не глобального)
// индикатора занятости.
func (c *Cache) IsPending(key string) bool {
	return c.store.IsPending(key)
}

// Clearing проверяет, выполняется ли сейчас очистка коллекции
func (c *Cache) Clearing() bool {
	return c.store.Clearing()
}

// Membership возвращает признак членства ключа и признак подтверждения
// сервером. Неизвестный ключ — не член до первой успешной проверки.
func (c *Cache) Membership(key string) (member, checked bool) {
	return c.index.Get(key)
}

// CheckMembership ставит ключи в очередь батч-проверки членства.
// В режиме деградации читает локальное хранилище синхронно.
func (c *Cache) CheckMembership(keys []string) {
	if c.fallback != nil {
		for _, key := range keys {
			member, err := c.fallback.IsMember(context.Background(), key)
			if err != nil {
				c.logger.Warn("local membership check failed", "key", key, "error", err)
				continue
			}
			c.index.MarkChecked(key, member)
		}
		return
	}

	if c.checker == nil {
		return
	}
	c.checker.Enqueue(keys)
}

// Refresh загружает авторитетный снапшот первой страницы коллекции
func (c *Cache) Refresh(ctx context.Context) error {
	return c.LoadPage(ctx, 1)
}

// LoadPage загружает авторитетный снапшот страницы коллекции
// и фиксирует его в хранилище
func (c *Cache) LoadPage(ctx context.Context, page int) error {
	if c.fallback != nil {
		return c.loadLocal(ctx)
	}

	snap, err := c.remote.FetchPage(ctx, page)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", c.kind, err)
	}

	c.store.Write(*snap)

	// Всё, что пришло со страницей, подтверждено сервером
	if c.kind == KindWishlist {
		for i := range snap.Items {
			c.index.MarkChecked(snap.Items[i].Key, true)
		}
	}

	return nil
}

// Mutate выполняет мутацию коллекции: синхронная провизорная запись,
// затем сетевой вызов и реконсиляция его исхода. Безопасен для
// конкурентного вызова, в том числе повторно для того же ключа,
// пока предыдущая мутация еще в полете: локально побеждает последняя
// запись, а при реконсиляции — последний пришедший ответ сервера.
//
// Каждый исход мутации производит ровно одно уведомление
// (успех, информация или ошибка); сбой перезагрузки после отката
// производит второе, отдельное уведомление об ошибке.
func (c *Cache) Mutate(ctx context.Context, m models.Mutation) error {
	// Локальные предусловия проверяются до провизорной записи:
	// отклоненная здесь мутация не попадает в множество in-flight
	if err := c.validate(m); err != nil {
		c.notifier.Error(err.Error())
		return err
	}

	if c.fallback != nil {
		return c.mutateLocal(ctx, m)
	}

	authenticated, err := c.session.IsAuthenticated(ctx)
	if err != nil {
		err = fmt.Errorf("failed to check session: %w", err)
		c.notifier.Error(err.Error())
		return err
	}
	if !authenticated {
		c.notifier.Error(fmt.Sprintf("sign in to manage your %s", c.kind))
		return ErrNotAuthenticated
	}

	// Нулевое количество — это удаление; нормализуем до каких-либо записей,
	// чтобы и провизорный снапшот, и серверный вызов выполнили одну операцию
	if m.Op == models.OpSetQuantity && m.Quantity <= 0 {
		m.Op = models.OpRemove
	}

	// Фаза 1: синхронная провизорная запись
	c.store.Update(func(snap models.Snapshot) models.Snapshot {
		return applyMutation(snap, c.kind, m)
	})

	if m.Op == models.OpClear {
		c.store.BeginClearing()
		defer c.store.EndClearing()
	} else {
		c.store.BeginFlight(m.Key)
		defer c.store.EndFlight(m.Key)
	}

	if c.kind == KindWishlist {
		switch m.Op {
		case models.OpAdd:
			c.index.SetProvisional(m.Key, true)
		case models.OpRemove:
			c.index.SetProvisional(m.Key, false)
		}
	}

	// Фаза 2: сетевой вызов и реконсиляция его исхода
	authoritative, callErr := c.remote.ApplyMutation(ctx, m)
	return c.reconcile(ctx, m, authoritative, callErr)
}

// validate проверяет локальные предусловия намерения мутации
func (c *Cache) validate(m models.Mutation) error {
	switch m.Op {
	case models.OpClear:
		// Серверный API wishlist не поддерживает массовую очистку;
		// в локальном режиме она выполняется по локальному множеству
		if c.kind != KindCart && c.fallback == nil {
			return fmt.Errorf("clear is not applicable to %s", c.kind)
		}
		return nil
	case models.OpAdd:
		if err := validation.ValidateItemKey(m.Key); err != nil {
			return err
		}
		if c.kind == KindCart {
			return validation.ValidateQuantity(m.Quantity)
		}
		return nil
	case models.OpSetQuantity:
		if c.kind != KindCart {
			return fmt.Errorf("quantity is not applicable to %s", c.kind)
		}
		if err := validation.ValidateItemKey(m.Key); err != nil {
			return err
		}
		if m.Quantity > validation.MaxQuantity {
			return fmt.Errorf("quantity must not exceed %d", validation.MaxQuantity)
		}
		return nil
	case models.OpRemove:
		return validation.ValidateItemKey(m.Key)
	default:
		return fmt.Errorf("unknown mutation op: %q", m.Op)
	}
}

// mutateLocal применяет мутацию в режиме деградации:
// только локальное членство, шаг реконсиляции пропускается целиком
func (c *Cache) mutateLocal(ctx context.Context, m models.Mutation) error {
	switch m.Op {
	case models.OpAdd, models.OpRemove:
		member := m.Op == models.OpAdd
		if err := c.fallback.SetMember(ctx, m.Key, member); err != nil {
			c.notifier.Error(failureMessage(c.kind, m.Op))
			return fmt.Errorf("failed to persist local membership: %w", err)
		}
		c.store.Update(func(snap models.Snapshot) models.Snapshot {
			return applyMutation(snap, c.kind, m)
		})
		c.index.MarkChecked(m.Key, member)
		c.notifier.Success(successMessage(c.kind, m.Op))
		return nil

	case models.OpClear:
		if err := c.fallback.ClearMembers(ctx); err != nil {
			c.notifier.Error(failureMessage(c.kind, m.Op))
			return fmt.Errorf("failed to clear local membership: %w", err)
		}
		c.store.Update(applyClear)
		c.index.Reset()
		c.notifier.Success(successMessage(c.kind, m.Op))
		return nil

	default:
		err := fmt.Errorf("op %q is not supported in local mode", m.Op)
		c.notifier.Error(err.Error())
		return err
	}
}

// loadLocal перестраивает снапшот из локального множества ключей.
// Display-поля недоступны без сервера: снапшот содержит только членство.
func (c *Cache) loadLocal(ctx context.Context) error {
	members, err := c.fallback.ListMembers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list local membership: %w", err)
	}

	items := make([]models.Item, 0, len(members))
	for _, key := range members {
		items = append(items, models.Item{Key: key, Quantity: 1})
		c.index.MarkChecked(key, true)
	}

	c.store.Write(models.Snapshot{
		Items:   items,
		Summary: models.SummaryOf(items),
		Page:    models.PageInfo{Current: 1, Total: 1},
	})
	return nil
}
