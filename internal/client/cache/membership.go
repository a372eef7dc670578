package cache

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// DefaultCheckDelay задержка дебаунса батч-проверки членства
const DefaultCheckDelay = 300 * time.Millisecond

// membership хранит признак членства и источник этого знания.
// checked == true значит "подтверждено сервером"; false — провизорная
// оптимистичная оценка, которая будет перепроверена следующим батчем.
type membership struct {
	member  bool
	checked bool
}

// MembershipIndex отображает ключ позиции в признак членства в коллекции.
// Никогда не персистится: перестраивается при полной перезагрузке.
type MembershipIndex struct {
	entries map[string]membership
	mu      sync.RWMutex
}

// NewMembershipIndex создает пустой индекс членства
func NewMembershipIndex() *MembershipIndex {
	return &MembershipIndex{entries: make(map[string]membership)}
}

// Get возвращает признак членства и признак подтверждения сервером
func (x *MembershipIndex) Get(key string) (member, checked bool) {
	x.mu.RLock()
	e := x.entries[key]
	x.mu.RUnlock()
	return e.member, e.checked
}

// Checked проверяет, подтверждено ли членство ключа сервером
func (x *MembershipIndex) Checked(key string) bool {
	x.mu.RLock()
	e := x.entries[key]
	x.mu.RUnlock()
	return e.checked
}

// MarkChecked записывает подтвержденное сервером членство
func (x *MembershipIndex) MarkChecked(key string, member bool) {
	x.mu.Lock()
	x.entries[key] = membership{member: member, checked: true}
	x.mu.Unlock()
}

// SetProvisional записывает оптимистичную, не подтвержденную сервером оценку
func (x *MembershipIndex) SetProvisional(key string, member bool) {
	x.mu.Lock()
	x.entries[key] = membership{member: member}
	x.mu.Unlock()
}

// Invalidate забывает все, что известно о ключе
func (x *MembershipIndex) Invalidate(key string) {
	x.mu.Lock()
	delete(x.entries, key)
	x.mu.Unlock()
}

// Reset полностью очищает индекс
func (x *MembershipIndex) Reset() {
	x.mu.Lock()
	x.entries = make(map[string]membership)
	x.mu.Unlock()
}

// TimerFunc планирует вызов fn через d и возвращает функцию отмены.
// Инъецируется в тестах для детерминированной проверки дебаунса.
type TimerFunc func(d time.Duration, fn func()) (cancel func())

// afterFunc — боевой таймер поверх time.AfterFunc
func afterFunc(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// checkerState состояние дебаунс-очереди
type checkerState int

const (
	// checkerIdle очередь пуста, таймер не активен
	checkerIdle checkerState = iota
	// checkerAccumulating очередь накапливает ключи, таймер активен
	checkerAccumulating
)

// BatchChecker отвечает на вопрос "какие из этих ключей в коллекции",
// не выпуская по запросу на ключ: закрытые по времени запросы коалесцируются
// в один сетевой вызов. У очереди никогда нет двух активных таймеров:
// новый запрос перезапускает существующий.
//
// Это фоновая оптимизация: ошибки не показываются пользователю, только
// логируются; непроверенные ключи попадут в следующий батч (at-least-once).
type BatchChecker struct {
	pending map[string]struct{}
	cancel  func()
	timer   TimerFunc
	remote  MembershipAPI
	index   *MembershipIndex
	logger  *slog.Logger
	delay   time.Duration
	state   checkerState
	mu      sync.Mutex
}

// NewBatchChecker создает дебаунс-очередь проверки членства.
// При nil timer используется time.AfterFunc, при нулевой задержке — DefaultCheckDelay.
func NewBatchChecker(remote MembershipAPI, index *MembershipIndex, delay time.Duration, timer TimerFunc, logger *slog.Logger) *BatchChecker {
	if timer == nil {
		timer = afterFunc
	}
	if delay <= 0 {
		delay = DefaultCheckDelay
	}
	return &BatchChecker{
		pending: make(map[string]struct{}),
		timer:   timer,
		remote:  remote,
		index:   index,
		logger:  logger,
		delay:   delay,
	}
}

// Enqueue ставит ключи в очередь проверки.
// Уже подтвержденные и уже стоящие в очереди ключи пропускаются.
// Каждый запрос перезапускает дебаунс-таймер.
func (b *BatchChecker) Enqueue(keys []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, key := range keys {
		if key == "" {
			continue
		}
		if b.index.Checked(key) {
			continue
		}
		b.pending[key] = struct{}{}
	}

	if len(b.pending) == 0 {
		return
	}

	// Инвариант одного активного таймера
	if b.state == checkerAccumulating && b.cancel != nil {
		b.cancel()
	}
	b.state = checkerAccumulating
	b.cancel = b.timer(b.delay, b.flush)
}

// flush отправляет накопленный батч одним запросом.
// Очередь очищается до выпуска запроса: проверки, пришедшие во время
// сетевого вызова, начинают новый батч, а не теряются и не дублируются.
func (b *BatchChecker) flush() {
	b.mu.Lock()
	batch := make([]string, 0, len(b.pending))
	for key := range b.pending {
		batch = append(batch, key)
	}
	b.pending = make(map[string]struct{})
	b.state = checkerIdle
	b.cancel = nil
	b.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	sort.Strings(batch)

	result, err := b.remote.CheckMembership(context.Background(), batch)
	if err != nil {
		b.logger.Warn("membership check failed", "keys", len(batch), "error", err)
		return
	}

	// Ключи, отсутствующие в ответе, остаются непроверенными и будут
	// повторены следующим батчем
	for key, member := range result {
		b.index.MarkChecked(key, member)
	}
}
