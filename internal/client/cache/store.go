package cache

import (
	"sync"

	"github.com/sorochan/lavka/internal/models"
)

// SubscriberFunc получает копию снапшота после каждой записи —
// зафиксированной или провизорной
type SubscriberFunc func(models.Snapshot)

// SnapshotStore хранит ровно один снапшот коллекции и множество ключей
// с мутацией в полете. Запись заменяет снапшот целиком и атомарно
// относительно читателей: позиции и агрегаты меняются вместе, читатель
// никогда не видит частично обновленное состояние.
//
// Валидация здесь не выполняется — за инварианты отвечают оптимистичный
// апдейтер и реконсилятор.
type SnapshotStore struct {
	subs     map[int]SubscriberFunc
	inflight map[string]int
	snapshot models.Snapshot
	nextSub  int
	clearing int
	mu       sync.RWMutex
}

// NewSnapshotStore создает пустое хранилище снапшота
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		subs:     make(map[int]SubscriberFunc),
		inflight: make(map[string]int),
		snapshot: models.Snapshot{Page: models.PageInfo{Current: 1, Total: 1}},
	}
}

// Read возвращает копию текущего снапшота. Никогда не блокирует надолго.
func (s *SnapshotStore) Read() models.Snapshot {
	s.mu.RLock()
	snap := s.snapshot.Clone()
	s.mu.RUnlock()
	return snap
}

// Write заменяет снапшот целиком и рассылает его подписчикам
func (s *SnapshotStore) Write(snap models.Snapshot) {
	s.mu.Lock()
	s.snapshot = snap.Clone()
	subs := s.subscribersLocked()
	current := s.snapshot
	s.mu.Unlock()

	broadcast(subs, current)
}

// Update атомарно заменяет снапшот результатом apply от текущего состояния.
// Используется оптимистичным апдейтером: конкурирующие мутации не могут
// потерять правки друг друга между чтением и записью.
func (s *SnapshotStore) Update(apply func(models.Snapshot) models.Snapshot) models.Snapshot {
	s.mu.Lock()
	s.snapshot = apply(s.snapshot.Clone())
	subs := s.subscribersLocked()
	current := s.snapshot
	s.mu.Unlock()

	broadcast(subs, current)
	return current.Clone()
}

// Subscribe регистрирует подписчика и возвращает функцию отписки.
// Подписчик получает уведомления вне блокировки хранилища: из колбэка
// безопасно вызывать Read и IsPending.
func (s *SnapshotStore) Subscribe(fn SubscriberFunc) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// BeginFlight отмечает ключ как имеющий мутацию в полете.
// Для одного ключа допускается несколько конкурирующих мутаций.
func (s *SnapshotStore) BeginFlight(key string) {
	s.mu.Lock()
	s.inflight[key]++
	s.mu.Unlock()
}

// EndFlight снимает отметку мутации в полете.
// Вызывается на каждом пути выхода реконсиляции.
func (s *SnapshotStore) EndFlight(key string) {
	s.mu.Lock()
	if s.inflight[key] > 1 {
		s.inflight[key]--
	} else {
		delete(s.inflight, key)
	}
	s.mu.Unlock()
}

// IsPending проверяет, есть ли у ключа мутация в полете
func (s *SnapshotStore) IsPending(key string) bool {
	s.mu.RLock()
	_, ok := s.inflight[key]
	s.mu.RUnlock()
	return ok
}

// BeginClearing отмечает очистку коллекции в полете.
// Очистка адресует всю коллекцию, у нее нет ключа — состояние сторожевое.
func (s *SnapshotStore) BeginClearing() {
	s.mu.Lock()
	s.clearing++
	s.mu.Unlock()
}

// EndClearing снимает отметку очистки в полете
func (s *SnapshotStore) EndClearing() {
	s.mu.Lock()
	if s.clearing > 0 {
		s.clearing--
	}
	s.mu.Unlock()
}

// Clearing проверяет, выполняется ли сейчас очистка коллекции
func (s *SnapshotStore) Clearing() bool {
	s.mu.RLock()
	clearing := s.clearing > 0
	s.mu.RUnlock()
	return clearing
}

// subscribersLocked снимает срез подписчиков под блокировкой
func (s *SnapshotStore) subscribersLocked() []SubscriberFunc {
	subs := make([]SubscriberFunc, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

// broadcast рассылает снапшот подписчикам, каждому — собственную копию
func broadcast(subs []SubscriberFunc, snap models.Snapshot) {
	for _, fn := range subs {
		fn(snap.Clone())
	}
}
