package cache

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer захватывает запланированные колбэки; тест сам решает,
// когда "истекает" задержка
type fakeTimer struct {
	scheduled []func()
	cancelled int
}

func (f *fakeTimer) fn(_ time.Duration, fn func()) (cancel func()) {
	f.scheduled = append(f.scheduled, fn)
	return func() { f.cancelled++ }
}

// fire запускает последний запланированный колбэк
func (f *fakeTimer) fire() {
	f.scheduled[len(f.scheduled)-1]()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestMembershipIndex(t *testing.T) {
	index := NewMembershipIndex()

	member, checked := index.Get("prod-1")
	assert.False(t, member)
	assert.False(t, checked)

	index.SetProvisional("prod-1", true)
	member, checked = index.Get("prod-1")
	assert.True(t, member)
	assert.False(t, checked)

	index.MarkChecked("prod-1", true)
	member, checked = index.Get("prod-1")
	assert.True(t, member)
	assert.True(t, checked)

	index.Invalidate("prod-1")
	assert.False(t, index.Checked("prod-1"))

	index.MarkChecked("prod-2", false)
	index.Reset()
	assert.False(t, index.Checked("prod-2"))
}

func TestBatchChecker_CoalescesRequests(t *testing.T) {
	timer := &fakeTimer{}
	index := NewMembershipIndex()
	remote := &MembershipAPIMock{
		CheckMembershipFunc: func(ctx context.Context, keys []string) (map[string]bool, error) {
			return map[string]bool{"prod-a": true, "prod-b": false, "prod-c": true}, nil
		},
	}

	checker := NewBatchChecker(remote, index, DefaultCheckDelay, timer.fn, discardLogger())

	// Два запроса внутри окна дебаунса: второй перезапускает таймер
	checker.Enqueue([]string{"prod-a", "prod-b"})
	checker.Enqueue([]string{"prod-c"})

	require.Len(t, timer.scheduled, 2)
	assert.Equal(t, 1, timer.cancelled)
	assert.Empty(t, remote.CheckMembershipCalls())

	timer.fire()

	// Один сетевой вызов на весь накопленный батч
	calls := remote.CheckMembershipCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"prod-a", "prod-b", "prod-c"}, calls[0].Keys)

	member, checked := index.Get("prod-a")
	assert.True(t, member)
	assert.True(t, checked)
	member, checked = index.Get("prod-b")
	assert.False(t, member)
	assert.True(t, checked)
}

func TestBatchChecker_SkipsCheckedAndEmptyKeys(t *testing.T) {
	timer := &fakeTimer{}
	index := NewMembershipIndex()
	index.MarkChecked("prod-known", true)

	remote := &MembershipAPIMock{
		CheckMembershipFunc: func(ctx context.Context, keys []string) (map[string]bool, error) {
			return map[string]bool{}, nil
		},
	}
	checker := NewBatchChecker(remote, index, DefaultCheckDelay, timer.fn, discardLogger())

	// Подтвержденные и пустые ключи не порождают таймер
	checker.Enqueue([]string{"prod-known", ""})
	assert.Empty(t, timer.scheduled)

	checker.Enqueue([]string{"prod-known", "prod-new"})
	require.Len(t, timer.scheduled, 1)

	timer.fire()
	calls := remote.CheckMembershipCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"prod-new"}, calls[0].Keys)
}

func TestBatchChecker_FailureIsSilentAndRetriable(t *testing.T) {
	timer := &fakeTimer{}
	index := NewMembershipIndex()

	var calls int
	remote := &MembershipAPIMock{
		CheckMembershipFunc: func(ctx context.Context, keys []string) (map[string]bool, error) {
			calls++
			if calls == 1 {
				return nil, errors.New("network down")
			}
			return map[string]bool{"prod-a": true}, nil
		},
	}
	checker := NewBatchChecker(remote, index, DefaultCheckDelay, timer.fn, discardLogger())

	checker.Enqueue([]string{"prod-a"})
	timer.fire()

	// Сбой не трогает индекс: ключ остается непроверенным
	assert.False(t, index.Checked("prod-a"))

	// Повторный запрос попадает в следующий батч (at-least-once)
	checker.Enqueue([]string{"prod-a"})
	timer.fire()

	member, checked := index.Get("prod-a")
	assert.True(t, member)
	assert.True(t, checked)
}

func TestBatchChecker_QueueDrainedBeforeNetworkCall(t *testing.T) {
	timer := &fakeTimer{}
	index := NewMembershipIndex()

	var checker *BatchChecker
	remote := &MembershipAPIMock{
		CheckMembershipFunc: func(ctx context.Context, keys []string) (map[string]bool, error) {
			// Запрос во время сетевого вызова начинает новый батч
			checker.Enqueue([]string{"prod-late"})
			return map[string]bool{"prod-a": true}, nil
		},
	}
	checker = NewBatchChecker(remote, index, DefaultCheckDelay, timer.fn, discardLogger())

	checker.Enqueue([]string{"prod-a"})
	timer.fire()

	require.Len(t, remote.CheckMembershipCalls(), 1)
	require.Len(t, timer.scheduled, 2)

	timer.fire()
	calls := remote.CheckMembershipCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"prod-late"}, calls[1].Keys)
}

func TestNewBatchChecker_Defaults(t *testing.T) {
	checker := NewBatchChecker(&MembershipAPIMock{}, NewMembershipIndex(), 0, nil, discardLogger())
	assert.Equal(t, DefaultCheckDelay, checker.delay)
	assert.NotNil(t, checker.timer)
}
