package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryJanitor - период фоновой очистки просроченных записей.
const memoryJanitor = time.Minute

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory - in-process TTL-кэш поверх go-cache. Используется, когда Redis
// не настроен, и в тестах. Срок жизни дополнительно сверяется с now, чтобы
// тесты могли двигать часы.
type Memory struct {
	c   *gocache.Cache
	now func() time.Time
}

// NewMemory создаёт пустой кэш. now == nil -> time.Now.
func NewMemory(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}

	return &Memory{c: gocache.New(gocache.NoExpiration, memoryJanitor), now: now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}

	e, ok := raw.(memoryEntry)
	if !ok || !m.now().Before(e.expiresAt) {
		m.c.Delete(key)
		return nil, false, nil
	}

	return e.value, true, nil
}

// Set сохраняет копию value; ttl <= 0 - запись не сохраняется.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	v := make([]byte, len(value))
	copy(v, value)

	// Тот же ttl отдаётся go-cache, чтобы janitor вычищал записи по реальному времени.
	m.c.Set(key, memoryEntry{value: v, expiresAt: m.now().Add(ttl)}, ttl)

	return nil
}

// Len - число записей, включая ещё не вычищенные просроченные.
func (m *Memory) Len() int { return m.c.ItemCount() }

func (m *Memory) Close() error {
	m.c.Flush()
	return nil
}

var _ Store = (*Memory)(nil)
