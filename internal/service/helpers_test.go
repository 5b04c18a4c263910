package service

import (
	"sync"
	"testing"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/cache"
	"github.com/pribylovaa/go-govjobs/internal/config"
	"github.com/pribylovaa/go-govjobs/internal/storage"
)

// fixedNow - «текущее» время сервиса в тестах.
var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

// testConfig - конфигурация с лимитами по умолчанию.
func testConfig() config.Config {
	return config.Config{
		Cache: config.CacheConfig{SlugTTL: time.Hour},
		Limits: config.LimitsConfig{
			Default:       20,
			OffsetDefault: 100,
			Max:           500,
			Trending:      10,
			Batch:         1000,
		},
		Fetcher: config.FetcherConfig{
			DefaultType: "job",
			PostedBy:    "rss-ingest",
		},
	}
}

// newSvcForTest - Service с мок-хранилищем, фиксированным временем и без кэша.
func newSvcForTest(t *testing.T, st storage.Storage, mutate ...func(*config.Config)) *Service {
	t.Helper()
	return newSvcWithCache(t, st, nil, mutate...)
}

func newSvcWithCache(t *testing.T, st storage.Storage, store cache.Store, mutate ...func(*config.Config)) *Service {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	svc := New(st, store, cfg)
	svc.now = func() time.Time { return fixedNow }

	return svc
}

func strict(cfg *config.Config) { cfg.Policy.Strict = true }

// fakeClock - управляемые часы для in-memory кэша.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
