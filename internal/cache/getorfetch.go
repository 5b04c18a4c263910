package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
)

var requests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "govjobs_cache_requests_total",
	Help: "Cache-aside lookups by result (hit, miss, error).",
}, []string{"result"})

// GetOrFetch возвращает значение по ключу из кэша или вызывает loader.
//
// Поведение:
//   - попадание - loader не вызывается;
//   - промах - результат loader (не nil) сохраняется с ttl;
//   - nil от loader не кэшируется: следующий запрос снова пойдёт в loader;
//   - ошибка loader возвращается как есть, в кэш ничего не пишется;
//   - любые ошибки кэша (get/set/decode) логируются и игнорируются (fail-open);
//   - store == nil - всегда loader.
//
// Защиты от одновременных промахов по одному ключу нет: оба запроса вызовут loader.
func GetOrFetch[T any](ctx context.Context, store Store, key string, ttl time.Duration, loader func(context.Context) (*T, error)) (*T, error) {
	if store == nil {
		return loader(ctx)
	}

	lg := log.From(ctx).With("cache_key", key)

	raw, ok, err := store.Get(ctx, key)
	switch {
	case err != nil:
		requests.WithLabelValues("error").Inc()
		lg.Warn("cache_get_failed", "err", err)
	case ok:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			requests.WithLabelValues("hit").Inc()
			return &v, nil
		}
		requests.WithLabelValues("error").Inc()
		lg.Warn("cache_decode_failed")
	default:
		requests.WithLabelValues("miss").Inc()
	}

	v, err := loader(ctx)
	if err != nil || v == nil {
		return v, err
	}

	b, err := json.Marshal(v)
	if err != nil {
		lg.Warn("cache_encode_failed", "err", err)
		return v, nil
	}

	if err := store.Set(ctx, key, b, ttl); err != nil {
		requests.WithLabelValues("error").Inc()
		lg.Warn("cache_set_failed", "err", err)
	}

	return v, nil
}
