package middleware

import (
	"context"
	"net/http"
	"path"
	"time"
)

// TimeoutOptions - дедлайны запросов. Bulk применяется к пакетным admin-операциям
// (POST/PATCH/PUT на .../batch, .../bulk, .../views), остальное - Default.
// Значение <= 0 - без дедлайна для своего класса.
type TimeoutOptions struct {
	Default time.Duration
	Bulk    time.Duration
}

// For возвращает дедлайн для запроса.
func (o TimeoutOptions) For(r *http.Request) time.Duration {
	if r.Method == http.MethodGet {
		return o.Default
	}

	switch path.Base(r.URL.Path) {
	case "batch", "bulk", "views":
		return o.Bulk
	}

	return o.Default
}

// Timeout навешивает дедлайн по классу запроса, если у контекста его ещё нет.
func Timeout(opts TimeoutOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := opts.For(r)
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
