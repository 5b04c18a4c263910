package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	apierrors "github.com/pribylovaa/go-govjobs/internal/transport/http/errors"
)

var httpPanics = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "govjobs_http_panics_total",
	Help: "Recovered handler panics by route pattern.",
}, []string{"route"})

var errPanic = errors.New("handler panic")

// Recover перехватывает panic обработчика: счётчик govjobs_http_panics_total,
// запись http_panic со стеком и 500/internal, если ответ ещё не начат.
// http.ErrAbortHandler пробрасывается дальше: это штатный обрыв соединения.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := record(w)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				route := routeOf(r)
				httpPanics.WithLabelValues(route).Inc()
				log.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "http_panic",
					slog.String("route", route),
					slog.Any("reason", rec),
					slog.Bool("response_started", rw.started()),
					slog.String("stack", string(debug.Stack())),
				)

				if !rw.started() {
					apierrors.WriteError(rw, r, errPanic)
				}
			}()

			next.ServeHTTP(rw, r)
		})
	}
}
