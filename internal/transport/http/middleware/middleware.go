package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middleware - стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары к обработчику в порядке их перечисления.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}

// recorder запоминает статус и размер ответа. Один recorder на запрос:
// Logging создаёт его, Recover и Metrics переиспользуют.
type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func record(w http.ResponseWriter) *recorder {
	if rw, ok := w.(*recorder); ok {
		return rw
	}

	return &recorder{ResponseWriter: w}
}

func (w *recorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n

	return n, err
}

// Unwrap нужен http.ResponseController.
func (w *recorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// started - заголовки уже ушли клиенту.
func (w *recorder) started() bool { return w.status != 0 }

func (w *recorder) code() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}

// routeOf - шаблон маршрута chi ("/announcements/slug/{slug}"), иначе "unmatched".
// Сырые пути со slug и id в метки и логи не попадают.
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}

	return "unmatched"
}
