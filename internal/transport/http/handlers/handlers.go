package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/service"
	apierrors "github.com/pribylovaa/go-govjobs/internal/transport/http/errors"
)

// Handlers агрегирует зависимости REST-слоя.
type Handlers struct {
	svc *service.Service
	now func() time.Time
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc, now: time.Now}
}

// listResponse - обёртка для списков без курсора.
type listResponse[T any] struct {
	Data []T `json:"data"`
}

// idsRequest - тело lookup/views.
type idsRequest struct {
	IDs []string `json:"ids"`
}

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict - строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrBadRequest, err)
	}

	return nil
}

// queryInt читает целый параметр; пустое значение -> 0.
func queryInt(q url.Values, key string) (int64, error) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", apierrors.ErrBadRequest, key)
	}

	return n, nil
}

// parseFilter собирает models.Filter из query-параметров.
// Нормализацию limit/offset/sort выполняет сервис.
func parseFilter(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()

	limit, err := queryInt(q, "limit")
	if err != nil {
		return models.Filter{}, err
	}

	offset, err := queryInt(q, "offset")
	if err != nil {
		return models.Filter{}, err
	}

	search := q.Get("search")
	if search == "" {
		search = q.Get("q")
	}

	return models.Filter{
		Type:          q.Get("type"),
		Category:      q.Get("category"),
		Organization:  q.Get("organization"),
		Qualification: q.Get("qualification"),
		Search:        search,
		Sort:          q.Get("sort"),
		Limit:         limit,
		Offset:        offset,
		Cursor:        q.Get("cursor"),
	}, nil
}

// parseTime принимает RFC3339 или дату YYYY-MM-DD (UTC).
func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad time %q", apierrors.ErrBadRequest, v)
	}

	return t, nil
}
