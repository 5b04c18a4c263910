// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает ошибку сервисного слоя (или контекста),
// на выход даёт HTTP-статус и краткое безопасное сообщение без утечки деталей.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-govjobs/internal/service"
)

// StatusClientClosedRequest - нестандартный код «клиент закрыл соединение».
const StatusClientClosedRequest = 499

var (
	// ErrUnauthenticated - нет или невалиден admin-токен.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrBadRequest - тело или параметры запроса не разбираются.
	ErrBadRequest = errors.New("bad request")
)

// APIError - единый формат для фронта.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse - корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Маппинг:
//   - service.InputError -> 400 с сообщением валидации;
//   - service.ErrInvalidArgument, ErrBadRequest -> 400;
//   - ErrUnauthenticated -> 401;
//   - service.ErrNotFound -> 404;
//   - service.ErrConflict -> 409;
//   - context.Canceled -> 499; context.DeadlineExceeded -> 504;
//   - nil и прочее (включая service.ErrInternal) -> 500.
func ToHTTP(err error) (int, ErrorResponse) {
	var ie *service.InputError

	switch {
	case err == nil:
		return resp(http.StatusInternalServerError, "internal", "internal error")
	case errors.As(err, &ie):
		return resp(http.StatusBadRequest, "invalid_argument", ie.Msg)
	case errors.Is(err, service.ErrInvalidArgument), errors.Is(err, ErrBadRequest):
		return resp(http.StatusBadRequest, "invalid_argument", "invalid argument")
	case errors.Is(err, ErrUnauthenticated):
		return resp(http.StatusUnauthorized, "unauthenticated", "unauthenticated")
	case errors.Is(err, service.ErrNotFound):
		return resp(http.StatusNotFound, "not_found", "not found")
	case errors.Is(err, service.ErrConflict):
		return resp(http.StatusConflict, "already_exists", "already exists")
	case errors.Is(err, context.Canceled):
		return resp(StatusClientClosedRequest, "canceled", "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return resp(http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded")
	default:
		return resp(http.StatusInternalServerError, "internal", "internal error")
	}
}

func resp(status int, code, msg string) (int, ErrorResponse) {
	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// WriteError пишет статус и тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		body.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
