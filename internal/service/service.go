// service содержит бизнес-логику announcements-сервиса: нормализацию запросов,
// кэширование чтений, политику деградации и подготовку документов к записи.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pribylovaa/go-govjobs/internal/cache"
	"github.com/pribylovaa/go-govjobs/internal/config"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	"github.com/pribylovaa/go-govjobs/internal/storage"
)

var (
	// ErrNotFound - сущность отсутствует (или скрыта для публичного чтения).
	// Транспорт: 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument - некорректные входные данные.
	// Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict - конфликт уникальности slug.
	// Транспорт: 409.
	ErrConflict = errors.New("conflict")
	// ErrInternal - хранилище недоступно при выключенной политике fail-open.
	// Транспорт: 500.
	ErrInternal = errors.New("internal error")
)

// InputError - ошибка валидации с читаемым сообщением.
// errors.Is(err, ErrInvalidArgument) == true.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return "invalid argument: " + e.Msg }

func (e *InputError) Unwrap() error { return ErrInvalidArgument }

func invalid(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// Service - фасад над хранилищем объявлений и кэшем.
type Service struct {
	storage  storage.Storage
	cache    cache.Store
	cfg      config.Config
	validate *validator.Validate
	now      func() time.Time
}

// New создаёт новый экземпляр Service.
// store == nil отключает кэширование FindBySlug.
func New(st storage.Storage, store cache.Store, cfg config.Config) *Service {
	return &Service{
		storage:  st,
		cache:    store,
		cfg:      cfg,
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// newValidator возвращает валидатор, который называет поля по json-тегам.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// check валидирует структуру и сводит ошибки validator к InputError.
func (s *Service) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return invalid("%v", err)
	}

	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		msg := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		parts = append(parts, msg)
	}

	return invalid("%s", strings.Join(parts, "; "))
}

// readFailed логирует ошибку хранилища на пути чтения.
// nil - действует fail-open, вызывающий отдаёт пустой результат;
// иначе возвращается ошибка с ErrInternal.
func (s *Service) readFailed(ctx context.Context, op, event string, err error, attrs ...any) error {
	lg := log.From(ctx)
	args := append([]any{slog.String("op", op), slog.String("err", err.Error())}, attrs...)

	if s.cfg.Policy.FailOpen() {
		lg.Warn(event, args...)
		return nil
	}

	lg.Error(event, args...)
	return fmt.Errorf("%s: %w: %v", op, ErrInternal, err)
}

// normalizeLimit: limit <= 0 -> def; limit > max -> max.
func (s *Service) normalizeLimit(limit, def int64) int64 {
	if limit <= 0 {
		limit = def
	}

	if s.cfg.Limits.Max > 0 && limit > s.cfg.Limits.Max {
		limit = s.cfg.Limits.Max
	}

	return limit
}

// checkBatch ограничивает размер пакета cfg.Limits.Batch (0 - без ограничения).
func (s *Service) checkBatch(field string, n int) error {
	if s.cfg.Limits.Batch > 0 && n > s.cfg.Limits.Batch {
		return invalid("%s: at most %d items allowed", field, s.cfg.Limits.Batch)
	}

	return nil
}
