package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pribylovaa/go-govjobs/internal/cache"
	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	"github.com/pribylovaa/go-govjobs/internal/storage"
)

// slugKey - ключ кэша объявления по slug.
func slugKey(slug string) string { return "job:" + slug }

// normalizeSort: неизвестные значения -> newest.
// deadline сохраняется как есть, хранилище сортирует его как newest.
func normalizeSort(sort string) string {
	switch sort {
	case models.SortOldest, models.SortDeadline:
		return sort
	default:
		return models.SortNewest
	}
}

func trimFilter(f models.Filter) models.Filter {
	f.Type = strings.TrimSpace(f.Type)
	f.Category = strings.TrimSpace(f.Category)
	f.Organization = strings.TrimSpace(f.Organization)
	f.Qualification = strings.TrimSpace(f.Qualification)
	f.Search = strings.TrimSpace(f.Search)
	f.Cursor = strings.TrimSpace(f.Cursor)
	f.Sort = normalizeSort(f.Sort)

	return f
}

// FindAll - offset-пагинация по активным объявлениям.
//
// Нормализация:
//   - limit <= 0 -> cfg.Limits.OffsetDefault; limit > max -> cfg.Limits.Max;
//   - offset < 0 -> 0.
//
// Ошибка хранилища при fail-open -> пустой список.
func (s *Service) FindAll(ctx context.Context, f models.Filter) ([]models.Announcement, error) {
	const op = "service/FindAll"

	f = trimFilter(f)
	f.Limit = s.normalizeLimit(f.Limit, s.cfg.Limits.OffsetDefault)
	if f.Offset < 0 {
		f.Offset = 0
	}

	items, err := s.storage.FindAll(ctx, f)
	if err != nil {
		if e := s.readFailed(ctx, op, "find_all_storage_error", err); e != nil {
			return nil, e
		}
		return []models.Announcement{}, nil
	}

	return items, nil
}

// FindAllWithCursor - keyset-пагинация. Битый курсор даёт пустую страницу без ошибки.
func (s *Service) FindAllWithCursor(ctx context.Context, f models.Filter) (*models.CursorPage[models.Announcement], error) {
	const op = "service/FindAllWithCursor"

	f = trimFilter(f)
	f.Limit = s.normalizeLimit(f.Limit, s.cfg.Limits.Default)

	page, err := s.storage.FindAllWithCursor(ctx, f)
	if err != nil {
		return emptyPage[models.Announcement](s.pageFailed(ctx, op, f.Cursor, err))
	}

	return page, nil
}

// FindListingCards - FindAllWithCursor с проекцией карточки.
func (s *Service) FindListingCards(ctx context.Context, f models.Filter) (*models.CursorPage[models.ListingCard], error) {
	const op = "service/FindListingCards"

	f = trimFilter(f)
	f.Limit = s.normalizeLimit(f.Limit, s.cfg.Limits.Default)

	page, err := s.storage.FindListingCards(ctx, f)
	if err != nil {
		return emptyPage[models.ListingCard](s.pageFailed(ctx, op, f.Cursor, err))
	}

	return page, nil
}

// pageFailed разбирает ошибку курсорной выдачи: битый курсор - не ошибка.
func (s *Service) pageFailed(ctx context.Context, op, cursor string, err error) error {
	if errors.Is(err, storage.ErrInvalidCursor) {
		log.From(ctx).Info("cursor_invalid",
			slog.String("op", op),
			slog.String("cursor", cursor),
		)
		return nil
	}

	return s.readFailed(ctx, op, "cursor_storage_error", err)
}

func emptyPage[T any](err error) (*models.CursorPage[T], error) {
	if err != nil {
		return nil, err
	}

	return &models.CursorPage[T]{Data: []T{}}, nil
}

// FindBySlug возвращает активное объявление по slug через кэш (ключ job:{slug}, TTL cfg.Cache.SlugTTL).
//
// Особенности:
//   - «нет такой записи» не кэшируется: следующий запрос снова пойдёт в хранилище;
//   - записи в хранилище кэш не сбрасывают: после Update/SoftDelete
//     старая версия может отдаваться до истечения TTL;
//   - ошибка хранилища при fail-open -> ErrNotFound.
func (s *Service) FindBySlug(ctx context.Context, slug string) (*models.Announcement, error) {
	const op = "service/FindBySlug"

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	a, err := cache.GetOrFetch(ctx, s.cache, slugKey(slug), s.cfg.Cache.SlugTTL,
		func(ctx context.Context) (*models.Announcement, error) {
			a, err := s.storage.FindBySlug(ctx, slug)
			if errors.Is(err, storage.ErrNotFound) {
				return nil, nil
			}
			return a, err
		})
	if err != nil {
		if e := s.readFailed(ctx, op, "find_by_slug_storage_error", err, slog.String("slug", slug)); e != nil {
			return nil, e
		}
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if a == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return a, nil
}

// FindByID возвращает объявление независимо от isActive (admin).
// Некорректный id -> ErrNotFound.
func (s *Service) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	const op = "service/FindByID"

	a, err := s.storage.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		if e := s.readFailed(ctx, op, "find_by_id_storage_error", err, slog.String("id", id)); e != nil {
			return nil, e
		}
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return a, nil
}

// FindByIDs возвращает найденные объявления; некорректные и отсутствующие id пропускаются.
func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]models.Announcement, error) {
	const op = "service/FindByIDs"

	if len(ids) == 0 {
		return []models.Announcement{}, nil
	}

	if err := s.checkBatch("ids", len(ids)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.storage.FindByIDs(ctx, ids)
	if err != nil {
		if e := s.readFailed(ctx, op, "find_by_ids_storage_error", err, slog.Int("ids", len(ids))); e != nil {
			return nil, e
		}
		return []models.Announcement{}, nil
	}

	return items, nil
}
