package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
)

// tagsLimit - размер выдачи GetTags.
const tagsLimit = 30

// GetTrending - активные объявления по viewCount DESC, postedAt DESC.
// limit <= 0 -> cfg.Limits.Trending.
func (s *Service) GetTrending(ctx context.Context, limit int64) ([]models.Announcement, error) {
	const op = "service/GetTrending"

	items, err := s.storage.Trending(ctx, s.normalizeLimit(limit, s.cfg.Limits.Trending))
	if err != nil {
		if e := s.readFailed(ctx, op, "trending_storage_error", err); e != nil {
			return nil, e
		}
		return []models.Announcement{}, nil
	}

	return items, nil
}

// GetByDeadlineRange - активные объявления с deadline в [from, to] по возрастанию deadline.
// from > to -> пустой список без обращения к хранилищу.
func (s *Service) GetByDeadlineRange(ctx context.Context, from, to time.Time, limit int64) ([]models.Announcement, error) {
	const op = "service/GetByDeadlineRange"

	if to.Before(from) {
		return []models.Announcement{}, nil
	}

	items, err := s.storage.ByDeadlineRange(ctx, from.UTC(), to.UTC(), s.normalizeLimit(limit, s.cfg.Limits.Default))
	if err != nil {
		if e := s.readFailed(ctx, op, "deadline_range_storage_error", err,
			slog.Time("from", from), slog.Time("to", to)); e != nil {
			return nil, e
		}
		return []models.Announcement{}, nil
	}

	return items, nil
}

// GetCategories - уникальные категории активных объявлений.
func (s *Service) GetCategories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "service/GetCategories", s.storage.Categories)
}

// GetOrganizations - уникальные организации активных объявлений.
func (s *Service) GetOrganizations(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "service/GetOrganizations", s.storage.Organizations)
}

func (s *Service) distinct(ctx context.Context, op string, fetch func(context.Context) ([]string, error)) ([]string, error) {
	values, err := fetch(ctx)
	if err != nil {
		if e := s.readFailed(ctx, op, "distinct_storage_error", err); e != nil {
			return nil, e
		}
		return []string{}, nil
	}

	return values, nil
}

// GetTags - до 30 самых частых тегов активных объявлений.
func (s *Service) GetTags(ctx context.Context) ([]models.TagCount, error) {
	const op = "service/GetTags"

	tags, err := s.storage.Tags(ctx, tagsLimit)
	if err != nil {
		if e := s.readFailed(ctx, op, "tags_storage_error", err); e != nil {
			return nil, e
		}
		return []models.TagCount{}, nil
	}

	return tags, nil
}
