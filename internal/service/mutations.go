package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	"github.com/pribylovaa/go-govjobs/internal/storage"
)

// normalizeInput обрезает пробелы в строковых полях и чистит теги.
func normalizeInput(in models.CreateInput) models.CreateInput {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Type = strings.TrimSpace(in.Type)
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Organization = strings.TrimSpace(in.Organization)
	in.ExternalLink = strings.TrimSpace(in.ExternalLink)
	in.Location = strings.TrimSpace(in.Location)
	in.MinQualification = strings.TrimSpace(in.MinQualification)
	in.PostedBy = strings.TrimSpace(in.PostedBy)
	in.Tags = cleanTags(in.Tags)

	return in
}

// toAnnouncement собирает документ для записи: isActive=true, viewCount=0.
func toAnnouncement(in models.CreateInput, slug string, postedAt, now time.Time) models.Announcement {
	return models.Announcement{
		Slug:             slug,
		Type:             in.Type,
		Category:         in.Category,
		Organization:     in.Organization,
		Title:            in.Title,
		Content:          in.Content,
		ExternalLink:     in.ExternalLink,
		Location:         in.Location,
		Deadline:         in.Deadline,
		MinQualification: in.MinQualification,
		AgeLimit:         in.AgeLimit,
		ApplicationFee:   in.ApplicationFee,
		TotalPosts:       in.TotalPosts,
		Tags:             in.Tags,
		JobDetails:       in.JobDetails,
		ImportantDates:   in.ImportantDates,
		PostedBy:         in.PostedBy,
		PostedAt:         postedAt.UTC(),
		UpdatedAt:        now,
		IsActive:         true,
	}
}

// prepareCreate валидирует вход и строит документ со slug от текущего момента.
func (s *Service) prepareCreate(in models.CreateInput, now time.Time, slugs *slugger) (models.Announcement, error) {
	in = normalizeInput(in)
	if err := s.check(in); err != nil {
		return models.Announcement{}, err
	}

	return toAnnouncement(in, slugs.next(in.Title, now), now, now), nil
}

// checkPatch - инварианты частичного обновления, которые не выражаются тегами:
// title и type нельзя очистить, type - из перечня, totalPosts >= 0.
func checkPatch(p models.UpdateInput) error {
	if p.Title.Set && (p.Title.Null || strings.TrimSpace(p.Title.Value) == "") {
		return invalid("title: cannot be cleared")
	}

	if p.Type.Set {
		if p.Type.Null {
			return invalid("type: cannot be cleared")
		}
		if !slices.Contains(models.Types, p.Type.Value) {
			return invalid("type: oneof=%s", strings.Join(models.Types, " "))
		}
	}

	if p.TotalPosts.Set && !p.TotalPosts.Null && p.TotalPosts.Value < 0 {
		return invalid("totalPosts: gte=0")
	}

	return nil
}

// createAttempts - сколько раз Create пробует новый slug при коллизии в хранилище.
const createAttempts = 3

// Create создаёт объявление.
//
// Коллизия slug (тот же title в ту же миллисекунду) не ошибка: slug сдвигается
// на 1ms и вставка повторяется, всего до createAttempts раз.
//
// Ошибки:
//   - ErrInvalidArgument - вход не прошёл валидацию;
//   - ErrConflict - slug занят после всех попыток.
func (s *Service) Create(ctx context.Context, in models.CreateInput) (*models.Announcement, error) {
	const op = "service/Create"

	lg := log.From(ctx)

	now := s.now()
	slugs := newSlugger()

	doc, err := s.prepareCreate(in, now, slugs)
	if err != nil {
		lg.Info("create_invalid", slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var a *models.Announcement
	for attempt := 1; ; attempt++ {
		a, err = s.storage.Create(ctx, doc)
		if err == nil {
			break
		}

		if !errors.Is(err, storage.ErrConflict) {
			lg.Error("create_storage_error", slog.String("op", op), slog.String("err", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if attempt == createAttempts {
			lg.Warn("create_conflict", slog.String("op", op), slog.String("slug", doc.Slug))
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		}

		lg.Info("create_slug_collision", slog.String("op", op), slog.String("slug", doc.Slug))
		doc.Slug = slugs.next(doc.Title, now)
	}

	lg.Info("announcement_created",
		slog.String("op", op),
		slog.String("id", a.ID),
		slog.String("slug", a.Slug),
	)

	return a, nil
}

// Update применяет частичное обновление: отсутствующие поля не трогаются,
// явный null очищает поле, updatedAt обновляется всегда.
// Кэш по slug не сбрасывается.
func (s *Service) Update(ctx context.Context, id string, patch models.UpdateInput) (*models.Announcement, error) {
	const op = "service/Update"

	lg := log.From(ctx)

	if err := checkPatch(patch); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a, err := s.storage.Update(ctx, strings.TrimSpace(id), patch, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("update_storage_error",
			slog.String("op", op),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("announcement_updated", slog.String("op", op), slog.String("id", a.ID))

	return a, nil
}

// Delete - жёсткое удаление.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "service/Delete"

	if err := s.storage.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("announcement_deleted", slog.String("op", op), slog.String("id", id))

	return nil
}

// SoftDelete скрывает объявление из публичных выборок (isActive=false).
func (s *Service) SoftDelete(ctx context.Context, id string) error {
	const op = "service/SoftDelete"

	if err := s.storage.SoftDelete(ctx, strings.TrimSpace(id), s.now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("announcement_deactivated", slog.String("op", op), slog.String("id", id))

	return nil
}

// IncrementViewCount увеличивает счётчик просмотров.
// Возвращает число изменённых документов; при любой ошибке - 0.
func (s *Service) IncrementViewCount(ctx context.Context, id string) int64 {
	const op = "service/IncrementViewCount"

	n, err := s.storage.IncrementViewCount(ctx, strings.TrimSpace(id))
	if err != nil {
		log.From(ctx).Warn("increment_views_failed",
			slog.String("op", op),
			slog.String("id", id),
			slog.String("err", err.Error()),
		)
		return 0
	}

	return n
}
