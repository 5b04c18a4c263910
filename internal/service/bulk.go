package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
)

// batchFailedMsg - сообщение для элементов, не записанных из-за отказа всей операции.
const batchFailedMsg = "batch write failed"

// remap переводит индексы ошибок хранилища (позиции в отправленном подмножестве)
// в индексы входного среза.
func remap(errs []models.BulkError, positions []int) []models.BulkError {
	out := make([]models.BulkError, 0, len(errs))
	for _, e := range errs {
		if e.Index >= 0 && e.Index < len(positions) {
			e.Index = positions[e.Index]
		}
		out = append(out, e)
	}

	return out
}

// failAll помечает все отправленные элементы ошибкой отказа операции.
func failAll(positions []int) []models.BulkError {
	out := make([]models.BulkError, 0, len(positions))
	for _, p := range positions {
		out = append(out, models.BulkError{Index: p, Message: batchFailedMsg})
	}

	return out
}

func sortErrors(errs []models.BulkError) {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Index < errs[j].Index })
}

// BatchInsert создаёт пачку объявлений.
//
// Особенности:
//   - каждый элемент валидируется отдельно, невалидные попадают в Errors и не отправляются;
//   - вставка неупорядоченная: дубликат slug у одного элемента не мешает остальным;
//   - отказ хранилища целиком не возвращается как error: все отправленные
//     элементы попадают в Errors, Inserted=0.
//
// error - только ErrInvalidArgument при превышении cfg.Limits.Batch.
func (s *Service) BatchInsert(ctx context.Context, items []models.CreateInput) (*models.BulkResult, error) {
	const op = "service/BatchInsert"

	if err := s.checkBatch("items", len(items)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg := log.From(ctx)
	now := s.now()

	res := &models.BulkResult{Errors: []models.BulkError{}}
	docs := make([]models.Announcement, 0, len(items))
	positions := make([]int, 0, len(items))
	// одинаковые title в одном пакете получают разные slug.
	slugs := newSlugger()

	for i, in := range items {
		doc, err := s.prepareCreate(in, now, slugs)
		if err != nil {
			res.Errors = append(res.Errors, models.BulkError{Index: i, Message: err.Error()})
			continue
		}
		docs = append(docs, doc)
		positions = append(positions, i)
	}

	if len(docs) > 0 {
		sr, err := s.storage.BatchInsert(ctx, docs)
		if err != nil {
			lg.Error("batch_insert_storage_error", slog.String("op", op), slog.String("err", err.Error()))
			res.Errors = append(res.Errors, failAll(positions)...)
		} else {
			res.Inserted = sr.Inserted
			res.Errors = append(res.Errors, remap(sr.Errors, positions)...)
		}
	}

	sortErrors(res.Errors)

	lg.Info("batch_insert_done",
		slog.String("op", op),
		slog.Int("items", len(items)),
		slog.Int64("inserted", res.Inserted),
		slog.Int("errors", len(res.Errors)),
	)

	return res, nil
}

// BatchUpdate применяет частичные обновления одним неупорядоченным bulkWrite.
// Некорректные патчи и id попадают в Errors; updatedAt обновляется у всех изменённых.
func (s *Service) BatchUpdate(ctx context.Context, items []models.BatchUpdateItem) (*models.BulkResult, error) {
	const op = "service/BatchUpdate"

	if err := s.checkBatch("items", len(items)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg := log.From(ctx)

	res := &models.BulkResult{Errors: []models.BulkError{}}
	valid := make([]models.BatchUpdateItem, 0, len(items))
	positions := make([]int, 0, len(items))

	for i, it := range items {
		if err := checkPatch(it.Patch); err != nil {
			res.Errors = append(res.Errors, models.BulkError{Index: i, ID: it.ID, Message: err.Error()})
			continue
		}
		valid = append(valid, it)
		positions = append(positions, i)
	}

	if len(valid) > 0 {
		sr, err := s.storage.BatchUpdate(ctx, valid, s.now())
		if err != nil {
			lg.Error("batch_update_storage_error", slog.String("op", op), slog.String("err", err.Error()))
			for _, p := range positions {
				res.Errors = append(res.Errors, models.BulkError{Index: p, ID: items[p].ID, Message: batchFailedMsg})
			}
		} else {
			res.Modified = sr.Modified
			res.Errors = append(res.Errors, remap(sr.Errors, positions)...)
		}
	}

	sortErrors(res.Errors)

	lg.Info("batch_update_done",
		slog.String("op", op),
		slog.Int("items", len(items)),
		slog.Int64("modified", res.Modified),
		slog.Int("errors", len(res.Errors)),
	)

	return res, nil
}

// BulkUpsert - upsert по slug.
//
// Slug: переданный явно, иначе Slugify(title) + время публикации (PostedAt или now).
// Поэтому повторный импорт той же записи с тем же PostedAt попадает в тот же документ.
// postedBy/postedAt/isActive/viewCount выставляются только при вставке.
func (s *Service) BulkUpsert(ctx context.Context, items []models.CreateInput) (*models.UpsertResult, error) {
	const op = "service/BulkUpsert"

	if err := s.checkBatch("items", len(items)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg := log.From(ctx)
	now := s.now()

	res := &models.UpsertResult{Errors: []models.BulkError{}}
	docs := make([]models.Announcement, 0, len(items))
	positions := make([]int, 0, len(items))

	for i, in := range items {
		in = normalizeInput(in)
		if err := s.check(in); err != nil {
			res.Errors = append(res.Errors, models.BulkError{Index: i, Message: err.Error()})
			continue
		}

		postedAt := now
		if in.PostedAt != nil && !in.PostedAt.IsZero() {
			postedAt = in.PostedAt.UTC()
		}

		slug := in.Slug
		if slug == "" {
			slug = newSlug(in.Title, postedAt)
		}

		docs = append(docs, toAnnouncement(in, slug, postedAt, now))
		positions = append(positions, i)
	}

	if len(docs) > 0 {
		sr, err := s.storage.BulkUpsert(ctx, docs)
		if err != nil {
			lg.Error("bulk_upsert_storage_error", slog.String("op", op), slog.String("err", err.Error()))
			res.Errors = append(res.Errors, failAll(positions)...)
		} else {
			res.Upserted = sr.Upserted
			res.Modified = sr.Modified
			res.Errors = append(res.Errors, remap(sr.Errors, positions)...)
		}
	}

	sortErrors(res.Errors)

	lg.Info("bulk_upsert_done",
		slog.String("op", op),
		slog.Int("items", len(items)),
		slog.Int64("upserted", res.Upserted),
		slog.Int64("modified", res.Modified),
		slog.Int("errors", len(res.Errors)),
	)

	return res, nil
}

// BatchIncrementViews - bulk $inc viewCount. Некорректные id пропускаются,
// при ошибке хранилища возвращается 0.
func (s *Service) BatchIncrementViews(ctx context.Context, ids []string) int64 {
	const op = "service/BatchIncrementViews"

	if len(ids) == 0 {
		return 0
	}

	if err := s.checkBatch("ids", len(ids)); err != nil {
		log.From(ctx).Info("batch_views_rejected", slog.String("op", op), slog.Int("ids", len(ids)))
		return 0
	}

	n, err := s.storage.BatchIncrementViews(ctx, ids)
	if err != nil {
		log.From(ctx).Warn("batch_views_failed",
			slog.String("op", op),
			slog.Int("ids", len(ids)),
			slog.String("err", err.Error()),
		)
		return 0
	}

	return n
}
