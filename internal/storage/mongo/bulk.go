package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// writeErrors достаёт ошибки отдельных операций из BulkWriteException.
// Индекс ошибки - позиция в отправленном срезе моделей/документов.
// ok=false - ошибка не поэлементная (сеть, write concern и т.п.).
func writeErrors(err error) ([]mongodriver.BulkWriteError, bool) {
	var bwe mongodriver.BulkWriteException
	if !errors.As(err, &bwe) {
		return nil, false
	}

	if bwe.WriteConcernError != nil {
		return nil, false
	}

	return bwe.WriteErrors, true
}

func writeErrorMessage(we mongodriver.BulkWriteError) string {
	if we.Code == 11000 {
		return "duplicate slug"
	}

	return we.Message
}

// BatchInsert - одна неупорядоченная вставка: ошибка одного документа
// (например, дубликат slug) не мешает записи остальных.
func (m *Mongo) BatchInsert(ctx context.Context, items []models.Announcement) (*models.BulkResult, error) {
	const op = "storage/mongo/BatchInsert"

	res := &models.BulkResult{Errors: []models.BulkError{}}
	if len(items) == 0 {
		return res, nil
	}

	docs := make([]any, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, a := range items {
		d := fromModel(a)
		if d.ID.IsZero() {
			d.ID = primitive.NewObjectID()
		}
		docs = append(docs, d)
		ids = append(ids, d.ID.Hex())
	}

	_, err := m.announcements.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		res.Inserted = int64(len(docs))
		return res, nil
	}

	wes, ok := writeErrors(err)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, we := range wes {
		res.Errors = append(res.Errors, models.BulkError{
			Index:   we.Index,
			ID:      ids[we.Index],
			Message: writeErrorMessage(we),
		})
	}
	res.Inserted = int64(len(docs) - len(wes))

	return res, nil
}

// BatchUpdate - неупорядоченный bulkWrite из updateOne по _id.
// Некорректные id отсекаются до запроса.
func (m *Mongo) BatchUpdate(ctx context.Context, items []models.BatchUpdateItem, now time.Time) (*models.BulkResult, error) {
	const op = "storage/mongo/BatchUpdate"

	res := &models.BulkResult{Errors: []models.BulkError{}}

	writes := make([]mongodriver.WriteModel, 0, len(items))
	// positions[i] - индекс во входном срезе для writes[i].
	positions := make([]int, 0, len(items))

	for i, it := range items {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(it.ID))
		if err != nil {
			res.Errors = append(res.Errors, models.BulkError{Index: i, ID: it.ID, Message: "invalid id"})
			continue
		}

		writes = append(writes, mongodriver.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: oid}}).
			SetUpdate(buildUpdate(it.Patch, now)))
		positions = append(positions, i)
	}

	if len(writes) == 0 {
		return res, nil
	}

	bw, err := m.announcements.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if bw != nil {
		res.Modified = bw.ModifiedCount
	}

	if err != nil {
		wes, ok := writeErrors(err)
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, we := range wes {
			idx := positions[we.Index]
			res.Errors = append(res.Errors, models.BulkError{Index: idx, ID: items[idx].ID, Message: writeErrorMessage(we)})
		}
	}

	return res, nil
}

// BulkUpsert - upsert по slug. Поля содержимого и updatedAt перезаписываются всегда,
// postedBy/postedAt/isActive/viewCount - только при вставке.
func (m *Mongo) BulkUpsert(ctx context.Context, items []models.Announcement) (*models.UpsertResult, error) {
	const op = "storage/mongo/BulkUpsert"

	res := &models.UpsertResult{Errors: []models.BulkError{}}
	if len(items) == 0 {
		return res, nil
	}

	writes := make([]mongodriver.WriteModel, 0, len(items))
	for _, a := range items {
		d := fromModel(a)

		writes = append(writes, mongodriver.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "slug", Value: d.Slug}}).
			SetUpdate(bson.D{
				{Key: "$set", Value: d.contentFields()},
				{Key: "$setOnInsert", Value: bson.D{
					{Key: "postedBy", Value: d.PostedBy},
					{Key: "postedAt", Value: d.PostedAt},
					{Key: "isActive", Value: true},
					{Key: "viewCount", Value: int64(0)},
				}},
			}).
			SetUpsert(true))
	}

	bw, err := m.announcements.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if bw != nil {
		res.Upserted = bw.UpsertedCount
		res.Modified = bw.ModifiedCount
	}

	if err != nil {
		wes, ok := writeErrors(err)
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		for _, we := range wes {
			res.Errors = append(res.Errors, models.BulkError{Index: we.Index, Message: writeErrorMessage(we)})
		}
	}

	return res, nil
}

// BatchIncrementViews - неупорядоченный bulk $inc viewCount.
func (m *Mongo) BatchIncrementViews(ctx context.Context, ids []string) (int64, error) {
	const op = "storage/mongo/BatchIncrementViews"

	// Дубли не схлопываем: каждый id - отдельный просмотр.
	writes := make([]mongodriver.WriteModel, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		writes = append(writes, mongodriver.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: oid}}).
			SetUpdate(incViews))
	}

	if len(writes) == 0 {
		return 0, nil
	}

	bw, err := m.announcements.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return bw.ModifiedCount, nil
}
