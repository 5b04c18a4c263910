package mongo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Trending - активные объявления по viewCount DESC, затем postedAt DESC.
func (m *Mongo) Trending(ctx context.Context, limit int64) ([]models.Announcement, error) {
	const op = "storage/mongo/Trending"

	opts := options.Find().
		SetSort(bson.D{{Key: "viewCount", Value: -1}, {Key: "postedAt", Value: -1}}).
		SetLimit(limit)

	items, err := m.find(ctx, activeOnly(), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// ByDeadlineRange - активные объявления с deadline в [from, to] включительно, по возрастанию.
func (m *Mongo) ByDeadlineRange(ctx context.Context, from, to time.Time, limit int64) ([]models.Announcement, error) {
	const op = "storage/mongo/ByDeadlineRange"

	filter := append(activeOnly(), bson.E{Key: "deadline", Value: bson.D{
		{Key: "$gte", Value: toMS(from)},
		{Key: "$lte", Value: toMS(to)},
	}})

	opts := options.Find().
		SetSort(bson.D{{Key: "deadline", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	items, err := m.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// distinctStrings - уникальные непустые строковые значения поля среди активных, отсортированные.
func (m *Mongo) distinctStrings(ctx context.Context, field string) ([]string, error) {
	vals, err := m.announcements.Distinct(ctx, field, activeOnly())
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)

	return out, nil
}

// Categories - список категорий активных объявлений.
func (m *Mongo) Categories(ctx context.Context) ([]string, error) {
	const op = "storage/mongo/Categories"

	out, err := m.distinctStrings(ctx, "category")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Organizations - список организаций активных объявлений.
func (m *Mongo) Organizations(ctx context.Context) ([]string, error) {
	const op = "storage/mongo/Organizations"

	out, err := m.distinctStrings(ctx, "organization")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// tagsPipeline: $match active -> $unwind tags -> $group count -> $sort -> $limit.
// При равной частоте порядок по имени тега, чтобы выдача была стабильной.
func tagsPipeline(limit int64) mongodriver.Pipeline {
	return mongodriver.Pipeline{
		{{Key: "$match", Value: activeOnly()}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
}

// Tags - частоты тегов среди активных объявлений.
func (m *Mongo) Tags(ctx context.Context, limit int64) ([]models.TagCount, error) {
	const op = "storage/mongo/Tags"

	cur, err := m.announcements.Aggregate(ctx, tagsPipeline(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", op, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Tag   string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	out := make([]models.TagCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.TagCount{Tag: r.Tag, Count: r.Count})
	}

	return out, nil
}
