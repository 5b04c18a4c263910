package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Проверка выполнения контракта верхнего уровня.
var (
	_ storage.Storage       = (*Mongo)(nil)
	_ storage.LegacyStorage = (*Mongo)(nil)
)

// decodeAll вычитывает курсор в срез документов.
func decodeAll(ctx context.Context, cur *mongodriver.Cursor) ([]announcementDoc, error) {
	defer cur.Close(ctx)

	var docs []announcementDoc
	for cur.Next(ctx) {
		var d announcementDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		docs = append(docs, d)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}

	return docs, nil
}

func toModels(docs []announcementDoc) []models.Announcement {
	out := make([]models.Announcement, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out
}

// find - общий путь Find + decode для выборок без курсора.
func (m *Mongo) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.Announcement, error) {
	cur, err := m.announcements.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	docs, err := decodeAll(ctx, cur)
	if err != nil {
		return nil, err
	}

	return toModels(docs), nil
}

// FindAll - offset-пагинация: skip/limit поверх отфильтрованной и отсортированной выборки.
func (m *Mongo) FindAll(ctx context.Context, f models.Filter) ([]models.Announcement, error) {
	const op = "storage/mongo/FindAll"

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: sortDirection(f.Sort)}}).
		SetSkip(f.Offset).
		SetLimit(f.Limit)

	items, err := m.find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// findPage - keyset-выборка limit+1 документов с опциональной проекцией.
func (m *Mongo) findPage(ctx context.Context, f models.Filter, projection bson.D) ([]announcementDoc, error) {
	dir := sortDirection(f.Sort)
	filter := buildFilter(f)

	if c := strings.TrimSpace(f.Cursor); c != "" {
		oid, err := primitive.ObjectIDFromHex(c)
		if err != nil {
			return nil, storage.ErrInvalidCursor
		}
		filter = append(filter, cursorCondition(oid, dir))
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: dir}}).
		SetLimit(f.Limit + 1)
	if projection != nil {
		opts.SetProjection(projection)
	}

	cur, err := m.announcements.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}

	return decodeAll(ctx, cur)
}

// FindAllWithCursor - курсорная пагинация полных документов.
// При некорректном курсоре - storage.ErrInvalidCursor.
func (m *Mongo) FindAllWithCursor(ctx context.Context, f models.Filter) (*models.CursorPage[models.Announcement], error) {
	const op = "storage/mongo/FindAllWithCursor"

	docs, err := m.findPage(ctx, f, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return paginate(toModels(docs), f.Limit, func(a models.Announcement) string { return a.ID }), nil
}

// FindListingCards - курсорная пагинация с проекцией карточки.
func (m *Mongo) FindListingCards(ctx context.Context, f models.Filter) (*models.CursorPage[models.ListingCard], error) {
	const op = "storage/mongo/FindListingCards"

	docs, err := m.findPage(ctx, f, cardProjection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cards := make([]models.ListingCard, 0, len(docs))
	for _, d := range docs {
		cards = append(cards, d.toCard())
	}

	return paginate(cards, f.Limit, func(c models.ListingCard) string { return c.ID }), nil
}

// findOne - FindOne + decode с маппингом ErrNoDocuments -> storage.ErrNotFound.
func (m *Mongo) findOne(ctx context.Context, filter bson.D) (*models.Announcement, error) {
	var d announcementDoc
	if err := m.announcements.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}

	out := d.toModel()
	return &out, nil
}

// FindBySlug возвращает активное объявление по slug.
func (m *Mongo) FindBySlug(ctx context.Context, slug string) (*models.Announcement, error) {
	const op = "storage/mongo/FindBySlug"

	filter := append(activeOnly(), bson.E{Key: "slug", Value: strings.TrimSpace(slug)})

	out, err := m.findOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// FindByID возвращает объявление по идентификатору без учёта isActive.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	const op = "storage/mongo/FindByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	out, err := m.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// parseIDs оставляет только корректные ObjectID, без дублей.
func parseIDs(ids []string) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))

	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		if _, ok := seen[oid]; ok {
			continue
		}
		seen[oid] = struct{}{}
		out = append(out, oid)
	}

	return out
}

// FindByIDs возвращает найденные объявления (без учёта isActive), сначала новые.
func (m *Mongo) FindByIDs(ctx context.Context, ids []string) ([]models.Announcement, error) {
	const op = "storage/mongo/FindByIDs"

	oids := parseIDs(ids)
	if len(oids) == 0 {
		return []models.Announcement{}, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}
	items, err := m.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Create вставляет документ. Если ID пустой - генерируется новый ObjectID.
func (m *Mongo) Create(ctx context.Context, a models.Announcement) (*models.Announcement, error) {
	const op = "storage/mongo/Create"

	doc := fromModel(a)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := m.announcements.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// Update применяет частичное обновление и возвращает документ после изменения.
func (m *Mongo) Update(ctx context.Context, id string, patch models.UpdateInput, now time.Time) (*models.Announcement, error) {
	const op = "storage/mongo/Update"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d announcementDoc
	err = m.announcements.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, buildUpdate(patch, now), opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := d.toModel()
	return &out, nil
}

// Delete - жёсткое удаление.
func (m *Mongo) Delete(ctx context.Context, id string) error {
	const op = "storage/mongo/Delete"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.announcements.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// SoftDelete помечает объявление неактивным.
func (m *Mongo) SoftDelete(ctx context.Context, id string, now time.Time) error {
	const op = "storage/mongo/SoftDelete"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.announcements.UpdateByID(ctx, oid, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "isActive", Value: false},
			{Key: "updatedAt", Value: toMS(now)},
		}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// IncrementViewCount - $inc viewCount на 1.
func (m *Mongo) IncrementViewCount(ctx context.Context, id string) (int64, error) {
	const op = "storage/mongo/IncrementViewCount"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.announcements.UpdateByID(ctx, oid, incViews)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.ModifiedCount, nil
}

var incViews = bson.D{{Key: "$inc", Value: bson.D{{Key: "viewCount", Value: 1}}}}

// buildUpdate собирает $set/$unset из частичного обновления.
// Отсутствующие поля не попадают в запрос, явный null очищает поле.
// updatedAt выставляется всегда.
func buildUpdate(p models.UpdateInput, now time.Time) bson.D {
	var set, unset bson.D

	str := func(key string, o models.Optional[string]) {
		switch {
		case !o.Set:
		case o.Null:
			unset = append(unset, bson.E{Key: key, Value: ""})
		default:
			set = append(set, bson.E{Key: key, Value: o.Value})
		}
	}

	str("type", p.Type)
	str("title", p.Title)
	str("category", p.Category)
	str("organization", p.Organization)
	str("content", p.Content)
	str("externalLink", p.ExternalLink)
	str("location", p.Location)
	str("minQualification", p.MinQualification)
	str("ageLimit", p.AgeLimit)
	str("applicationFee", p.ApplicationFee)

	if p.Deadline.Set {
		if p.Deadline.Null {
			unset = append(unset, bson.E{Key: "deadline", Value: ""})
		} else {
			set = append(set, bson.E{Key: "deadline", Value: toMS(p.Deadline.Value)})
		}
	}

	if p.TotalPosts.Set {
		if p.TotalPosts.Null {
			unset = append(unset, bson.E{Key: "totalPosts", Value: ""})
		} else {
			set = append(set, bson.E{Key: "totalPosts", Value: p.TotalPosts.Value})
		}
	}

	if p.Tags.Set {
		if p.Tags.Null {
			unset = append(unset, bson.E{Key: "tags", Value: ""})
		} else {
			set = append(set, bson.E{Key: "tags", Value: p.Tags.Value})
		}
	}

	if p.JobDetails.Set {
		if p.JobDetails.Null {
			unset = append(unset, bson.E{Key: "jobDetails", Value: ""})
		} else {
			set = append(set, bson.E{Key: "jobDetails", Value: bson.M(p.JobDetails.Value)})
		}
	}

	if p.ImportantDates.Set {
		if p.ImportantDates.Null {
			unset = append(unset, bson.E{Key: "importantDates", Value: ""})
		} else {
			set = append(set, bson.E{Key: "importantDates", Value: datesToDocs(p.ImportantDates.Value)})
		}
	}

	// isActive не очищается: null для булева флага игнорируется.
	if p.IsActive.Set && !p.IsActive.Null {
		set = append(set, bson.E{Key: "isActive", Value: p.IsActive.Value})
	}

	set = append(set, bson.E{Key: "updatedAt", Value: toMS(now)})

	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	return update
}
