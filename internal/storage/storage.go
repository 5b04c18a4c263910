//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCursor - битый курсор (не hex ObjectID).
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrConflict - конфликт уникальности (slug).
	ErrConflict = errors.New("conflict")
)

// Storage описывает операции над объявлениями.
//
// Limit/Offset/Sort в models.Filter приходят уже нормализованными сервисным слоем;
// хранилище применяет их как есть.
type Storage interface {
	// FindAll - offset-пагинация по активным объявлениям.
	FindAll(ctx context.Context, f models.Filter) ([]models.Announcement, error)

	// FindAllWithCursor - keyset-пагинация по _id. Запрашивает limit+1 строк,
	// чтобы определить HasMore без отдельного count.
	// При битом курсоре - ErrInvalidCursor.
	FindAllWithCursor(ctx context.Context, f models.Filter) (*models.CursorPage[models.Announcement], error)

	// FindListingCards - то же, что FindAllWithCursor, но с фиксированной проекцией полей.
	FindListingCards(ctx context.Context, f models.Filter) (*models.CursorPage[models.ListingCard], error)

	// FindBySlug возвращает активное объявление по slug.
	// Если записи нет или она неактивна - ErrNotFound.
	FindBySlug(ctx context.Context, slug string) (*models.Announcement, error)

	// FindByID возвращает объявление независимо от isActive.
	// Некорректный формат id трактуется как «нет такой записи» (ErrNotFound).
	FindByID(ctx context.Context, id string) (*models.Announcement, error)

	// FindByIDs возвращает найденные объявления; некорректные id пропускаются.
	FindByIDs(ctx context.Context, ids []string) ([]models.Announcement, error)

	// Create вставляет подготовленный документ (slug/postedAt/updatedAt уже выставлены).
	// Дубликат slug - ErrConflict.
	Create(ctx context.Context, a models.Announcement) (*models.Announcement, error)

	// Update применяет частичное обновление и возвращает документ после изменения.
	// Если записи нет - ErrNotFound.
	Update(ctx context.Context, id string, patch models.UpdateInput, now time.Time) (*models.Announcement, error)

	// Delete - жёсткое удаление. Если записи нет - ErrNotFound.
	Delete(ctx context.Context, id string) error

	// SoftDelete выставляет isActive=false. Если записи нет - ErrNotFound.
	SoftDelete(ctx context.Context, id string, now time.Time) error

	// IncrementViewCount увеличивает viewCount на 1 и возвращает число изменённых документов.
	IncrementViewCount(ctx context.Context, id string) (int64, error)

	// BatchInsert - неупорядоченная вставка пачки. Ошибки отдельных документов
	// возвращаются в BulkResult.Errors с индексом во входном срезе;
	// error - только если не удалось выполнить операцию целиком.
	BatchInsert(ctx context.Context, docs []models.Announcement) (*models.BulkResult, error)

	// BatchUpdate - неупорядоченный bulkWrite из updateOne. Некорректные id
	// попадают в Errors и в запрос не уходят.
	BatchUpdate(ctx context.Context, items []models.BatchUpdateItem, now time.Time) (*models.BulkResult, error)

	// BulkUpsert - upsert по slug. postedBy/postedAt/isActive/viewCount
	// выставляются только при вставке ($setOnInsert).
	BulkUpsert(ctx context.Context, docs []models.Announcement) (*models.UpsertResult, error)

	// BatchIncrementViews - неупорядоченный bulk $inc; некорректные id пропускаются.
	BatchIncrementViews(ctx context.Context, ids []string) (int64, error)

	// Trending - активные объявления по viewCount DESC, postedAt DESC.
	Trending(ctx context.Context, limit int64) ([]models.Announcement, error)

	// ByDeadlineRange - активные объявления с deadline в [from, to], по возрастанию deadline.
	ByDeadlineRange(ctx context.Context, from, to time.Time, limit int64) ([]models.Announcement, error)

	// Categories/Organizations - уникальные непустые значения среди активных, отсортированные.
	Categories(ctx context.Context) ([]string, error)
	Organizations(ctx context.Context) ([]string, error)

	// Tags - частоты тегов среди активных объявлений, по убыванию, не более limit.
	Tags(ctx context.Context, limit int64) ([]models.TagCount, error)
}

// LegacyStorage - чтение устаревших коллекций для миграции.
type LegacyStorage interface {
	LegacyJobs(ctx context.Context) ([]models.LegacyJob, error)
	LegacyResults(ctx context.Context) ([]models.LegacyResult, error)
	LegacyAdmitCards(ctx context.Context) ([]models.LegacyAdmitCard, error)
}
