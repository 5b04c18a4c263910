package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-govjobs/internal/cache"
	"github.com/pribylovaa/go-govjobs/internal/config"
	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/storage"
	"github.com/pribylovaa/go-govjobs/mocks"
)

// Unit-тесты путей чтения:
//  - нормализация limit/offset/sort;
//  - битый курсор -> пустая страница без ошибки;
//  - политика деградации: fail-open (пусто) и strict (ErrInternal);
//  - кэш FindBySlug: второй вызов в пределах TTL не ходит в хранилище,
//    после истечения TTL - ходит; «не найдено» не кэшируется.

var errStore = errors.New("connection refused")

func TestFindAll_Normalizes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	gomock.InOrder(
		ms.EXPECT().FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f models.Filter) ([]models.Announcement, error) {
				require.Equal(t, int64(100), f.Limit, "limit=0 -> offset default")
				require.Equal(t, int64(0), f.Offset, "negative offset -> 0")
				require.Equal(t, models.SortNewest, f.Sort, "unknown sort -> newest")
				require.Equal(t, "bank", f.Search, "search trimmed")
				return nil, nil
			}),
		ms.EXPECT().FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f models.Filter) ([]models.Announcement, error) {
				require.Equal(t, int64(500), f.Limit, "limit capped by max")
				require.Equal(t, int64(40), f.Offset)
				require.Equal(t, models.SortDeadline, f.Sort, "deadline is passed through")
				return []models.Announcement{{ID: "a"}}, nil
			}),
	)

	svc := newSvcForTest(t, ms)

	_, err := svc.FindAll(context.Background(), models.Filter{Offset: -3, Sort: "bogus", Search: "  bank "})
	require.NoError(t, err)

	items, err := svc.FindAll(context.Background(), models.Filter{Limit: 10_000, Offset: 40, Sort: models.SortDeadline})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestFindAll_FailOpenAndStrict(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	ms.EXPECT().FindAll(gomock.Any(), gomock.Any()).Return(nil, errStore).Times(2)

	items, err := newSvcForTest(t, ms).FindAll(context.Background(), models.Filter{})
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)

	_, err = newSvcForTest(t, ms, strict).FindAll(context.Background(), models.Filter{})
	require.ErrorIs(t, err, ErrInternal)
}

func TestFindAllWithCursor_DefaultLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	want := &models.CursorPage[models.Announcement]{
		Data:       []models.Announcement{{ID: "b"}},
		NextCursor: "b",
		HasMore:    true,
	}

	ms.EXPECT().FindAllWithCursor(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f models.Filter) (*models.CursorPage[models.Announcement], error) {
			require.Equal(t, int64(20), f.Limit)
			require.Equal(t, "abc", f.Cursor)
			return want, nil
		})

	page, err := newSvcForTest(t, ms).FindAllWithCursor(context.Background(), models.Filter{Cursor: " abc "})
	require.NoError(t, err)
	require.Same(t, want, page)
}

func TestCursorPages_InvalidCursorIsEmptyPage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	invalid := fmt.Errorf("storage/mongo/findPage: %w", storage.ErrInvalidCursor)
	ms.EXPECT().FindAllWithCursor(gomock.Any(), gomock.Any()).Return(nil, invalid)
	ms.EXPECT().FindListingCards(gomock.Any(), gomock.Any()).Return(nil, invalid)

	// Даже в strict-режиме битый курсор - не ошибка.
	svc := newSvcForTest(t, ms, strict)

	page, err := svc.FindAllWithCursor(context.Background(), models.Filter{Cursor: "zzz"})
	require.NoError(t, err)
	require.Empty(t, page.Data)
	require.NotNil(t, page.Data)
	require.False(t, page.HasMore)
	require.Empty(t, page.NextCursor)

	cards, err := svc.FindListingCards(context.Background(), models.Filter{Cursor: "zzz"})
	require.NoError(t, err)
	require.Empty(t, cards.Data)
	require.False(t, cards.HasMore)
}

func TestFindListingCards_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	ms.EXPECT().FindListingCards(gomock.Any(), gomock.Any()).Return(nil, errStore).Times(2)

	page, err := newSvcForTest(t, ms).FindListingCards(context.Background(), models.Filter{Type: "job"})
	require.NoError(t, err)
	require.Empty(t, page.Data)
	require.False(t, page.HasMore)

	_, err = newSvcForTest(t, ms, strict).FindListingCards(context.Background(), models.Filter{Type: "job"})
	require.ErrorIs(t, err, ErrInternal)
}

func TestFindBySlug_CachedWithinTTL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	clk := &fakeClock{t: fixedNow}
	mem := cache.NewMemory(clk.Now)
	svc := newSvcWithCache(t, ms, mem)

	doc := &models.Announcement{ID: "65f0c0ffee", Slug: "upsc-cse-1", Title: "UPSC CSE", Type: "job", IsActive: true}

	ms.EXPECT().FindBySlug(gomock.Any(), "upsc-cse-1").Return(doc, nil).Times(1)

	ctx := context.Background()

	got, err := svc.FindBySlug(ctx, "upsc-cse-1")
	require.NoError(t, err)
	require.Equal(t, doc.ID, got.ID)

	_, ok, err := mem.Get(ctx, "job:upsc-cse-1")
	require.NoError(t, err)
	require.True(t, ok, "запись должна лечь в кэш под ключом job:{slug}")

	clk.Advance(59 * time.Minute)
	got, err = svc.FindBySlug(ctx, "upsc-cse-1")
	require.NoError(t, err)
	require.Equal(t, doc.Title, got.Title)

	// TTL истёк - снова идём в хранилище.
	clk.Advance(time.Minute)
	ms.EXPECT().FindBySlug(gomock.Any(), "upsc-cse-1").Return(doc, nil).Times(1)

	got, err = svc.FindBySlug(ctx, "upsc-cse-1")
	require.NoError(t, err)
	require.Equal(t, doc.Slug, got.Slug)
}

func TestFindBySlug_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	mem := cache.NewMemory(nil)
	svc := newSvcWithCache(t, ms, mem)

	ms.EXPECT().FindBySlug(gomock.Any(), "missing").
		Return(nil, fmt.Errorf("storage/mongo/FindBySlug: %w", storage.ErrNotFound)).
		Times(2)

	for i := 0; i < 2; i++ {
		_, err := svc.FindBySlug(context.Background(), "missing")
		require.ErrorIs(t, err, ErrNotFound)
	}

	require.Equal(t, 0, mem.Len())
}

func TestFindBySlug_EmptySlug(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	_, err := newSvcForTest(t, ms).FindBySlug(context.Background(), "   ")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindBySlug_StorageError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	ms.EXPECT().FindBySlug(gomock.Any(), "s").Return(nil, errStore).Times(2)

	_, err := newSvcForTest(t, ms).FindBySlug(context.Background(), "s")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = newSvcForTest(t, ms, strict).FindBySlug(context.Background(), "s")
	require.ErrorIs(t, err, ErrInternal)
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	gomock.InOrder(
		ms.EXPECT().FindByID(gomock.Any(), "a1").Return(&models.Announcement{ID: "a1", IsActive: false}, nil),
		ms.EXPECT().FindByID(gomock.Any(), "nope").Return(nil, storage.ErrNotFound),
		ms.EXPECT().FindByID(gomock.Any(), "a2").Return(nil, errStore),
	)

	svc := newSvcForTest(t, ms)
	ctx := context.Background()

	a, err := svc.FindByID(ctx, " a1 ")
	require.NoError(t, err)
	require.False(t, a.IsActive, "неактивные документы доступны по id")

	_, err = svc.FindByID(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.FindByID(ctx, "a2")
	require.ErrorIs(t, err, ErrNotFound, "fail-open: ошибка хранилища -> not found")
}

func TestFindByIDs(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	ms.EXPECT().FindByIDs(gomock.Any(), []string{"a", "b"}).Return([]models.Announcement{{ID: "a"}}, nil)

	svc := newSvcForTest(t, ms, func(c *config.Config) { c.Limits.Batch = 2 })
	ctx := context.Background()

	items, err := svc.FindByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = svc.FindByIDs(ctx, []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = svc.FindByIDs(ctx, []string{"a", "b", "c"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAggregates_Limits(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	ms.EXPECT().Trending(gomock.Any(), int64(10)).Return([]models.Announcement{{ID: "t"}}, nil)
	ms.EXPECT().ByDeadlineRange(gomock.Any(), from, to, int64(20)).Return(nil, nil)
	ms.EXPECT().Tags(gomock.Any(), int64(30)).Return([]models.TagCount{{Tag: "bank", Count: 3}}, nil)

	svc := newSvcForTest(t, ms)
	ctx := context.Background()

	tr, err := svc.GetTrending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, tr, 1)

	_, err = svc.GetByDeadlineRange(ctx, from, to, 0)
	require.NoError(t, err)

	// Перевёрнутый диапазон - пусто без обращения к хранилищу.
	items, err := svc.GetByDeadlineRange(ctx, to, from, 5)
	require.NoError(t, err)
	require.Empty(t, items)

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), tags[0].Count)
}

func TestAggregates_FailOpen(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	ms.EXPECT().Trending(gomock.Any(), gomock.Any()).Return(nil, errStore)
	ms.EXPECT().ByDeadlineRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errStore)
	ms.EXPECT().Categories(gomock.Any()).Return(nil, errStore)
	ms.EXPECT().Organizations(gomock.Any()).Return(nil, errStore)
	ms.EXPECT().Tags(gomock.Any(), gomock.Any()).Return(nil, errStore)

	svc := newSvcForTest(t, ms)
	ctx := context.Background()

	tr, err := svc.GetTrending(ctx, 5)
	require.NoError(t, err)
	require.Empty(t, tr)

	dl, err := svc.GetByDeadlineRange(ctx, fixedNow, fixedNow.Add(time.Hour), 5)
	require.NoError(t, err)
	require.Empty(t, dl)

	cats, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	require.NotNil(t, cats)
	require.Empty(t, cats)

	orgs, err := svc.GetOrganizations(ctx)
	require.NoError(t, err)
	require.Empty(t, orgs)

	tags, err := svc.GetTags(ctx)
	require.NoError(t, err)
	require.Empty(t, tags)
}

func TestAggregates_Strict(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	ms.EXPECT().Categories(gomock.Any()).Return(nil, errStore)
	ms.EXPECT().Tags(gomock.Any(), gomock.Any()).Return(nil, errStore)

	svc := newSvcForTest(t, ms, strict)

	_, err := svc.GetCategories(context.Background())
	require.ErrorIs(t, err, ErrInternal)

	_, err = svc.GetTags(context.Background())
	require.ErrorIs(t, err, ErrInternal)
}
