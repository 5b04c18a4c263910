package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-govjobs/internal/config"
	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/mocks"
)

func TestBatchInsert_PartialFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	ms.EXPECT().BatchInsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs []models.Announcement) (*models.BulkResult, error) {
			require.Len(t, docs, 2, "невалидный элемент не отправляется")
			require.Equal(t, "A", docs[0].Title)
			require.Equal(t, "B", docs[1].Title)
			// Второй отправленный документ - дубликат slug.
			return &models.BulkResult{
				Inserted: 1,
				Errors:   []models.BulkError{{Index: 1, ID: "idB", Message: "duplicate slug"}},
			}, nil
		})

	res, err := newSvcForTest(t, ms).BatchInsert(context.Background(), []models.CreateInput{
		{Type: "job", Title: "A"},
		{Type: "job"},
		{Type: "job", Title: "B"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Inserted)
	require.Len(t, res.Errors, 2)

	require.Equal(t, 1, res.Errors[0].Index)
	require.Contains(t, res.Errors[0].Message, "title: required")

	require.Equal(t, 2, res.Errors[1].Index, "индекс хранилища переводится во входной")
	require.Equal(t, "idB", res.Errors[1].ID)
	require.Equal(t, "duplicate slug", res.Errors[1].Message)
}

// Одинаковые title в одном пакете не должны давать одинаковые slug.
func TestBatchInsert_SameTitleGetsDistinctSlugs(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	const title = "SSC CGL 2024 Notification"

	ms.EXPECT().BatchInsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs []models.Announcement) (*models.BulkResult, error) {
			require.Len(t, docs, 3)

			seen := map[string]bool{}
			for _, d := range docs {
				require.False(t, seen[d.Slug], "slug %q повторяется", d.Slug)
				seen[d.Slug] = true
				require.True(t, d.PostedAt.Equal(fixedNow))
			}

			require.Equal(t, fmt.Sprintf("ssc-cgl-2024-notification-%d", fixedNow.UnixMilli()), docs[0].Slug)
			return &models.BulkResult{Inserted: int64(len(docs)), Errors: []models.BulkError{}}, nil
		})

	res, err := newSvcForTest(t, ms).BatchInsert(context.Background(), []models.CreateInput{
		{Type: "job", Title: title},
		{Type: "job", Title: title},
		{Type: "result", Title: title},
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, res.Inserted)
	require.Empty(t, res.Errors)
}

func TestBatchInsert_AllInvalidSkipsStorage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	res, err := newSvcForTest(t, ms).BatchInsert(context.Background(), []models.CreateInput{{}, {Title: "x"}})
	require.NoError(t, err)
	require.Zero(t, res.Inserted)
	require.Len(t, res.Errors, 2)
}

func TestBatchInsert_StorageFailureIsReportedPerItem(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	ms.EXPECT().BatchInsert(gomock.Any(), gomock.Any()).Return(nil, errStore)

	res, err := newSvcForTest(t, ms).BatchInsert(context.Background(), []models.CreateInput{
		{Type: "job", Title: "A"},
		{Type: "job", Title: "B"},
	})
	require.NoError(t, err)
	require.Zero(t, res.Inserted)
	require.Equal(t, []models.BulkError{
		{Index: 0, Message: batchFailedMsg},
		{Index: 1, Message: batchFailedMsg},
	}, res.Errors)
}

func TestBatch_Limit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	svc := newSvcForTest(t, ms, func(c *config.Config) { c.Limits.Batch = 1 })

	two := []models.CreateInput{{Type: "job", Title: "A"}, {Type: "job", Title: "B"}}

	_, err := svc.BatchInsert(context.Background(), two)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.BulkUpsert(context.Background(), two)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.BatchUpdate(context.Background(), make([]models.BatchUpdateItem, 2))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBatchUpdate_RemapsIndexes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	ms.EXPECT().BatchUpdate(gomock.Any(), gomock.Any(), fixedNow).
		DoAndReturn(func(_ context.Context, items []models.BatchUpdateItem, _ time.Time) (*models.BulkResult, error) {
			require.Len(t, items, 2)
			require.Equal(t, "bad-id", items[0].ID)
			require.Equal(t, "65f0aa", items[1].ID)
			return &models.BulkResult{
				Modified: 1,
				Errors:   []models.BulkError{{Index: 0, ID: "bad-id", Message: "invalid id"}},
			}, nil
		})

	res, err := newSvcForTest(t, ms).BatchUpdate(context.Background(), []models.BatchUpdateItem{
		{ID: "65f0bb", Patch: models.UpdateInput{Title: models.Null[string]()}},
		{ID: "bad-id", Patch: models.UpdateInput{Content: models.Some("x")}},
		{ID: "65f0aa", Patch: models.UpdateInput{IsActive: models.Some(false)}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Modified)
	require.Len(t, res.Errors, 2)
	require.Equal(t, 0, res.Errors[0].Index)
	require.Equal(t, "65f0bb", res.Errors[0].ID)
	require.Equal(t, 1, res.Errors[1].Index)
	require.Equal(t, "invalid id", res.Errors[1].Message)
}

func TestBulkUpsert_SlugAndPostedAt(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	posted := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("IST", 5*3600+1800))

	ms.EXPECT().BulkUpsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs []models.Announcement) (*models.UpsertResult, error) {
			require.Len(t, docs, 2)

			require.Equal(t, fmt.Sprintf("bank-po-%d", posted.UnixMilli()), docs[0].Slug)
			require.Equal(t, posted.UTC(), docs[0].PostedAt)
			require.Equal(t, fixedNow, docs[0].UpdatedAt)

			require.Equal(t, "custom-slug", docs[1].Slug)
			require.Equal(t, fixedNow, docs[1].PostedAt)
			require.Equal(t, "importer", docs[1].PostedBy)

			return &models.UpsertResult{Upserted: 1, Modified: 1}, nil
		})

	res, err := newSvcForTest(t, ms).BulkUpsert(context.Background(), []models.CreateInput{
		{Type: "job", Title: "Bank PO", PostedAt: &posted},
		{Type: "result", Title: "X", Slug: " custom-slug ", PostedBy: "importer"},
		{Type: "job", Title: ""},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Upserted)
	require.Equal(t, int64(1), res.Modified)
	require.Len(t, res.Errors, 1)
	require.Equal(t, 2, res.Errors[0].Index)
}

func TestBulkUpsert_SameInputSameSlug(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	var slugs []string
	ms.EXPECT().BulkUpsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs []models.Announcement) (*models.UpsertResult, error) {
			slugs = append(slugs, docs[0].Slug)
			return &models.UpsertResult{}, nil
		}).Times(2)

	svc := newSvcForTest(t, ms)
	posted := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	in := []models.CreateInput{{Type: "job", Title: "Railway Group D", PostedAt: &posted}}

	_, err := svc.BulkUpsert(context.Background(), in)
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	_, err = svc.BulkUpsert(context.Background(), in)
	require.NoError(t, err)

	require.Equal(t, slugs[0], slugs[1])
}

func TestBatchIncrementViews(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	gomock.InOrder(
		ms.EXPECT().BatchIncrementViews(gomock.Any(), []string{"a", "b"}).Return(int64(2), nil),
		ms.EXPECT().BatchIncrementViews(gomock.Any(), []string{"a"}).Return(int64(0), errStore),
	)

	svc := newSvcForTest(t, ms)
	ctx := context.Background()

	require.Zero(t, svc.BatchIncrementViews(ctx, nil))
	require.Equal(t, int64(2), svc.BatchIncrementViews(ctx, []string{"a", "b"}))
	require.Zero(t, svc.BatchIncrementViews(ctx, []string{"a"}))
}
