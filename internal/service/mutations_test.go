package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/storage"
	"github.com/pribylovaa/go-govjobs/mocks"
)

func TestCreate_PreparesDocument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	posts := 120
	ms.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a models.Announcement) (*models.Announcement, error) {
			require.Equal(t, fmt.Sprintf("ssc-cgl-2024-%d", fixedNow.UnixMilli()), a.Slug)
			require.Equal(t, "SSC CGL 2024", a.Title)
			require.Equal(t, fixedNow, a.PostedAt)
			require.Equal(t, fixedNow, a.UpdatedAt)
			require.True(t, a.IsActive)
			require.Zero(t, a.ViewCount)
			require.Empty(t, a.ID)
			require.Equal(t, []string{"ssc", "graduate"}, a.Tags)
			require.Equal(t, "admin-1", a.PostedBy)

			a.ID = "65f0aa"
			return &a, nil
		})

	got, err := newSvcForTest(t, ms).Create(context.Background(), models.CreateInput{
		Type:       "job",
		Title:      "  SSC CGL 2024 ",
		Tags:       []string{"ssc", " ", "graduate", "ssc"},
		TotalPosts: &posts,
		PostedBy:   "admin-1",
	})
	require.NoError(t, err)
	require.Equal(t, "65f0aa", got.ID)
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	svc := newSvcForTest(t, ms)

	neg := -1
	tests := []struct {
		name string
		in   models.CreateInput
		want string
	}{
		{"missing title", models.CreateInput{Type: "job", Title: "   "}, "title: required"},
		{"missing type", models.CreateInput{Title: "x"}, "type: required"},
		{"unknown type", models.CreateInput{Type: "news", Title: "x"}, "type: oneof"},
		{"bad link", models.CreateInput{Type: "job", Title: "x", ExternalLink: "not a url"}, "externalLink: url"},
		{"negative posts", models.CreateInput{Type: "job", Title: "x", TotalPosts: &neg}, "totalPosts: gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrInvalidArgument)

			var ie *InputError
			require.True(t, errors.As(err, &ie))
			require.Contains(t, ie.Msg, tt.want)
		})
	}
}

func TestCreate_ErrorMapping(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	conflict := fmt.Errorf("storage/mongo/Create: %w", storage.ErrConflict)

	gomock.InOrder(
		ms.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, conflict).Times(createAttempts),
		ms.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errStore),
	)

	svc := newSvcForTest(t, ms)
	in := models.CreateInput{Type: "result", Title: "Result"}

	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Create(context.Background(), in)
	require.ErrorIs(t, err, errStore)
	require.NotErrorIs(t, err, ErrConflict)
}

// Коллизия slug в хранилище: повтор со сдвинутым суффиксом, наружу ошибки нет.
func TestCreate_RetriesSlugCollision(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	var slugs []string
	ms.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a models.Announcement) (*models.Announcement, error) {
			slugs = append(slugs, a.Slug)
			if len(slugs) == 1 {
				return nil, fmt.Errorf("storage/mongo/Create: %w", storage.ErrConflict)
			}
			a.ID = "a1"
			return &a, nil
		}).Times(2)

	a, err := newSvcForTest(t, ms).Create(context.Background(), models.CreateInput{Type: "job", Title: "SSC CGL 2024"})
	require.NoError(t, err)

	ms0 := fixedNow.UnixMilli()
	require.Equal(t, fmt.Sprintf("ssc-cgl-2024-%d", ms0), slugs[0])
	require.Equal(t, fmt.Sprintf("ssc-cgl-2024-%d", ms0+1), slugs[1])
	require.Equal(t, slugs[1], a.Slug)
	require.True(t, a.PostedAt.Equal(fixedNow), "postedAt не сдвигается вместе со slug")
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	patch := models.UpdateInput{
		Title:    models.Some("New title"),
		Deadline: models.Null[time.Time](),
	}

	gomock.InOrder(
		ms.EXPECT().Update(gomock.Any(), "a1", patch, fixedNow).Return(&models.Announcement{ID: "a1", Title: "New title"}, nil),
		ms.EXPECT().Update(gomock.Any(), "nope", gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound),
	)

	svc := newSvcForTest(t, ms)
	ctx := context.Background()

	a, err := svc.Update(ctx, "a1", patch)
	require.NoError(t, err)
	require.Equal(t, "New title", a.Title)

	_, err = svc.Update(ctx, "nope", patch)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_RejectsInvalidPatch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	svc := newSvcForTest(t, ms)

	for _, p := range []models.UpdateInput{
		{Title: models.Null[string]()},
		{Title: models.Some("  ")},
		{Type: models.Null[string]()},
		{Type: models.Some("blog")},
		{TotalPosts: models.Some(-5)},
	} {
		_, err := svc.Update(context.Background(), "a1", p)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestDeleteAndSoftDelete(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	ms.EXPECT().Delete(gomock.Any(), "a1").Return(nil)
	ms.EXPECT().Delete(gomock.Any(), "a2").Return(storage.ErrNotFound)
	ms.EXPECT().SoftDelete(gomock.Any(), "a3", fixedNow).Return(nil)
	ms.EXPECT().SoftDelete(gomock.Any(), "a4", fixedNow).Return(storage.ErrNotFound)

	svc := newSvcForTest(t, ms)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "a1"))
	require.ErrorIs(t, svc.Delete(ctx, "a2"), ErrNotFound)
	require.NoError(t, svc.SoftDelete(ctx, "a3"))
	require.ErrorIs(t, svc.SoftDelete(ctx, "a4"), ErrNotFound)
}

func TestIncrementViewCount_SwallowsErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	gomock.InOrder(
		ms.EXPECT().IncrementViewCount(gomock.Any(), "a1").Return(int64(1), nil),
		ms.EXPECT().IncrementViewCount(gomock.Any(), "a1").Return(int64(0), errStore),
	)

	svc := newSvcForTest(t, ms)

	require.Equal(t, int64(1), svc.IncrementViewCount(context.Background(), "a1"))
	require.Equal(t, int64(0), svc.IncrementViewCount(context.Background(), "a1"))
}
