package importer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/mocks"
)

// fakeSink запоминает размеры пачек и помечает ошибкой элементы без Title.
type fakeSink struct {
	sizes []int
	fail  error
}

func (f *fakeSink) errorsFor(items []models.CreateInput) []models.BulkError {
	errs := []models.BulkError{}
	for i, in := range items {
		if in.Title == "" {
			errs = append(errs, models.BulkError{Index: i, Message: "title: required"})
		}
	}
	return errs
}

func (f *fakeSink) BatchInsert(_ context.Context, items []models.CreateInput) (*models.BulkResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.sizes = append(f.sizes, len(items))
	errs := f.errorsFor(items)
	return &models.BulkResult{Inserted: int64(len(items) - len(errs)), Errors: errs}, nil
}

func (f *fakeSink) BulkUpsert(_ context.Context, items []models.CreateInput) (*models.UpsertResult, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.sizes = append(f.sizes, len(items))
	errs := f.errorsFor(items)
	return &models.UpsertResult{Upserted: int64(len(items) - len(errs)), Modified: 1, Errors: errs}, nil
}

func titled(titles ...string) []models.CreateInput {
	out := make([]models.CreateInput, 0, len(titles))
	for _, t := range titles {
		out = append(out, models.CreateInput{Type: "job", Title: t})
	}
	return out
}

func TestRun_InsertChunksAndGlobalIndexes(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	rep, err := New(sink, 2).Run(context.Background(), titled("a", "b", "c", "", "e"), ModeInsert)
	require.NoError(t, err)

	require.Equal(t, []int{2, 2, 1}, sink.sizes)
	require.Equal(t, 5, rep.Items)
	require.Equal(t, int64(4), rep.Inserted)
	require.Len(t, rep.Errors, 1)
	require.Equal(t, 3, rep.Errors[0].Index, "индекс пачки + смещение пачки")
}

func TestRun_Upsert(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	rep, err := New(sink, 0).Run(context.Background(), titled("a", "b"), ModeUpsert)
	require.NoError(t, err)
	require.Equal(t, []int{2}, sink.sizes)
	require.Equal(t, int64(2), rep.Upserted)
	require.Equal(t, int64(1), rep.Modified)
	require.Empty(t, rep.Errors)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(&fakeSink{}, 1).Run(context.Background(), nil, "merge")
	require.ErrorIs(t, err, ErrUnknownMode)

	boom := errors.New("batch too large")
	_, err = New(&fakeSink{fail: boom}, 1).Run(context.Background(), titled("a"), ModeInsert)
	require.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(&fakeSink{}, 1).Run(ctx, titled("a"), ModeUpsert)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReadNDJSON(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		`{"type":"job","title":"SSC CGL","tags":["ssc"],"totalPosts":100}`,
		``,
		`{"type":"result","title":`,
		`   `,
		`{"type":"admit-card","title":"Railway NTPC","deadline":"2024-06-01T00:00:00Z"}`,
		`[1,2,3]`,
	}, "\n")

	items, bad, err := ReadNDJSON(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, items, 2)
	require.Equal(t, "SSC CGL", items[0].Title)
	require.Equal(t, 100, *items[0].TotalPosts)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), items[1].Deadline.UTC())

	require.Len(t, bad, 2)
	require.Equal(t, 3, bad[0].Line)
	require.Equal(t, 6, bad[1].Line)
}

func TestReadNDJSON_TooLongLine(t *testing.T) {
	t.Parallel()

	long := `{"title":"` + strings.Repeat("x", maxLine) + `"}`
	_, _, err := ReadNDJSON(strings.NewReader(long))
	require.Error(t, err)
}

func TestFromLegacy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ls := mocks.NewMockLegacyStorage(ctrl)

	created := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)

	ls.EXPECT().LegacyJobs(gomock.Any()).Return([]models.LegacyJob{{Title: "Clerk", Department: "Revenue", Posts: 12, CreatedAt: created}}, nil)
	ls.EXPECT().LegacyResults(gomock.Any()).Return([]models.LegacyResult{{Title: "Clerk Result"}}, nil)
	ls.EXPECT().LegacyAdmitCards(gomock.Any()).Return([]models.LegacyAdmitCard{{Title: "Clerk Admit Card"}}, nil)

	items, err := FromLegacy(context.Background(), ls)
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.Equal(t, models.TypeJob, items[0].Type)
	require.Equal(t, "Revenue", items[0].Category)
	require.Equal(t, 12, *items[0].TotalPosts)
	require.Equal(t, created, *items[0].PostedAt)

	require.Equal(t, models.TypeResult, items[1].Type)
	require.Equal(t, models.TypeAdmitCard, items[2].Type)
}

func TestFromLegacy_Error(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ls := mocks.NewMockLegacyStorage(ctrl)

	boom := errors.New("cursor killed")
	ls.EXPECT().LegacyJobs(gomock.Any()).Return(nil, nil)
	ls.EXPECT().LegacyResults(gomock.Any()).Return(nil, boom)

	_, err := FromLegacy(context.Background(), ls)
	require.ErrorIs(t, err, boom)
}
