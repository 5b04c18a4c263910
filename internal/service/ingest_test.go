package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-govjobs/internal/config"
	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/mocks"
)

// stubParser - минимальный Parser для тестов ingest.go.
type stubParser struct {
	mu     sync.Mutex
	gotURL []string
	res    []ParseResult
}

func (s *stubParser) ParseMany(ctx context.Context, urls []string) <-chan ParseResult {
	s.mu.Lock()
	s.gotURL = append([]string(nil), urls...)
	s.mu.Unlock()

	ch := make(chan ParseResult)
	go func() {
		defer close(ch)
		for _, r := range s.res {
			select {
			case <-ctx.Done():
				return
			case ch <- r:
			}
		}
	}()
	return ch
}

func (s *stubParser) got() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.gotURL...)
}

func TestIngestOnce_UpsertsFinalizedItems(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	pub := time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC)

	parser := &stubParser{res: []ParseResult{
		{
			URL: "u1",
			Items: []models.CreateInput{
				{Title: " Bank PO ", ExternalLink: "https://jobs.example/po", PostedAt: &pub, Tags: []string{"bank"}},
				{Title: "", ExternalLink: "https://jobs.example/empty"},
				{Title: "Clerk", ExternalLink: "https://jobs.example/clerk"},
			},
		},
		{URL: "u2", Err: errors.New("status=503")},
	}}

	ms.EXPECT().BulkUpsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs []models.Announcement) (*models.UpsertResult, error) {
			require.Len(t, docs, 2)

			require.Equal(t, "Bank PO", docs[0].Title)
			require.Equal(t, "job", docs[0].Type)
			require.Equal(t, "rss-ingest", docs[0].PostedBy)
			require.Equal(t, fmt.Sprintf("bank-po-%d", pub.UnixMilli()), docs[0].Slug)
			require.Equal(t, pub, docs[0].PostedAt)

			require.True(t, strings.HasPrefix(docs[1].Slug, "clerk-"))
			require.Equal(t, fixedNow, docs[1].PostedAt, "без pubDate -> время прохода")

			return &models.UpsertResult{Upserted: 2}, nil
		})

	svc := newSvcForTest(t, ms)

	err := svc.ingestOnce(context.Background(), parser, []string{"u1", "u2"})
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2"}, parser.got())
}

func TestIngestOnce_EmptyBatchSkipsStorage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	parser := &stubParser{res: []ParseResult{
		{URL: "u1", Items: []models.CreateInput{{Title: "x"}, {ExternalLink: "https://a"}}},
		{URL: "u2", Err: errors.New("timeout")},
	}}

	require.NoError(t, newSvcForTest(t, ms).ingestOnce(context.Background(), parser, []string{"u1", "u2"}))
}

func TestIngestOnce_Chunks(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	var sizes []int
	ms.EXPECT().BulkUpsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, docs []models.Announcement) (*models.UpsertResult, error) {
			sizes = append(sizes, len(docs))
			return &models.UpsertResult{}, nil
		}).Times(3)

	items := make([]models.CreateInput, 5)
	for i := range items {
		items[i] = models.CreateInput{Title: fmt.Sprintf("Post %d", i), ExternalLink: fmt.Sprintf("https://a/%d", i)}
	}

	svc := newSvcForTest(t, ms, func(c *config.Config) { c.Limits.Batch = 2 })

	err := svc.ingestOnce(context.Background(), &stubParser{res: []ParseResult{{URL: "u", Items: items}}}, []string{"u"})
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 1}, sizes)
}

func TestFinalizeItem_StableSlugWithoutDate(t *testing.T) {
	t.Parallel()

	svc := newSvcForTest(t, nil)

	in := models.CreateInput{Title: "Police Constable", ExternalLink: "https://jobs.example/pc"}

	a, ok := svc.finalizeItem(in)
	require.True(t, ok)
	b, ok := svc.finalizeItem(in)
	require.True(t, ok)

	require.Equal(t, a.Slug, b.Slug)
	require.True(t, strings.HasPrefix(a.Slug, "police-constable-"))
	require.Nil(t, a.PostedAt)

	other, _ := svc.finalizeItem(models.CreateInput{Title: "Police Constable", ExternalLink: "https://jobs.example/pc2"})
	require.NotEqual(t, a.Slug, other.Slug)
}

func TestStartIngest_NoSources(t *testing.T) {
	t.Parallel()

	svc := newSvcForTest(t, nil)
	require.Error(t, svc.StartIngest(context.Background(), &stubParser{}))
}

func TestStartIngest_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)

	svc := newSvcForTest(t, ms, func(c *config.Config) {
		c.Fetcher.Sources = []string{"u1"}
		c.Fetcher.Interval = time.Hour
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- svc.StartIngest(ctx, &stubParser{}) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("StartIngest did not stop after cancel")
	}
}
