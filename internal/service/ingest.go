package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
)

// StartIngest запускает периодический опрос лент из s.cfg.Fetcher.
//
// Особенности:
//   - первый проход выполняется сразу, далее - раз в cfg.Fetcher.Interval;
//   - каждый проход сохраняет пачку через BulkUpsert, поэтому повторный опрос
//     той же ленты не создаёт дублей;
//   - останавливается по ctx.
func (s *Service) StartIngest(ctx context.Context, parser Parser) error {
	const op = "service/ingest/StartIngest"

	src := s.cfg.Fetcher.Sources
	interval := s.cfg.Fetcher.Interval

	if len(src) == 0 {
		return fmt.Errorf("%s: no sources configured", op)
	}

	if interval <= 0 {
		return fmt.Errorf("%s: interval must be positive", op)
	}

	lg := log.From(ctx)
	lg.Info("ingest_start",
		slog.String("op", op),
		slog.Int("sources", len(src)),
		slog.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.ingestOnce(ctx, parser, src); err != nil {
			lg.Warn("ingest_tick_error",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}

		select {
		case <-ctx.Done():
			lg.Info("ingest_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
		}
	}
}

// ingestOnce - один проход: парсинг всех лент, доводка черновиков, upsert.
func (s *Service) ingestOnce(ctx context.Context, parser Parser, urls []string) error {
	const op = "service/ingest/ingestOnce"

	lg := log.From(ctx)

	var total, feedsOK, feedsErr int
	var batch []models.CreateInput

	for result := range parser.ParseMany(ctx, urls) {
		if result.Err != nil {
			feedsErr++
			lg.Warn("parse_error",
				slog.String("op", op),
				slog.String("url", result.URL),
				slog.String("err", result.Err.Error()),
			)
			continue
		}

		for _, item := range result.Items {
			if in, ok := s.finalizeItem(item); ok {
				batch = append(batch, in)
			}
		}

		total += len(result.Items)
		feedsOK++
	}

	if len(batch) == 0 {
		lg.Info("ingest_empty",
			slog.String("op", op),
			slog.Int("feeds_ok", feedsOK),
			slog.Int("feeds_err", feedsErr),
		)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var upserted, modified int64
	var failed int
	for start := 0; start < len(batch); start += s.chunkSize() {
		end := min(start+s.chunkSize(), len(batch))

		res, err := s.BulkUpsert(ctx, batch[start:end])
		if err != nil {
			return fmt.Errorf("%s: bulk_upsert: %w", op, err)
		}
		upserted += res.Upserted
		modified += res.Modified
		failed += len(res.Errors)
	}

	lg.Info("ingest_saved",
		slog.String("op", op),
		slog.Int("total_items", total),
		slog.Int("accepted", len(batch)),
		slog.Int64("upserted", upserted),
		slog.Int64("modified", modified),
		slog.Int("failed", failed),
		slog.Int("feeds_ok", feedsOK),
		slog.Int("feeds_err", feedsErr),
	)

	return nil
}

func (s *Service) chunkSize() int {
	if s.cfg.Limits.Batch > 0 {
		return s.cfg.Limits.Batch
	}

	return 1000
}

// finalizeItem доводит черновик из ленты до инвариантов домена:
//   - Title/ExternalLink обязательны (после TrimSpace), иначе запись отбрасывается;
//   - Type и PostedBy берутся из cfg.Fetcher;
//   - Slug: Slugify(title) + pubDate в мс; без даты - + хэш ссылки,
//     чтобы повторный опрос попадал в тот же документ.
func (s *Service) finalizeItem(in models.CreateInput) (models.CreateInput, bool) {
	in.Title = strings.TrimSpace(in.Title)
	in.ExternalLink = strings.TrimSpace(in.ExternalLink)

	if in.Title == "" || in.ExternalLink == "" {
		return models.CreateInput{}, false
	}

	in.Type = s.cfg.Fetcher.DefaultType
	in.PostedBy = s.cfg.Fetcher.PostedBy

	if in.PostedAt != nil && !in.PostedAt.IsZero() {
		in.Slug = newSlug(in.Title, *in.PostedAt)
	} else {
		in.PostedAt = nil
		in.Slug = strings.TrimPrefix(Slugify(in.Title)+"-"+linkHash(in.ExternalLink), "-")
	}

	return in, true
}

func linkHash(link string) string {
	h := fnv.New64a()
	h.Write([]byte(link))

	return strconv.FormatUint(h.Sum64(), 36)
}
