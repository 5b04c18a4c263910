// importer загружает объявления пачками из внешних источников
// (NDJSON-файл, объект в MinIO/S3, устаревшие коллекции) через сервисный слой.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
)

// Режимы записи.
const (
	ModeInsert = "insert"
	ModeUpsert = "upsert"
)

// ErrUnknownMode - режим не insert и не upsert.
var ErrUnknownMode = errors.New("importer: unknown mode")

// Sink - получатель пачек; реализуется *service.Service.
type Sink interface {
	BatchInsert(ctx context.Context, items []models.CreateInput) (*models.BulkResult, error)
	BulkUpsert(ctx context.Context, items []models.CreateInput) (*models.UpsertResult, error)
}

// Report - итог импорта. Индексы в Errors - позиции во всём входном срезе.
type Report struct {
	Mode       string             `json:"mode"`
	Items      int                `json:"items"`
	Inserted   int64              `json:"inserted"`
	Upserted   int64              `json:"upserted"`
	Modified   int64              `json:"modified"`
	Errors     []models.BulkError `json:"errors"`
	LineErrors []LineError        `json:"lineErrors,omitempty"`
}

// Importer режет вход на пачки не больше batch и отправляет их в Sink.
type Importer struct {
	sink  Sink
	batch int
}

// New создаёт Importer. batch <= 0 -> 500.
func New(sink Sink, batch int) *Importer {
	if batch <= 0 {
		batch = 500
	}

	return &Importer{sink: sink, batch: batch}
}

// Run записывает items в режиме mode. Ошибки отдельных элементов копятся в Report;
// error - неизвестный режим, отмена ctx или отказ Sink целиком.
func (im *Importer) Run(ctx context.Context, items []models.CreateInput, mode string) (*Report, error) {
	const op = "importer/Run"

	if mode != ModeInsert && mode != ModeUpsert {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownMode, mode)
	}

	lg := log.From(ctx)
	rep := &Report{Mode: mode, Items: len(items), Errors: []models.BulkError{}}

	for start := 0; start < len(items); start += im.batch {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("%s: %w", op, err)
		}

		end := min(start+im.batch, len(items))
		chunk := items[start:end]

		var errs []models.BulkError
		switch mode {
		case ModeInsert:
			res, err := im.sink.BatchInsert(ctx, chunk)
			if err != nil {
				return rep, fmt.Errorf("%s: batch at %d: %w", op, start, err)
			}
			rep.Inserted += res.Inserted
			errs = res.Errors
		case ModeUpsert:
			res, err := im.sink.BulkUpsert(ctx, chunk)
			if err != nil {
				return rep, fmt.Errorf("%s: batch at %d: %w", op, start, err)
			}
			rep.Upserted += res.Upserted
			rep.Modified += res.Modified
			errs = res.Errors
		}

		for _, e := range errs {
			e.Index += start
			rep.Errors = append(rep.Errors, e)
		}

		lg.Info("import_batch_done",
			slog.String("op", op),
			slog.String("mode", mode),
			slog.Int("from", start),
			slog.Int("to", end),
			slog.Int("errors", len(errs)),
		)
	}

	return rep, nil
}
