package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
	"github.com/pribylovaa/go-govjobs/internal/storage"
)

// FromLegacy читает коллекции jobs, results, admitcards и переводит
// их записи в CreateInput (в этом порядке).
func FromLegacy(ctx context.Context, st storage.LegacyStorage) ([]models.CreateInput, error) {
	const op = "importer/FromLegacy"

	jobs, err := st.LegacyJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: jobs: %w", op, err)
	}

	results, err := st.LegacyResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: results: %w", op, err)
	}

	cards, err := st.LegacyAdmitCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: admitcards: %w", op, err)
	}

	out := make([]models.CreateInput, 0, len(jobs)+len(results)+len(cards))
	for _, j := range jobs {
		out = append(out, j.ToInput())
	}
	for _, r := range results {
		out = append(out, r.ToInput())
	}
	for _, a := range cards {
		out = append(out, a.ToInput())
	}

	log.From(ctx).Info("legacy_loaded",
		slog.String("op", op),
		slog.Int("jobs", len(jobs)),
		slog.Int("results", len(results)),
		slog.Int("admitcards", len(cards)),
	)

	return out, nil
}
