package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Документы устаревших коллекций. Читаются только миграцией.

type legacyJobDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	Title         string             `bson:"title"`
	Organization  string             `bson:"organization"`
	Department    string             `bson:"department"`
	Location      string             `bson:"location"`
	Qualification string             `bson:"qualification"`
	AgeLimit      string             `bson:"ageLimit"`
	Fee           string             `bson:"fee"`
	Posts         int                `bson:"posts"`
	LastDate      *time.Time         `bson:"lastDate"`
	ApplyLink     string             `bson:"applyLink"`
	Description   string             `bson:"description"`
	Tags          []string           `bson:"tags"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

type legacyResultDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	Organization string             `bson:"organization"`
	ResultDate   *time.Time         `bson:"resultDate"`
	ResultLink   string             `bson:"resultLink"`
	Description  string             `bson:"description"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type legacyAdmitCardDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	Organization string             `bson:"organization"`
	ExamDate     *time.Time         `bson:"examDate"`
	DownloadLink string             `bson:"downloadLink"`
	Description  string             `bson:"description"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// readAll - полная выборка коллекции в порядке вставки.
func readAll[D any](ctx context.Context, m *Mongo, collection string) ([]D, error) {
	cur, err := m.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	defer cur.Close(ctx)

	var out []D
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	return out, nil
}

// LegacyJobs читает коллекцию jobs.
func (m *Mongo) LegacyJobs(ctx context.Context) ([]models.LegacyJob, error) {
	const op = "storage/mongo/LegacyJobs"

	docs, err := readAll[legacyJobDoc](ctx, m, jobsCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.LegacyJob, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.LegacyJob{
			ID: d.ID.Hex(), Title: d.Title, Organization: d.Organization, Department: d.Department,
			Location: d.Location, Qualification: d.Qualification, AgeLimit: d.AgeLimit, Fee: d.Fee,
			Posts: d.Posts, LastDate: utcPtr(d.LastDate), ApplyLink: d.ApplyLink,
			Description: d.Description, Tags: d.Tags, CreatedAt: d.CreatedAt.UTC(),
		})
	}

	return out, nil
}

// LegacyResults читает коллекцию results.
func (m *Mongo) LegacyResults(ctx context.Context) ([]models.LegacyResult, error) {
	const op = "storage/mongo/LegacyResults"

	docs, err := readAll[legacyResultDoc](ctx, m, resultsCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.LegacyResult, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.LegacyResult{
			ID: d.ID.Hex(), Title: d.Title, Organization: d.Organization, ResultDate: utcPtr(d.ResultDate),
			ResultLink: d.ResultLink, Description: d.Description, CreatedAt: d.CreatedAt.UTC(),
		})
	}

	return out, nil
}

// LegacyAdmitCards читает коллекцию admitcards.
func (m *Mongo) LegacyAdmitCards(ctx context.Context) ([]models.LegacyAdmitCard, error) {
	const op = "storage/mongo/LegacyAdmitCards"

	docs, err := readAll[legacyAdmitCardDoc](ctx, m, admitCardsCollection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.LegacyAdmitCard, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.LegacyAdmitCard{
			ID: d.ID.Hex(), Title: d.Title, Organization: d.Organization, ExamDate: utcPtr(d.ExamDate),
			DownloadLink: d.DownloadLink, Description: d.Description, CreatedAt: d.CreatedAt.UTC(),
		})
	}

	return out, nil
}
