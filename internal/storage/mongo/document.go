package mongo

import (
	"time"

	"github.com/pribylovaa/go-govjobs/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// announcementDoc - представление объявления в коллекции.
// Имена полей совпадают с исторической схемой (camelCase).
type announcementDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Slug             string             `bson:"slug"`
	Type             string             `bson:"type"`
	Category         string             `bson:"category,omitempty"`
	Organization     string             `bson:"organization,omitempty"`
	Title            string             `bson:"title"`
	Content          string             `bson:"content,omitempty"`
	ExternalLink     string             `bson:"externalLink,omitempty"`
	Location         string             `bson:"location,omitempty"`
	Deadline         *time.Time         `bson:"deadline,omitempty"`
	MinQualification string             `bson:"minQualification,omitempty"`
	AgeLimit         string             `bson:"ageLimit,omitempty"`
	ApplicationFee   string             `bson:"applicationFee,omitempty"`
	TotalPosts       *int               `bson:"totalPosts,omitempty"`
	Tags             []string           `bson:"tags,omitempty"`
	JobDetails       bson.M             `bson:"jobDetails,omitempty"`
	ImportantDates   []importantDateDoc `bson:"importantDates,omitempty"`
	PostedBy         string             `bson:"postedBy,omitempty"`
	PostedAt         time.Time          `bson:"postedAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
	IsActive         bool               `bson:"isActive"`
	ViewCount        int64              `bson:"viewCount"`
}

type importantDateDoc struct {
	EventName   string     `bson:"eventName"`
	EventDate   *time.Time `bson:"eventDate,omitempty"`
	Description string     `bson:"description,omitempty"`
}

// cardProjection - фиксированный набор полей для ListingCard.
var cardProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "title", Value: 1},
	{Key: "slug", Value: 1},
	{Key: "type", Value: 1},
	{Key: "category", Value: 1},
	{Key: "organization", Value: 1},
	{Key: "deadline", Value: 1},
	{Key: "totalPosts", Value: 1},
	{Key: "postedAt", Value: 1},
	{Key: "viewCount", Value: 1},
}

// MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func toMSPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := toMS(*t)
	return &v
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func datesToDocs(in []models.ImportantDate) []importantDateDoc {
	if in == nil {
		return nil
	}
	out := make([]importantDateDoc, 0, len(in))
	for _, d := range in {
		out = append(out, importantDateDoc{EventName: d.EventName, EventDate: toMSPtr(d.EventDate), Description: d.Description})
	}
	return out
}

func datesFromDocs(in []importantDateDoc) []models.ImportantDate {
	if in == nil {
		return nil
	}
	out := make([]models.ImportantDate, 0, len(in))
	for _, d := range in {
		out = append(out, models.ImportantDate{EventName: d.EventName, EventDate: utcPtr(d.EventDate), Description: d.Description})
	}
	return out
}

// fromModel готовит документ к записи. Пустой или битый ID -> драйвер/вызывающий сгенерирует новый.
func fromModel(a models.Announcement) announcementDoc {
	oid, _ := primitive.ObjectIDFromHex(a.ID)

	return announcementDoc{
		ID:               oid,
		Slug:             a.Slug,
		Type:             a.Type,
		Category:         a.Category,
		Organization:     a.Organization,
		Title:            a.Title,
		Content:          a.Content,
		ExternalLink:     a.ExternalLink,
		Location:         a.Location,
		Deadline:         toMSPtr(a.Deadline),
		MinQualification: a.MinQualification,
		AgeLimit:         a.AgeLimit,
		ApplicationFee:   a.ApplicationFee,
		TotalPosts:       a.TotalPosts,
		Tags:             a.Tags,
		JobDetails:       a.JobDetails,
		ImportantDates:   datesToDocs(a.ImportantDates),
		PostedBy:         a.PostedBy,
		PostedAt:         toMS(a.PostedAt),
		UpdatedAt:        toMS(a.UpdatedAt),
		IsActive:         a.IsActive,
		ViewCount:        a.ViewCount,
	}
}

// toModel - обратное преобразование с нормализацией времён в UTC.
func (d announcementDoc) toModel() models.Announcement {
	return models.Announcement{
		ID:               d.ID.Hex(),
		Slug:             d.Slug,
		Type:             d.Type,
		Category:         d.Category,
		Organization:     d.Organization,
		Title:            d.Title,
		Content:          d.Content,
		ExternalLink:     d.ExternalLink,
		Location:         d.Location,
		Deadline:         utcPtr(d.Deadline),
		MinQualification: d.MinQualification,
		AgeLimit:         d.AgeLimit,
		ApplicationFee:   d.ApplicationFee,
		TotalPosts:       d.TotalPosts,
		Tags:             d.Tags,
		JobDetails:       d.JobDetails,
		ImportantDates:   datesFromDocs(d.ImportantDates),
		PostedBy:         d.PostedBy,
		PostedAt:         d.PostedAt.UTC(),
		UpdatedAt:        d.UpdatedAt.UTC(),
		IsActive:         d.IsActive,
		ViewCount:        d.ViewCount,
	}
}

func (d announcementDoc) toCard() models.ListingCard {
	return models.ListingCard{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Slug:         d.Slug,
		Type:         d.Type,
		Category:     d.Category,
		Organization: d.Organization,
		Deadline:     utcPtr(d.Deadline),
		TotalPosts:   d.TotalPosts,
		PostedAt:     d.PostedAt.UTC(),
		ViewCount:    d.ViewCount,
	}
}

// contentFields - поля, которые перезаписываются при upsert по slug.
func (d announcementDoc) contentFields() bson.D {
	return bson.D{
		{Key: "type", Value: d.Type},
		{Key: "title", Value: d.Title},
		{Key: "category", Value: d.Category},
		{Key: "organization", Value: d.Organization},
		{Key: "content", Value: d.Content},
		{Key: "externalLink", Value: d.ExternalLink},
		{Key: "location", Value: d.Location},
		{Key: "deadline", Value: d.Deadline},
		{Key: "minQualification", Value: d.MinQualification},
		{Key: "ageLimit", Value: d.AgeLimit},
		{Key: "applicationFee", Value: d.ApplicationFee},
		{Key: "totalPosts", Value: d.TotalPosts},
		{Key: "tags", Value: d.Tags},
		{Key: "jobDetails", Value: d.JobDetails},
		{Key: "importantDates", Value: d.ImportantDates},
		{Key: "updatedAt", Value: d.UpdatedAt},
	}
}
